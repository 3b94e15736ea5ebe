package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
)

func ReservationPublicRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/api/reservations/validate", c.ValidateReservation).Methods(http.MethodPost)
	router.HandleFunc("/api/reservations", c.CreateReservation).Methods(http.MethodPost)
	router.HandleFunc("/api/contacts", c.CreateContact).Methods(http.MethodPost)
}

func ReservationProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/reservations", c.GetReservations).Methods(http.MethodGet)
	router.HandleFunc("/reservations/{reservation_id}/status", c.UpdateReservationStatus).Methods(http.MethodPatch)
	router.HandleFunc("/reservations/{reservation_id}", c.DeleteReservation).Methods(http.MethodDelete)

	router.HandleFunc("/contacts", c.GetContacts).Methods(http.MethodGet)
	router.HandleFunc("/contacts/{contact_id}/status", c.UpdateContactStatus).Methods(http.MethodPatch)
	router.HandleFunc("/contacts/{contact_id}", c.DeleteContact).Methods(http.MethodDelete)
}
