package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
)

func PreOrderPublicRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/api/preorders/validate", c.ValidatePreOrder).Methods(http.MethodPost)
	router.HandleFunc("/api/preorders", c.CreatePreOrder).Methods(http.MethodPost)
	router.HandleFunc("/api/preorders/{order_id}", c.TrackPreOrder).Methods(http.MethodGet)
	router.HandleFunc("/api/preorders/{order_id}/reorder", c.ReorderPreOrder).Methods(http.MethodPost)
	router.HandleFunc("/api/cart/reorder", c.ReorderCart).Methods(http.MethodPost)
}

func PreOrderProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/preorders", c.GetPreOrders).Methods(http.MethodGet)

	router.HandleFunc("/preorders/{order_id}", c.GetPreOrder).Methods(http.MethodGet)
	router.HandleFunc("/preorders/{order_id}", c.DeletePreOrder).Methods(http.MethodDelete)
	router.HandleFunc("/preorders/{order_id}/status", c.UpdatePreOrderStatus).Methods(http.MethodPatch)
	router.HandleFunc("/preorders/{order_id}/payment", c.UpdatePreOrderPayment).Methods(http.MethodPatch)
}
