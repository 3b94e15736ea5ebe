package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
)

func PublicRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/users/login", c.Login).Methods(http.MethodPost)
	router.HandleFunc("/users/refresh", c.Refresh).Methods(http.MethodPost)
	router.HandleFunc("/users/federated", c.FederatedLogin).Methods(http.MethodPost)
}

func ProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/me", c.Me).Methods(http.MethodGet)
	router.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)
	router.HandleFunc("/users", c.GetUsers).Methods(http.MethodGet)
	router.HandleFunc("/users", c.CreateUser).Methods(http.MethodPost)
}
