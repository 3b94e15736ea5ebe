package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
)

func AboutPublicRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/api/about", c.GetAbout).Methods(http.MethodGet)
	router.HandleFunc("/api/about/icons", c.GetIcons).Methods(http.MethodGet)
}

func AboutProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/about/{section}", c.CreateAboutEntry).Methods(http.MethodPost)
	router.HandleFunc("/about/{section}/{id}", c.UpdateAboutEntry).Methods(http.MethodPatch)
	router.HandleFunc("/about/{section}/{id}", c.DeleteAboutEntry).Methods(http.MethodDelete)

	router.HandleFunc("/stream/{collection}", c.Stream).Methods(http.MethodGet)
	router.HandleFunc("/stats", c.GetStats).Methods(http.MethodGet)
}
