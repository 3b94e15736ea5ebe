package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
)

func MenuPublicRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/api/menu", c.GetMenus).Methods(http.MethodGet)
	router.HandleFunc("/api/menu/categories", c.GetMenuCategories).Methods(http.MethodGet)
	router.HandleFunc("/api/menu/{item_id}", c.GetMenu).Methods(http.MethodGet)
}

func MenuProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/menu", c.CreateMenu).Methods(http.MethodPost)

	router.HandleFunc("/menu/{item_id}", c.UpdateMenu).Methods(http.MethodPatch)
	router.HandleFunc("/menu/{item_id}", c.DeleteMenu).Methods(http.MethodDelete)
}
