package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	middleware "github.com/02priyeshraj/Tomato_Restaurant_Website/middlewares"
)

// NewRouter wires public routes at the root and the back office under
// /admin behind the Bearer token check.
func NewRouter(c *controller.Controller) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(c.Log), middleware.Recover(c.Log))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helper.Failure(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helper.Failure(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Public Routes (No Authentication)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		helper.Success(w, http.StatusOK, "ok", nil)
	}).Methods(http.MethodGet)
	PublicRoutes(router, c)
	MenuPublicRoutes(router, c)
	PreOrderPublicRoutes(router, c)
	ReservationPublicRoutes(router, c)
	AboutPublicRoutes(router, c)

	// Apply Authentication Middleware to Protected Routes
	securedRoutes := router.PathPrefix("/admin").Subrouter()
	securedRoutes.Use(middleware.Authentication(c.Tokens, c.Stores.Users))
	ProtectedRoutes(securedRoutes, c)
	MenuProtectedRoutes(securedRoutes, c)
	PreOrderProtectedRoutes(securedRoutes, c)
	ReservationProtectedRoutes(securedRoutes, c)
	AboutProtectedRoutes(securedRoutes, c)

	return router
}
