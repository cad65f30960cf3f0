package routes

import (
	"nestly_server/controllers"
	"nestly_server/services"

	"github.com/gorilla/mux"
)

// RegisterPropertyRoutes sets up routes for catalog access under /api/properties
func RegisterPropertyRoutes(r *mux.Router, properties *services.PropertyService) {
	controller := controllers.NewPropertyController(properties)

	propertyRouter := r.PathPrefix("/api/properties").Subrouter()

	propertyRouter.HandleFunc("", controller.AddProperty).Methods("POST")
	propertyRouter.HandleFunc("/{propertyId}", controller.GetProperty).Methods("GET")
}
