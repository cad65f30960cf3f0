package routes

import (
	"nestly_server/controllers"
	"nestly_server/services"

	"github.com/gorilla/mux"
)

// RegisterPreferenceRoutes sets up routes for preference operations under /api/preferences
func RegisterPreferenceRoutes(r *mux.Router, preferences *services.PreferenceService, scores *services.MatchScoreService) {
	controller := controllers.NewPreferenceController(preferences, scores)

	preferenceRouter := r.PathPrefix("/api/preferences").Subrouter()

	preferenceRouter.HandleFunc("", controller.GetPreferences).Methods("GET")
	preferenceRouter.HandleFunc("", controller.UpdatePreferences).Methods("PUT")
}
