package routes

import (
	"nestly_server/controllers"
	"nestly_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchScoreRoutes sets up routes for score operations under /api/scores
func RegisterMatchScoreRoutes(r *mux.Router, scores *services.MatchScoreService, notifications *services.NotificationService, topMatchThreshold int) {
	controller := controllers.NewMatchScoreController(scores, notifications, topMatchThreshold)

	scoreRouter := r.PathPrefix("/api/scores").Subrouter()

	scoreRouter.HandleFunc("", controller.GetRankedMatches).Methods("GET")
	scoreRouter.HandleFunc("/lookup", controller.LookupScore).Methods("GET")
	scoreRouter.HandleFunc("/compute", controller.ComputeScore).Methods("POST")
	scoreRouter.HandleFunc("/refresh", controller.RefreshScores).Methods("POST")
}
