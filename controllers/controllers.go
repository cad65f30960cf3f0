package controllers

import (
	"errors"
	"net/http"

	"nestly_server/services"
)

// writeServiceError maps service errors to HTTP statuses so the UI can
// render the right retry affordance.
func writeServiceError(w http.ResponseWriter, err error) {
	var persistence *services.PersistenceError
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	case errors.Is(err, services.ErrPropertyNotFound):
		http.Error(w, "property not found", http.StatusNotFound)
	case errors.As(err, &persistence):
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
