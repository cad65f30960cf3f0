package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nestly_server/models"
	"nestly_server/services"
)

// PreferenceController handles HTTP requests for user preferences
type PreferenceController struct {
	Preferences *services.PreferenceService
	Scores      *services.MatchScoreService
}

// NewPreferenceController creates a new PreferenceController instance
func NewPreferenceController(preferences *services.PreferenceService, scores *services.MatchScoreService) *PreferenceController {
	return &PreferenceController{Preferences: preferences, Scores: scores}
}

// GetPreferences handles fetching the current user's preferences
func (pc *PreferenceController) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	prefs, err := pc.Preferences.GetForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"preferences": prefs,
	})
}

// UpdatePreferences handles overwriting the user's preferences and then
// refreshes their scores so rankings reflect the change.
func (pc *PreferenceController) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if prefs.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	updated, err := pc.Preferences.Update(r.Context(), prefs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summary, err := pc.Scores.RecomputeAll(r.Context(), updated.UserID)
	if err != nil {
		var pf *services.PartialFailure
		if !errors.As(err, &pf) {
			writeServiceError(w, err)
			return
		}
		// Partial recompute still counts as a successful update.
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"preferences": updated,
		"recompute":   summary,
	})
}
