package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nestly_server/services"
)

// DefaultRankLimit caps "top matches" views when the client does not ask
// for a specific page size.
const DefaultRankLimit = 10

// MatchScoreController handles HTTP requests for match scores
type MatchScoreController struct {
	Scores            *services.MatchScoreService
	Notifications     *services.NotificationService // optional
	TopMatchThreshold int
}

// NewMatchScoreController creates a new MatchScoreController instance
func NewMatchScoreController(scores *services.MatchScoreService, notifications *services.NotificationService, topMatchThreshold int) *MatchScoreController {
	return &MatchScoreController{
		Scores:            scores,
		Notifications:     notifications,
		TopMatchThreshold: topMatchThreshold,
	}
}

// GetRankedMatches handles fetching a user's top matches
func (mc *MatchScoreController) GetRankedMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	limit := DefaultRankLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	matches, err := mc.Scores.Rank(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"matches": matches,
	})
}

// LookupScore handles inline score display. It always answers 200 with a
// total, falling back to 0, so browsing never blocks on scoring.
func (mc *MatchScoreController) LookupScore(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	propertyID := r.URL.Query().Get("propertyId")
	if userID == "" || propertyID == "" {
		http.Error(w, "userId and propertyId are required", http.StatusBadRequest)
		return
	}

	total := mc.Scores.Lookup(r.Context(), userID, propertyID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": total,
	})
}

// ComputeScore handles scoring one property for one user
func (mc *MatchScoreController) ComputeScore(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID     string `json:"userId"`
		PropertyID string `json:"propertyId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.UserID == "" || body.PropertyID == "" {
		http.Error(w, "userId and propertyId are required", http.StatusBadRequest)
		return
	}

	score, err := mc.Scores.ComputeOne(r.Context(), body.UserID, body.PropertyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if mc.Notifications != nil && mc.TopMatchThreshold > 0 && score.Total >= mc.TopMatchThreshold {
		// Best effort; a failed notification must not fail the compute.
		_ = mc.Notifications.NotifyTopMatch(r.Context(), score)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"score": score,
	})
}

// RefreshScores handles recomputing all of a user's scores. Partial
// failures still answer 200 with the summary so the UI can show which
// properties were skipped.
func (mc *MatchScoreController) RefreshScores(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	summary, err := mc.Scores.RecomputeAll(r.Context(), userID)
	partial := false
	if err != nil {
		var pf *services.PartialFailure
		if !errors.As(err, &pf) {
			writeServiceError(w, err)
			return
		}
		partial = true
	}

	if mc.Notifications != nil {
		_ = mc.Notifications.NotifyScoresRefreshed(r.Context(), userID, summary)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"summary": summary,
		"partial": partial,
	})
}
