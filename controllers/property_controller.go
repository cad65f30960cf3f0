package controllers

import (
	"encoding/json"
	"net/http"

	"nestly_server/models"
	"nestly_server/services"

	"github.com/gorilla/mux"
)

// PropertyController handles HTTP requests for the property catalog
type PropertyController struct {
	Properties *services.PropertyService
}

// NewPropertyController creates a new PropertyController instance
func NewPropertyController(properties *services.PropertyService) *PropertyController {
	return &PropertyController{Properties: properties}
}

// GetProperty handles fetching one property by id
func (pc *PropertyController) GetProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]
	if propertyID == "" {
		http.Error(w, "propertyId is required", http.StatusBadRequest)
		return
	}

	property, err := pc.Properties.GetProperty(r.Context(), propertyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"property": property,
	})
}

// AddProperty handles adding a catalog entry
func (pc *PropertyController) AddProperty(w http.ResponseWriter, r *http.Request) {
	var property models.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := pc.Properties.AddProperty(r.Context(), property)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"property": created,
	})
}
