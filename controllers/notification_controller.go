package controllers

import (
	"encoding/json"
	"net/http"

	"nestly_server/services"
)

// NotificationController handles HTTP requests for user notifications
type NotificationController struct {
	Notifications *services.NotificationService
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// GetNotifications handles fetching a user's recent notifications
func (nc *NotificationController) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	notifications, err := nc.Notifications.GetForUser(r.Context(), userID, 50)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"notifications": notifications,
	})
}
