package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	NotificationScoresRefreshed = "scoresRefreshed"
	NotificationTopMatch        = "topMatch"
)

// ScoresRefreshedPayload is attached to scoresRefreshed notifications.
type ScoresRefreshedPayload struct {
	Succeeded int `dynamodbav:"succeeded" json:"succeeded"`
	Failed    int `dynamodbav:"failed" json:"failed"`
}

// TopMatchPayload is attached to topMatch notifications.
type TopMatchPayload struct {
	PropertyID string `dynamodbav:"propertyId" json:"propertyId"`
	Total      int    `dynamodbav:"total" json:"total"`
}

// Notification is a typed event for a user. Exactly one payload field is
// set, matching Type, so each notification carries only the fields its
// type needs.
type Notification struct {
	UserID          string                  `dynamodbav:"userId" json:"userId"`
	NotificationID  string                  `dynamodbav:"notificationId" json:"notificationId"`
	Type            string                  `dynamodbav:"type" json:"type"`
	ScoresRefreshed *ScoresRefreshedPayload `dynamodbav:"scoresRefreshed,omitempty" json:"scoresRefreshed,omitempty"`
	TopMatch        *TopMatchPayload        `dynamodbav:"topMatch,omitempty" json:"topMatch,omitempty"`
	CreatedAt       string                  `dynamodbav:"createdAt" json:"createdAt"`
}

// NewScoresRefreshedNotification builds a notification for a completed
// recompute run.
func NewScoresRefreshedNotification(userID string, succeeded, failed int) Notification {
	return Notification{
		UserID:          userID,
		NotificationID:  uuid.NewString(),
		Type:            NotificationScoresRefreshed,
		ScoresRefreshed: &ScoresRefreshedPayload{Succeeded: succeeded, Failed: failed},
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
}

// NewTopMatchNotification builds a notification for a high-scoring property.
func NewTopMatchNotification(userID, propertyID string, total int) Notification {
	return Notification{
		UserID:         userID,
		NotificationID: uuid.NewString(),
		Type:           NotificationTopMatch,
		TopMatch:       &TopMatchPayload{PropertyID: propertyID, Total: total},
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
}

// NotificationsTable is the DynamoDB table name for user notifications
const NotificationsTable = "Notifications"
