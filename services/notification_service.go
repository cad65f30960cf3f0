package services

import (
	"context"

	"nestly_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Broadcaster pushes an event to every client subscribed to a user's room.
type Broadcaster interface {
	BroadcastToUser(userID, event string, payload interface{})
}

// NotificationService persists typed notifications and pushes them to
// connected clients.
type NotificationService struct {
	Dynamo *DynamoService
	Hub    Broadcaster // optional; nil means persist only
	Log    *zap.Logger
}

func (ns *NotificationService) publish(ctx context.Context, n models.Notification) error {
	if err := ns.Dynamo.PutItem(ctx, models.NotificationsTable, n); err != nil {
		return &PersistenceError{Op: "save notification", Err: err}
	}
	if ns.Hub != nil {
		ns.Hub.BroadcastToUser(n.UserID, "notification", n)
	}
	ns.Log.Debug("notification published",
		zap.String("userId", n.UserID),
		zap.String("type", n.Type))
	return nil
}

// NotifyScoresRefreshed records that a recompute run finished.
func (ns *NotificationService) NotifyScoresRefreshed(ctx context.Context, userID string, summary models.RecomputeSummary) error {
	return ns.publish(ctx, models.NewScoresRefreshedNotification(userID, summary.Succeeded, summary.Failed))
}

// NotifyTopMatch records that a freshly computed score crossed the
// top-match threshold.
func (ns *NotificationService) NotifyTopMatch(ctx context.Context, score models.MatchScore) error {
	return ns.publish(ctx, models.NewTopMatchNotification(score.UserID, score.PropertyID, score.Total))
}

// GetForUser returns a user's most recent notifications, newest first.
func (ns *NotificationService) GetForUser(ctx context.Context, userID string, limit int32) ([]models.Notification, error) {
	items, err := ns.Dynamo.QueryItems(
		ctx,
		models.NotificationsTable,
		"userId = :uid",
		map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		nil,
		limit,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "list notifications", Err: err}
	}

	notifications := make([]models.Notification, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, &PersistenceError{Op: "list notifications", Err: err}
	}
	return notifications, nil
}
