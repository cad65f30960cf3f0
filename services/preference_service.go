package services

import (
	"context"
	"time"

	"nestly_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// PreferenceService is the read/update boundary for user preferences.
type PreferenceService struct {
	Dynamo *DynamoService
	Log    *zap.Logger
}

// GetForUser returns the stored preferences for a user. An empty userID or
// a user with no stored profile signals ErrNotAuthenticated: scoring has
// no user context to work with.
func (ps *PreferenceService) GetForUser(ctx context.Context, userID string) (models.UserPreferences, error) {
	if userID == "" {
		return models.UserPreferences{}, ErrNotAuthenticated
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ps.Dynamo.GetItem(ctx, models.PreferencesTable, key)
	if err != nil {
		return models.UserPreferences{}, &PersistenceError{Op: "get preferences", Err: err}
	}
	if item == nil {
		return models.UserPreferences{}, ErrNotAuthenticated
	}

	var prefs models.UserPreferences
	if err := attributevalue.UnmarshalMap(item, &prefs); err != nil {
		return models.UserPreferences{}, &PersistenceError{Op: "get preferences", Err: err}
	}
	return prefs, nil
}

// Update overwrites the user's preferences. This is the only mutation
// path; scores pick the change up on the next recompute.
func (ps *PreferenceService) Update(ctx context.Context, prefs models.UserPreferences) (models.UserPreferences, error) {
	if prefs.UserID == "" {
		return models.UserPreferences{}, ErrNotAuthenticated
	}
	prefs.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := ps.Dynamo.PutItem(ctx, models.PreferencesTable, prefs); err != nil {
		return models.UserPreferences{}, &PersistenceError{Op: "update preferences", Err: err}
	}
	ps.Log.Info("preferences updated", zap.String("userId", prefs.UserID))
	return prefs, nil
}
