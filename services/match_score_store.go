package services

import (
	"context"
	"strconv"
	"time"

	"nestly_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DefaultStoreTimeout bounds every store call so nothing blocks a browsing
// user indefinitely.
const DefaultStoreTimeout = 5 * time.Second

// MatchScoreStore persists one score record per (user, property) pair.
// Upserts write the full record in a single item operation, so a score is
// never stored without its breakdown.
type MatchScoreStore struct {
	Dynamo  *DynamoService
	Timeout time.Duration
}

func (s *MatchScoreStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func scoreRecordKey(userID, propertyID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":     &types.AttributeValueMemberS{Value: userID},
		"propertyId": &types.AttributeValueMemberS{Value: propertyID},
	}
}

// Upsert writes or overwrites the record for (userID, propertyID). The
// first write sets createdAt; every write refreshes updatedAt. Repeating
// the call with the same inputs leaves the same stored state.
func (s *MatchScoreStore) Upsert(ctx context.Context, userID, propertyID string, breakdown map[string]int, total int) (models.MatchScore, error) {
	breakdownAttr, err := attributevalue.Marshal(breakdown)
	if err != nil {
		return models.MatchScore{}, &PersistenceError{Op: "upsert score", Err: err}
	}
	now := time.Now().UTC().Format(time.RFC3339)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	attrs, err := s.Dynamo.UpdateItem(
		ctx,
		models.MatchScoresTable,
		"SET #total = :t, #breakdown = :b, updatedAt = :u, createdAt = if_not_exists(createdAt, :u)",
		scoreRecordKey(userID, propertyID),
		map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberN{Value: strconv.Itoa(total)},
			":b": breakdownAttr,
			":u": &types.AttributeValueMemberS{Value: now},
		},
		map[string]string{
			"#total":     "total",
			"#breakdown": "breakdown",
		},
	)
	if err != nil {
		return models.MatchScore{}, &PersistenceError{Op: "upsert score", Err: err}
	}

	var record models.MatchScore
	if err := attributevalue.UnmarshalMap(attrs, &record); err != nil {
		return models.MatchScore{}, &PersistenceError{Op: "upsert score", Err: err}
	}
	return record, nil
}

// Get returns the stored record for a pair, or nil when no score has been
// computed yet.
func (s *MatchScoreStore) Get(ctx context.Context, userID, propertyID string) (*models.MatchScore, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	item, err := s.Dynamo.GetItem(ctx, models.MatchScoresTable, scoreRecordKey(userID, propertyID))
	if err != nil {
		return nil, &PersistenceError{Op: "get score", Err: err}
	}
	if item == nil {
		return nil, nil
	}

	var record models.MatchScore
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, &PersistenceError{Op: "get score", Err: err}
	}
	return &record, nil
}

// GetForUser returns every stored score for a user. A user with no
// computed scores gets an empty slice, not an error.
func (s *MatchScoreStore) GetForUser(ctx context.Context, userID string) ([]models.MatchScore, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.Dynamo.QueryItems(
		ctx,
		models.MatchScoresTable,
		"userId = :uid",
		map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		nil,
		0,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "list scores", Err: err}
	}

	records := make([]models.MatchScore, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, &PersistenceError{Op: "list scores", Err: err}
	}
	return records, nil
}
