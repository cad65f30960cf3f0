package services

import (
	"context"
	"time"

	"nestly_server/models"
	"nestly_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PropertyService is the read boundary to the property catalog.
type PropertyService struct {
	Dynamo *DynamoService
	Log    *zap.Logger
}

// GetProperty resolves one catalog entry by id.
func (ps *PropertyService) GetProperty(ctx context.Context, propertyID string) (models.Property, error) {
	if propertyID == "" {
		return models.Property{}, ErrPropertyNotFound
	}

	key := map[string]types.AttributeValue{
		"propertyId": &types.AttributeValueMemberS{Value: propertyID},
	}
	item, err := ps.Dynamo.GetItem(ctx, models.PropertiesTable, key)
	if err != nil {
		return models.Property{}, &PersistenceError{Op: "get property", Err: err}
	}
	if item == nil {
		return models.Property{}, ErrPropertyNotFound
	}

	var property models.Property
	if err := attributevalue.UnmarshalMap(item, &property); err != nil {
		return models.Property{}, &PersistenceError{Op: "get property", Err: err}
	}
	return property, nil
}

// GetCandidates returns the properties a user can be scored against.
// When the user stated preferred areas the catalog is narrowed to them;
// otherwise every listing is a candidate.
func (ps *PropertyService) GetCandidates(ctx context.Context, prefs models.UserPreferences) ([]models.Property, error) {
	preferred := make(map[string]struct{}, len(prefs.Locations))
	for _, loc := range prefs.Locations {
		if l := normalize(loc); l != "" {
			preferred[l] = struct{}{}
		}
	}

	var candidates []models.Property
	err := ps.Dynamo.ScanWithFilter(ctx, models.PropertiesTable, func(item map[string]types.AttributeValue) bool {
		if len(preferred) == 0 {
			return true
		}
		if _, ok := preferred[normalize(utils.ExtractString(item, "city"))]; ok {
			return true
		}
		_, ok := preferred[normalize(utils.ExtractString(item, "neighborhood"))]
		return ok
	}, nil, &candidates)
	if err != nil {
		return nil, &PersistenceError{Op: "list candidates", Err: err}
	}

	ps.Log.Debug("candidate set resolved",
		zap.String("userId", prefs.UserID),
		zap.Int("count", len(candidates)))
	return candidates, nil
}

// AddProperty stores a new catalog entry, assigning an id when none is
// given.
func (ps *PropertyService) AddProperty(ctx context.Context, property models.Property) (models.Property, error) {
	if property.PropertyID == "" {
		property.PropertyID = uuid.NewString()
	}
	property.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := ps.Dynamo.PutItem(ctx, models.PropertiesTable, property); err != nil {
		return models.Property{}, &PersistenceError{Op: "add property", Err: err}
	}
	return property, nil
}
