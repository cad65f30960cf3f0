package models

// Factor names used as keys in a MatchScore breakdown.
const (
	FactorBudget   = "budget"
	FactorBedroom  = "bedroom"
	FactorAmenity  = "amenity"
	FactorLocation = "location"
	FactorFeature  = "feature"
)

// MatchScore is the computed compatibility between one user and one
// property. The pair (userId, propertyId) is the table key; recomputing
// overwrites the record in place.
type MatchScore struct {
	UserID     string         `dynamodbav:"userId" json:"userId"`
	PropertyID string         `dynamodbav:"propertyId" json:"propertyId"`
	Total      int            `dynamodbav:"total" json:"total"`
	Breakdown  map[string]int `dynamodbav:"breakdown" json:"breakdown"`
	CreatedAt  string         `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt  string         `dynamodbav:"updatedAt" json:"updatedAt"`
}

// MatchScoresTable is the DynamoDB table name for computed match scores
const MatchScoresTable = "MatchScores"

// RankedMatch joins a stored score with its property snapshot for
// "top matches" views.
type RankedMatch struct {
	MatchScore
	Property Property `json:"property"`
}

// ScoreFailure records why one property could not be scored during a
// recompute run.
type ScoreFailure struct {
	PropertyID string `json:"propertyId"`
	Reason     string `json:"reason"`
}

// RecomputeSummary reports the outcome of scoring a user's full candidate
// set. Individual failures are collected here instead of aborting the run.
type RecomputeSummary struct {
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Failures  []ScoreFailure `json:"failures,omitempty"`
}
