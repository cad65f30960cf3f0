package services

import (
	"context"
	"errors"
	"sort"

	"nestly_server/models"

	"go.uber.org/zap"
)

// PreferenceSource supplies the current user's stated preferences.
type PreferenceSource interface {
	GetForUser(ctx context.Context, userID string) (models.UserPreferences, error)
}

// PropertySource resolves property snapshots and the candidate set a user
// is eligible to be scored against.
type PropertySource interface {
	GetProperty(ctx context.Context, propertyID string) (models.Property, error)
	GetCandidates(ctx context.Context, prefs models.UserPreferences) ([]models.Property, error)
}

// ScoreStore is the persistence boundary for computed match scores.
type ScoreStore interface {
	Upsert(ctx context.Context, userID, propertyID string, breakdown map[string]int, total int) (models.MatchScore, error)
	Get(ctx context.Context, userID, propertyID string) (*models.MatchScore, error)
	GetForUser(ctx context.Context, userID string) ([]models.MatchScore, error)
}

// MatchScoreService computes, persists and serves match scores. ComputeOne
// is the sole write path; a pair goes from absent to computed there and is
// only ever overwritten, never deleted.
type MatchScoreService struct {
	Preferences PreferenceSource
	Properties  PropertySource
	Store       ScoreStore
	Cache       *ScoreCache // optional; lookups fall back to the store
	Weights     ScoreWeights
	Log         *zap.Logger
}

// ComputeOne scores one property for one user and persists the result.
// It returns ErrNotAuthenticated without a user context,
// ErrPropertyNotFound for a stale id, and *PersistenceError when the
// store write fails. Unchanged inputs always yield the same breakdown
// and total.
func (ms *MatchScoreService) ComputeOne(ctx context.Context, userID, propertyID string) (models.MatchScore, error) {
	prefs, err := ms.Preferences.GetForUser(ctx, userID)
	if err != nil {
		return models.MatchScore{}, err
	}

	property, err := ms.Properties.GetProperty(ctx, propertyID)
	if err != nil {
		return models.MatchScore{}, err
	}

	breakdown := ComputeBreakdown(prefs, property)
	total := AggregateScore(breakdown, ms.Weights)

	record, err := ms.Store.Upsert(ctx, userID, propertyID, breakdown, total)
	if err != nil {
		return models.MatchScore{}, err
	}

	if ms.Cache != nil {
		if err := ms.Cache.Put(ctx, userID, propertyID, total); err != nil {
			ms.Log.Warn("score cache write failed",
				zap.String("userId", userID),
				zap.String("propertyId", propertyID),
				zap.Error(err))
		}
	}
	return record, nil
}

// RecomputeAll scores every candidate property for a user. One failing
// property never aborts the rest: failures are collected into the summary
// and reported together as a *PartialFailure. Cancelling the context stops
// the run between items; everything scored so far is already durable.
func (ms *MatchScoreService) RecomputeAll(ctx context.Context, userID string) (models.RecomputeSummary, error) {
	var summary models.RecomputeSummary

	prefs, err := ms.Preferences.GetForUser(ctx, userID)
	if err != nil {
		return summary, err
	}

	candidates, err := ms.Properties.GetCandidates(ctx, prefs)
	if err != nil {
		return summary, err
	}

	for _, property := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if _, err := ms.ComputeOne(ctx, userID, property.PropertyID); err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, models.ScoreFailure{
				PropertyID: property.PropertyID,
				Reason:     err.Error(),
			})
			ms.Log.Warn("scoring candidate failed",
				zap.String("userId", userID),
				zap.String("propertyId", property.PropertyID),
				zap.Error(err))
			continue
		}
		summary.Succeeded++
	}

	ms.Log.Info("scores recomputed",
		zap.String("userId", userID),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))

	if summary.Failed > 0 {
		return summary, &PartialFailure{Failures: summary.Failures}
	}
	return summary, nil
}

// Rank returns the user's cached scores joined with their property
// snapshots, best first. Ties break toward the most recently updated
// score. Scores whose property no longer resolves are dropped.
func (ms *MatchScoreService) Rank(ctx context.Context, userID string, limit int) ([]models.RankedMatch, error) {
	scores, err := ms.Store.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.RankedMatch, 0, len(scores))
	for _, score := range scores {
		property, err := ms.Properties.GetProperty(ctx, score.PropertyID)
		if err != nil {
			if !errors.Is(err, ErrPropertyNotFound) {
				ms.Log.Warn("dropping score with unresolvable property",
					zap.String("propertyId", score.PropertyID),
					zap.Error(err))
			}
			continue
		}
		ranked = append(ranked, models.RankedMatch{MatchScore: score, Property: property})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].UpdatedAt > ranked[j].UpdatedAt
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Lookup returns the cached total for a pair, or 0 when none has been
// computed. It never errors and never triggers a computation, so inline
// display during browsing stays non-blocking.
func (ms *MatchScoreService) Lookup(ctx context.Context, userID, propertyID string) int {
	if ms.Cache != nil {
		if total, ok := ms.Cache.GetTotal(ctx, userID, propertyID); ok {
			return total
		}
	}

	record, err := ms.Store.Get(ctx, userID, propertyID)
	if err != nil {
		ms.Log.Warn("score lookup degraded to zero",
			zap.String("userId", userID),
			zap.String("propertyId", propertyID),
			zap.Error(err))
		return 0
	}
	if record == nil {
		return 0
	}

	if ms.Cache != nil {
		_ = ms.Cache.Put(ctx, userID, propertyID, record.Total)
	}
	return record.Total
}
