package services

import (
	"errors"
	"fmt"

	"nestly_server/models"
)

// Sentinel errors surfaced by the scoring services.
var (
	// ErrNotAuthenticated means no user context could be resolved.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrPropertyNotFound means the property id does not resolve to a
	// catalog entry.
	ErrPropertyNotFound = errors.New("property not found")
)

// PersistenceError wraps a failed or timed-out call to the backing store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PartialFailure carries the per-property errors collected while
// recomputing a user's scores. The run itself still completes.
type PartialFailure struct {
	Failures []models.ScoreFailure
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("%d of the candidate properties failed to score", len(e.Failures))
}
