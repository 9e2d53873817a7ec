package repository

import (
	"context"

	"github.com/sanjail3/fyndly-backend/internal/domain"
)

type QueueRepository interface {
	// Replace atomically deletes all of the user's existing queue entries and
	// writes the new batch. The previous batch may be arbitrarily old (stale
	// regeneration), so the delete must not be scoped by time. Concurrent
	// calls for the same user are serialized; the last writer wins cleanly.
	Replace(ctx context.Context, userID int, entries []*domain.QueueEntry) error
	ListByUserID(ctx context.Context, userID int) ([]*domain.QueueEntry, error)
	// DeleteForCandidate removes the user's active entries referencing the
	// candidate. Called when a swipe consumes a recommendation.
	DeleteForCandidate(ctx context.Context, userID, candidateID int) error
}
