package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

type queueRepository struct {
	db *sqlx.DB
}

func NewQueueRepository(db *sqlx.DB) repository.QueueRepository {
	return &queueRepository{db: db}
}

// Replace runs delete-then-insert inside one transaction, guarded by a
// per-user advisory lock so that concurrent generation runs for the same user
// serialize instead of interleaving. A reader never observes a partial batch.
// The delete covers every existing entry: the batch being replaced is often a
// stale one from a previous day, and leaving its rows behind would make the
// unique (user_id, candidate_id, section) key swallow the replacement inserts.
func (r *queueRepository) Replace(ctx context.Context, userID int, entries []*domain.QueueEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Held until commit; keyed by user id.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(userID)); err != nil {
		return fmt.Errorf("failed to acquire generation lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM queue_entries WHERE user_id = $1`,
		userID,
	); err != nil {
		return fmt.Errorf("failed to delete previous batch: %w", err)
	}

	insert := `
		INSERT INTO queue_entries (user_id, candidate_id, section, score, rank, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, candidate_id, section) DO NOTHING
	`
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, insert,
			entry.UserID, entry.CandidateID, entry.Section, entry.Score, entry.Rank, entry.BatchID,
		); err != nil {
			return fmt.Errorf("failed to insert queue entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit queue batch: %w", err)
	}
	return nil
}

func (r *queueRepository) ListByUserID(ctx context.Context, userID int) ([]*domain.QueueEntry, error) {
	var entries []*domain.QueueEntry
	query := `
		SELECT id, user_id, candidate_id, section, score, rank, batch_id, created_at
		FROM queue_entries
		WHERE user_id = $1
		ORDER BY rank ASC
	`
	err := r.db.SelectContext(ctx, &entries, query, userID)
	return entries, err
}

func (r *queueRepository) DeleteForCandidate(ctx context.Context, userID, candidateID int) error {
	query := `DELETE FROM queue_entries WHERE user_id = $1 AND candidate_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, candidateID)
	return err
}
