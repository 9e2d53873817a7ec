package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.ConnectionRequest) error {
	query := `
		INSERT INTO connection_requests (sender_id, receiver_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, request.SenderID, request.ReceiverID, request.Status).
		Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id int) (*domain.ConnectionRequest, error) {
	var request domain.ConnectionRequest
	query := `SELECT id, sender_id, receiver_id, status, created_at, updated_at FROM connection_requests WHERE id = $1`
	err := r.db.GetContext(ctx, &request, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) GetByUsers(ctx context.Context, senderID, receiverID int) (*domain.ConnectionRequest, error) {
	var request domain.ConnectionRequest
	query := `
		SELECT id, sender_id, receiver_id, status, created_at, updated_at
		FROM connection_requests
		WHERE sender_id = $1 AND receiver_id = $2
	`
	err := r.db.GetContext(ctx, &request, query, senderID, receiverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListForUser(ctx context.Context, userID int) ([]*domain.ConnectionRequest, error) {
	var requests []*domain.ConnectionRequest
	query := `
		SELECT id, sender_id, receiver_id, status, created_at, updated_at
		FROM connection_requests
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &requests, query, userID)
	return requests, err
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int, status domain.RequestStatus) error {
	query := `UPDATE connection_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}
