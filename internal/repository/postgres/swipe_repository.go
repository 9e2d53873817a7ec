package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	query := `
		INSERT INTO swipes (swiper_id, swiped_id, direction)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, swipe.SwiperID, swipe.SwipedID, swipe.Direction).
		Scan(&swipe.ID, &swipe.CreatedAt)
}

func (r *swipeRepository) GetByUsers(ctx context.Context, swiperID, swipedID int) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `
		SELECT id, swiper_id, swiped_id, direction, created_at FROM swipes
		WHERE swiper_id = $1 AND swiped_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &swipe, query, swiperID, swipedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) ListBySwiperSince(ctx context.Context, swiperID int, since time.Time) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	query := `
		SELECT id, swiper_id, swiped_id, direction, created_at FROM swipes
		WHERE swiper_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &swipes, query, swiperID, since)
	return swipes, err
}

func (r *swipeRepository) CheckMutualRight(ctx context.Context, user1ID, user2ID int) (bool, error) {
	var mutual bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipes s1
			JOIN swipes s2 ON s1.swiper_id = s2.swiped_id AND s1.swiped_id = s2.swiper_id
			WHERE s1.swiper_id = $1 AND s1.swiped_id = $2
			  AND s1.direction = 'right' AND s2.direction = 'right'
		)
	`
	err := r.db.GetContext(ctx, &mutual, query, user1ID, user2ID)
	return mutual, err
}
