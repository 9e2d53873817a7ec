package repository

import (
	"context"
	"time"

	"github.com/sanjail3/fyndly-backend/internal/domain"
)

type SwipeRepository interface {
	Create(ctx context.Context, swipe *domain.Swipe) error
	GetByUsers(ctx context.Context, swiperID, swipedID int) (*domain.Swipe, error)
	// ListBySwiperSince returns swipes made by the user at or after the given
	// time. Used for the "already shown today" exclusion.
	ListBySwiperSince(ctx context.Context, swiperID int, since time.Time) ([]*domain.Swipe, error)
	CheckMutualRight(ctx context.Context, user1ID, user2ID int) (bool, error)
}
