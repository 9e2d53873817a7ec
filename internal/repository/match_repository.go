package repository

import (
	"context"

	"github.com/sanjail3/fyndly-backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	ListForUser(ctx context.Context, userID int) ([]*domain.Match, error)
}
