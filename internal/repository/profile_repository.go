package repository

import (
	"context"

	"github.com/sanjail3/fyndly-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	UpdateEmbedding(ctx context.Context, userID int, embedding []float64) error
	// ListComplete returns all profiles that finished onboarding. This is the
	// raw candidate pool for queue generation.
	ListComplete(ctx context.Context) ([]*domain.Profile, error)
	ListByUserIDs(ctx context.Context, userIDs []int) ([]*domain.Profile, error)
}
