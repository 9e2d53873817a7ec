package repository

import (
	"context"

	"github.com/sanjail3/fyndly-backend/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, request *domain.ConnectionRequest) error
	GetByID(ctx context.Context, id int) (*domain.ConnectionRequest, error)
	GetByUsers(ctx context.Context, senderID, receiverID int) (*domain.ConnectionRequest, error)
	// ListForUser returns every request where the user is sender or receiver,
	// in any status. The exclusion resolver depends on all statuses being here.
	ListForUser(ctx context.Context, userID int) ([]*domain.ConnectionRequest, error)
	UpdateStatus(ctx context.Context, id int, status domain.RequestStatus) error
}
