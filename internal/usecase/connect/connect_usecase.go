package connect

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

// UseCase manages directional connection requests. Accepting a request
// creates the match row for the pair.
type UseCase struct {
	requestRepo repository.RequestRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
}

func NewUseCase(
	requestRepo repository.RequestRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
	}
}

// SendRequest creates a pending request from sender to receiver. A request
// already existing in either direction blocks a new one.
func (uc *UseCase) SendRequest(ctx context.Context, senderID, receiverID int) (*domain.ConnectionRequest, error) {
	if senderID == receiverID {
		return nil, domain.ErrCannotRequestSelf
	}

	if _, err := uc.profileRepo.GetByUserID(ctx, receiverID); err != nil {
		return nil, err
	}

	for _, pair := range [][2]int{{senderID, receiverID}, {receiverID, senderID}} {
		existing, err := uc.requestRepo.GetByUsers(ctx, pair[0], pair[1])
		if err != nil && !errors.Is(err, domain.ErrRequestNotFound) {
			return nil, fmt.Errorf("failed to check existing request: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrRequestAlreadyExists
		}
	}

	request := &domain.ConnectionRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.RequestPending,
	}
	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return request, nil
}

// Respond accepts or rejects a pending request. Only the receiver may
// respond. Accepting creates the match.
func (uc *UseCase) Respond(ctx context.Context, userID, requestID int, accept bool) (*domain.ConnectionRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ReceiverID != userID {
		return nil, domain.ErrRequestNotFound
	}
	if request.Status != domain.RequestPending {
		return nil, domain.ErrRequestAlreadyExists
	}

	status := domain.RequestRejected
	if accept {
		status = domain.RequestAccepted
	}
	if err := uc.requestRepo.UpdateStatus(ctx, requestID, status); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	request.Status = status

	if accept {
		match := &domain.Match{User1ID: request.SenderID, User2ID: request.ReceiverID}
		if err := uc.matchRepo.Create(ctx, match); err != nil {
			return nil, fmt.Errorf("failed to create match: %w", err)
		}
	}

	return request, nil
}

// RequestView pairs a request with the other side's public profile.
type RequestView struct {
	Request *domain.ConnectionRequest `json:"request"`
	User    *domain.PublicProfile     `json:"user"`
}

func (uc *UseCase) ListForUser(ctx context.Context, userID int) ([]*RequestView, error) {
	requests, err := uc.requestRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	views := make([]*RequestView, 0, len(requests))
	for _, request := range requests {
		otherID, ok := request.GetOtherUserID(userID)
		if !ok {
			continue
		}
		profile, err := uc.profileRepo.GetByUserID(ctx, otherID)
		if err != nil {
			continue
		}
		views = append(views, &RequestView{Request: request, User: profile.Public()})
	}
	return views, nil
}
