package swipe

import (
	"context"
	"fmt"

	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/infrastructure/cache"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

type UseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	queueRepo   repository.QueueRepository
	queueCache  *cache.QueueCache
}

func NewUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	queueRepo repository.QueueRepository,
	queueCache *cache.QueueCache,
) *UseCase {
	return &UseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		queueRepo:   queueRepo,
		queueCache:  queueCache,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	SwipedUserID int    `json:"swiped_user_id" binding:"required"`
	Direction    string `json:"direction" binding:"required,oneof=left right"`
}

// SwipeResponse represents swipe result
type SwipeResponse struct {
	IsMatch     bool                  `json:"is_match"`
	Swipe       *domain.Swipe         `json:"swipe,omitempty"`
	Match       *domain.Match         `json:"match,omitempty"`
	MatchedUser *domain.PublicProfile `json:"matched_user,omitempty"`
}

// CreateSwipe records the swipe, consumes the corresponding queue entries
// and creates the match on a mutual right swipe.
func (uc *UseCase) CreateSwipe(ctx context.Context, swiperID int, req *SwipeRequest) (*SwipeResponse, error) {
	if swiperID == req.SwipedUserID {
		return nil, domain.ErrCannotSwipeSelf
	}

	existingSwipe, err := uc.swipeRepo.GetByUsers(ctx, swiperID, req.SwipedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing swipe: %w", err)
	}
	if existingSwipe != nil {
		return nil, domain.ErrSwipeAlreadyExists
	}

	swipe := &domain.Swipe{
		SwiperID:  swiperID,
		SwipedID:  req.SwipedUserID,
		Direction: domain.SwipeDirection(req.Direction),
	}
	if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
		return nil, fmt.Errorf("failed to create swipe: %w", err)
	}

	// The swipe consumes the recommendation regardless of direction.
	if err := uc.queueRepo.DeleteForCandidate(ctx, swiperID, req.SwipedUserID); err != nil {
		fmt.Printf("Warning: failed to consume queue entries for user %d: %v\n", swiperID, err)
	}
	if err := uc.queueCache.Invalidate(ctx, swiperID); err != nil {
		fmt.Printf("Warning: failed to invalidate queue cache for user %d: %v\n", swiperID, err)
	}

	response := &SwipeResponse{Swipe: swipe}

	if swipe.IsRight() {
		isMutual, err := uc.swipeRepo.CheckMutualRight(ctx, swiperID, req.SwipedUserID)
		if err != nil {
			fmt.Printf("Warning: mutual swipe check failed: %v\n", err)
			return response, nil // The swipe itself succeeded.
		}

		if isMutual {
			match, err := uc.createMatch(ctx, swiperID, req.SwipedUserID)
			if err != nil {
				fmt.Printf("Warning: failed to create match: %v\n", err)
				return response, nil
			}

			response.IsMatch = true
			response.Match = match
			if profile, perr := uc.profileRepo.GetByUserID(ctx, req.SwipedUserID); perr == nil {
				response.MatchedUser = profile.Public()
			}
		}
	}

	return response, nil
}

// createMatch creates the match exactly once per unordered pair.
func (uc *UseCase) createMatch(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	existing, err := uc.matchRepo.GetByUsers(ctx, user1ID, user2ID)
	if err == nil && existing != nil {
		return existing, nil
	}

	match := &domain.Match{User1ID: user1ID, User2ID: user2ID}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// ListMatches returns the user's matches with the other side's public profile.
type MatchView struct {
	Match *domain.Match         `json:"match"`
	User  *domain.PublicProfile `json:"user"`
}

func (uc *UseCase) ListMatches(ctx context.Context, userID int) ([]*MatchView, error) {
	matches, err := uc.matchRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	views := make([]*MatchView, 0, len(matches))
	for _, match := range matches {
		otherID, ok := match.GetOtherUserID(userID)
		if !ok {
			continue
		}
		profile, err := uc.profileRepo.GetByUserID(ctx, otherID)
		if err != nil {
			continue
		}
		views = append(views, &MatchView{Match: match, User: profile.Public()})
	}
	return views, nil
}
