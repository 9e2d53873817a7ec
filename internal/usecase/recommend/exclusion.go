package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/sanjail3/fyndly-backend/internal/repository"
)

// ExclusionResolver computes the set of user ids that must never be
// recommended to a given user. The set is recomputed fresh on every call;
// relationship state changes too often to cache here.
type ExclusionResolver struct {
	matchRepo   repository.MatchRepository
	requestRepo repository.RequestRepository
	swipeRepo   repository.SwipeRepository
}

func NewExclusionResolver(
	matchRepo repository.MatchRepository,
	requestRepo repository.RequestRepository,
	swipeRepo repository.SwipeRepository,
) *ExclusionResolver {
	return &ExclusionResolver{
		matchRepo:   matchRepo,
		requestRepo: requestRepo,
		swipeRepo:   swipeRepo,
	}
}

// Resolve returns the permanent exclusions: the user itself, everyone
// already matched, and everyone with a connection request in either
// direction regardless of status (pending, accepted and rejected alike).
// Store errors propagate; an empty set on failure would leak matched or
// rejected users back into the feed.
func (r *ExclusionResolver) Resolve(ctx context.Context, userID int) (map[int]struct{}, error) {
	excluded := map[int]struct{}{userID: {}}

	matches, err := r.matchRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	for _, match := range matches {
		if other, ok := match.GetOtherUserID(userID); ok {
			excluded[other] = struct{}{}
		}
	}

	requests, err := r.requestRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connection requests: %w", err)
	}
	for _, request := range requests {
		if other, ok := request.GetOtherUserID(userID); ok {
			excluded[other] = struct{}{}
		}
	}

	return excluded, nil
}

// ResolveWithRecentSwipes extends Resolve with every candidate the user has
// swiped since the given time. This is the short-term "already shown"
// restriction that the empty-pool fallback drops.
func (r *ExclusionResolver) ResolveWithRecentSwipes(ctx context.Context, userID int, since time.Time) (map[int]struct{}, error) {
	excluded, err := r.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	swipes, err := r.swipeRepo.ListBySwiperSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent swipes: %w", err)
	}
	for _, swipe := range swipes {
		excluded[swipe.SwipedID] = struct{}{}
	}

	return excluded, nil
}
