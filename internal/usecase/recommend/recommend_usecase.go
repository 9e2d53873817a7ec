package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sanjail3/fyndly-backend/internal/config"
	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

// CacheInvalidator drops any cached queue view after a regeneration.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID int) error
}

// UseCase runs one full queue generation: exclusions, similarity retrieval,
// scoring, section assembly and materialization. Generation either completes
// and writes a full replacement batch or fails leaving the previous batch
// intact; it never writes a partial queue.
type UseCase struct {
	cfg         config.RecommendConfig
	profileRepo repository.ProfileRepository
	queueRepo   repository.QueueRepository
	resolver    *ExclusionResolver
	retriever   *Retriever
	builder     *SectionBuilder
	cache       CacheInvalidator
	now         func() time.Time
}

func NewUseCase(
	cfg config.RecommendConfig,
	profileRepo repository.ProfileRepository,
	queueRepo repository.QueueRepository,
	resolver *ExclusionResolver,
	retriever *Retriever,
	builder *SectionBuilder,
	cache CacheInvalidator,
) *UseCase {
	return &UseCase{
		cfg:         cfg,
		profileRepo: profileRepo,
		queueRepo:   queueRepo,
		resolver:    resolver,
		retriever:   retriever,
		builder:     builder,
		cache:       cache,
		now:         time.Now,
	}
}

// GenerateResult reports what one generation run produced. An empty result
// with a Reason is a valid outcome ("no recommendations right now"), distinct
// from a failed run.
type GenerateResult struct {
	BatchID  uuid.UUID      `json:"batch_id"`
	Total    int            `json:"total"`
	Sections map[string]int `json:"sections"`
	Reason   string         `json:"reason,omitempty"`
}

// Generate builds and persists a fresh queue for the user, replacing the
// previous batch whether it was written earlier today or has gone stale.
func (uc *UseCase) Generate(ctx context.Context, userID int) (*GenerateResult, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	requester, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	since := periodStart(now)

	excluded, err := uc.resolver.ResolveWithRecentSwipes(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	all, err := uc.profileRepo.ListComplete(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate profiles: %w", err)
	}

	pool := filterPool(all, excluded)
	if len(pool) == 0 {
		// Retry with the permanent exclusions only: drop the "already shown
		// today" restriction so an exhausted user still sees something.
		permanent, rerr := uc.resolver.Resolve(ctx, userID)
		if rerr != nil {
			return nil, rerr
		}
		pool = filterPool(all, permanent)
	}
	if len(pool) == 0 {
		return &GenerateResult{
			BatchID:  uuid.Nil,
			Sections: map[string]int{},
			Reason:   "no eligible candidates",
		}, nil
	}

	hits := uc.retriever.TopK(requester, pool, uc.cfg.GeneralPool)
	assembled := uc.builder.Build(requester, pool, hits, now)

	batchID := uuid.New()
	entries := make([]*domain.QueueEntry, 0, len(assembled))
	sections := make(map[string]int)
	for rank, e := range assembled {
		entries = append(entries, &domain.QueueEntry{
			UserID:      userID,
			CandidateID: e.CandidateID,
			Section:     e.Section,
			Score:       e.Score,
			Rank:        rank,
			BatchID:     batchID,
		})
		sections[e.Section]++
	}

	if err := uc.queueRepo.Replace(ctx, userID, entries); err != nil {
		return nil, fmt.Errorf("failed to materialize queue: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, userID); err != nil {
			fmt.Printf("Warning: failed to invalidate queue cache for user %d: %v\n", userID, err)
		}
	}

	return &GenerateResult{
		BatchID:  batchID,
		Total:    len(entries),
		Sections: sections,
	}, nil
}

func filterPool(all []*domain.Profile, excluded map[int]struct{}) []*domain.Profile {
	pool := make([]*domain.Profile, 0, len(all))
	for _, p := range all {
		if _, skip := excluded[p.UserID]; skip {
			continue
		}
		pool = append(pool, p)
	}
	return pool
}

// periodStart is local midnight: the cutoff for the "already shown today"
// swipe exclusion.
func periodStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
