package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/infrastructure/cache"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

// UseCase serves the persisted queue back to callers, grouped by section.
// It never regenerates a stale queue itself; it only signals staleness so
// the caller can trigger generation and retry.
type UseCase struct {
	queueRepo   repository.QueueRepository
	profileRepo repository.ProfileRepository
	queueCache  *cache.QueueCache
	staleAfter  time.Duration
	now         func() time.Time
}

func NewUseCase(
	queueRepo repository.QueueRepository,
	profileRepo repository.ProfileRepository,
	queueCache *cache.QueueCache,
	staleAfter time.Duration,
) *UseCase {
	return &UseCase{
		queueRepo:   queueRepo,
		profileRepo: profileRepo,
		queueCache:  queueCache,
		staleAfter:  staleAfter,
		now:         time.Now,
	}
}

// EntryView is one recommendation as served to the client.
type EntryView struct {
	Candidate *domain.PublicProfile `json:"candidate"`
	Section   string                `json:"section"`
	Score     float64               `json:"score"`
	Rank      int                   `json:"rank"`
}

// View is the grouped queue for one user. Stale means the caller should
// trigger regeneration and read again.
type View struct {
	Stale       bool                    `json:"stale"`
	GeneratedAt *time.Time              `json:"generated_at,omitempty"`
	Sections    map[string][]*EntryView `json:"sections"`
}

// Read returns the user's queue grouped by section, or a staleness signal
// when the queue is empty or its oldest entry is older than the configured
// threshold.
func (uc *UseCase) Read(ctx context.Context, userID int) (*View, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	if payload, err := uc.queueCache.Get(ctx, userID); err == nil && payload != nil {
		var view View
		if jerr := json.Unmarshal(payload, &view); jerr == nil && !uc.isStale(&view) {
			return &view, nil
		}
	}

	entries, err := uc.queueRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}
	if len(entries) == 0 {
		return &View{Stale: true, Sections: map[string][]*EntryView{}}, nil
	}

	oldest := entries[0].CreatedAt
	for _, e := range entries {
		if e.CreatedAt.Before(oldest) {
			oldest = e.CreatedAt
		}
	}
	if uc.now().Sub(oldest) > uc.staleAfter {
		return &View{Stale: true, GeneratedAt: &oldest, Sections: map[string][]*EntryView{}}, nil
	}

	view, err := uc.buildView(ctx, entries, oldest)
	if err != nil {
		return nil, err
	}

	if payload, jerr := json.Marshal(view); jerr == nil {
		if cerr := uc.queueCache.Set(ctx, userID, payload); cerr != nil {
			fmt.Printf("Warning: failed to cache queue for user %d: %v\n", userID, cerr)
		}
	}

	return view, nil
}

func (uc *UseCase) buildView(ctx context.Context, entries []*domain.QueueEntry, oldest time.Time) (*View, error) {
	candidateIDs := make([]int, 0, len(entries))
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.CandidateID]; dup {
			continue
		}
		seen[e.CandidateID] = struct{}{}
		candidateIDs = append(candidateIDs, e.CandidateID)
	}

	profiles, err := uc.profileRepo.ListByUserIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate profiles: %w", err)
	}
	byID := make(map[int]*domain.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}

	view := &View{
		GeneratedAt: &oldest,
		Sections:    make(map[string][]*EntryView),
	}
	for _, e := range entries {
		profile, ok := byID[e.CandidateID]
		if !ok {
			// Candidate profile deleted since generation; skip the entry.
			continue
		}
		view.Sections[e.Section] = append(view.Sections[e.Section], &EntryView{
			Candidate: profile.Public(),
			Section:   e.Section,
			Score:     e.Score,
			Rank:      e.Rank,
		})
	}
	return view, nil
}

func (uc *UseCase) isStale(view *View) bool {
	if view.Stale {
		return true
	}
	if view.GeneratedAt == nil {
		return true
	}
	return uc.now().Sub(*view.GeneratedAt) > uc.staleAfter
}
