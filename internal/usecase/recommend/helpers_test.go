package recommend

import (
	"context"
	"time"

	"github.com/sanjail3/fyndly-backend/internal/config"
	"github.com/sanjail3/fyndly-backend/internal/domain"
)

func testRecommendConfig() config.RecommendConfig {
	return config.RecommendConfig{
		SimilarityWeight:  0.65,
		IntentWeight:      0.25,
		SkillWeight:       0.2,
		LocalityWeight:    0.1,
		RecencyWeight:     0.1,
		RecencyWindowDays: 30,

		BestAffinitySize:    5,
		BestAffinityPool:    30,
		RecentlyActiveSize:  10,
		RecentWindowDays:    7,
		GeneralSize:         100,
		GeneralPool:         200,
		GeneralTopCut:       80,
		SameInstitutionSize: 10,
		IntentGroupSize:     3,
		ExploratorySize:     10,

		StaleAfter: 24 * time.Hour,
	}
}

func strPtr(s string) *string { return &s }

type profileOption func(*domain.Profile)

func withInstitution(name string) profileOption {
	return func(p *domain.Profile) { p.Institution = strPtr(name) }
}

func withCity(name string) profileOption {
	return func(p *domain.Profile) { p.City = strPtr(name) }
}

func withIntents(intents ...string) profileOption {
	return func(p *domain.Profile) { p.Intents = intents }
}

func withTechSkills(skills ...string) profileOption {
	return func(p *domain.Profile) { p.TechSkills = skills }
}

func withEmbedding(vec ...float64) profileOption {
	return func(p *domain.Profile) { p.Embedding = vec }
}

func withUpdatedAt(t time.Time) profileOption {
	return func(p *domain.Profile) { p.UpdatedAt = t }
}

func withBio(bio string) profileOption {
	return func(p *domain.Profile) { p.Bio = strPtr(bio) }
}

func withAvatar(url string) profileOption {
	return func(p *domain.Profile) { p.AvatarURL = strPtr(url) }
}

func newProfile(userID int, opts ...profileOption) *domain.Profile {
	p := &domain.Profile{
		ID:                   userID,
		UserID:               userID,
		DisplayName:          "user",
		IsOnboardingComplete: true,
		UpdatedAt:            time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type fakeMatchRepo struct {
	matches []*domain.Match
	err     error
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *domain.Match) error { return f.err }

func (f *fakeMatchRepo) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	return nil, domain.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListForUser(ctx context.Context, userID int) ([]*domain.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Match
	for _, m := range f.matches {
		if m.HasUser(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	requests []*domain.ConnectionRequest
	err      error
}

func (f *fakeRequestRepo) Create(ctx context.Context, request *domain.ConnectionRequest) error {
	return f.err
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id int) (*domain.ConnectionRequest, error) {
	return nil, domain.ErrRequestNotFound
}

func (f *fakeRequestRepo) GetByUsers(ctx context.Context, senderID, receiverID int) (*domain.ConnectionRequest, error) {
	return nil, domain.ErrRequestNotFound
}

func (f *fakeRequestRepo) ListForUser(ctx context.Context, userID int) ([]*domain.ConnectionRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.ConnectionRequest
	for _, r := range f.requests {
		if r.HasUser(userID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id int, status domain.RequestStatus) error {
	return f.err
}

type fakeSwipeRepo struct {
	swipes []*domain.Swipe
	err    error
}

func (f *fakeSwipeRepo) Create(ctx context.Context, swipe *domain.Swipe) error { return f.err }

func (f *fakeSwipeRepo) GetByUsers(ctx context.Context, swiperID, swipedID int) (*domain.Swipe, error) {
	return nil, nil
}

func (f *fakeSwipeRepo) ListBySwiperSince(ctx context.Context, swiperID int, since time.Time) ([]*domain.Swipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Swipe
	for _, s := range f.swipes {
		if s.SwiperID == swiperID && !s.CreatedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSwipeRepo) CheckMutualRight(ctx context.Context, user1ID, user2ID int) (bool, error) {
	return false, nil
}

type fakeProfileRepo struct {
	profiles map[int]*domain.Profile
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[int]*domain.Profile)}
	for _, p := range profiles {
		repo.profiles[p.UserID] = p
	}
	return repo
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) UpdateEmbedding(ctx context.Context, userID int, embedding []float64) error {
	if p, ok := f.profiles[userID]; ok {
		p.Embedding = embedding
	}
	return nil
}

func (f *fakeProfileRepo) ListComplete(ctx context.Context) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range f.profiles {
		if p.IsOnboardingComplete {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) ListByUserIDs(ctx context.Context, userIDs []int) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, id := range userIDs {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeQueueRepo struct {
	entries      []*domain.QueueEntry
	replaceCalls int
	err          error
}

// Replace mirrors the postgres store: delete every entry for the user, then
// insert the batch with the unique (user_id, candidate_id, section) key
// silently dropping conflicting rows.
func (f *fakeQueueRepo) Replace(ctx context.Context, userID int, entries []*domain.QueueEntry) error {
	if f.err != nil {
		return f.err
	}
	f.replaceCalls++
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.UserID == userID {
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept

	type key struct {
		userID, candidateID int
		section             string
	}
	occupied := make(map[key]struct{}, len(f.entries))
	for _, e := range f.entries {
		occupied[key{e.UserID, e.CandidateID, e.Section}] = struct{}{}
	}
	for _, e := range entries {
		k := key{e.UserID, e.CandidateID, e.Section}
		if _, conflict := occupied[k]; conflict {
			continue
		}
		occupied[k] = struct{}{}
		e.CreatedAt = time.Now()
		f.entries = append(f.entries, e)
	}
	return nil
}

func (f *fakeQueueRepo) ListByUserID(ctx context.Context, userID int) ([]*domain.QueueEntry, error) {
	var out []*domain.QueueEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeQueueRepo) DeleteForCandidate(ctx context.Context, userID, candidateID int) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.UserID == userID && e.CandidateID == candidateID {
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return nil
}
