package recommend

import (
	"math/rand"
	"sort"
	"time"

	"github.com/sanjail3/fyndly-backend/internal/config"
	"github.com/sanjail3/fyndly-backend/internal/domain"
)

// Entry is one assembled recommendation before materialization. Score scale
// is section-specific (combined score x100 or profile completeness x20);
// it sorts within a section but is not comparable across sections.
type Entry struct {
	CandidateID int
	Section     string
	Score       float64
}

// SectionBuilder partitions a scored candidate pool into the named sections.
// Sections are evaluated in a fixed order against an accumulating dedup set;
// the same-institution section is evaluated against the raw pool instead, so
// it can repeat candidates already placed elsewhere. That repetition is
// intentional (always show campus peers) and must stay.
//
// The random source drives the general-section shuffle and the exploratory
// sampling. Inject a seeded rand in tests for structural assertions.
type SectionBuilder struct {
	cfg    config.RecommendConfig
	scorer *Scorer
	rng    *rand.Rand
}

func NewSectionBuilder(cfg config.RecommendConfig, scorer *Scorer, rng *rand.Rand) *SectionBuilder {
	return &SectionBuilder{cfg: cfg, scorer: scorer, rng: rng}
}

// Build assembles the final ordered entry list from the eligible candidate
// pool. `hits` is the similarity ranking for the requester (may be empty when
// the requester has no embedding). Entries come back in presentation order;
// callers assign ranks by position.
func (b *SectionBuilder) Build(requester *domain.Profile, pool []*domain.Profile, hits []Hit, now time.Time) []Entry {
	if len(pool) == 0 {
		return nil
	}

	byID := make(map[int]*domain.Profile, len(pool))
	for _, p := range pool {
		byID[p.UserID] = p
	}
	sim := make(map[int]float64, len(hits))
	for _, h := range hits {
		sim[h.CandidateID] = h.Similarity
	}

	dedup := make(map[int]struct{})

	bestAffinity := b.buildBestAffinity(requester, byID, hits, dedup)
	recentlyActive := b.buildRecentlyActive(pool, now, dedup)
	general := b.buildGeneral(requester, pool, byID, hits, sim, dedup)
	sameInstitution := b.buildSameInstitution(requester, pool)
	intentGrouped := b.buildIntentGrouped(pool, dedup)
	exploratory := b.buildExploratory(requester, pool, sim, now, dedup)

	// Global dedup across every section except same_institution: first
	// occurrence wins in section-priority order. Same-institution entries are
	// appended afterwards without consulting the global set.
	ordered := make([]Entry, 0, len(bestAffinity)+len(recentlyActive)+len(general)+len(intentGrouped)+len(exploratory)+len(sameInstitution))
	seen := make(map[int]struct{})
	for _, group := range [][]Entry{bestAffinity, recentlyActive, general, intentGrouped, exploratory} {
		for _, e := range group {
			if _, dup := seen[e.CandidateID]; dup {
				continue
			}
			seen[e.CandidateID] = struct{}{}
			ordered = append(ordered, e)
		}
	}
	ordered = append(ordered, sameInstitution...)

	return ordered
}

// buildBestAffinity re-ranks the top of the similarity list by
// 0.7*similarity + 0.3*shared-intent count.
func (b *SectionBuilder) buildBestAffinity(requester *domain.Profile, byID map[int]*domain.Profile, hits []Hit, dedup map[int]struct{}) []Entry {
	pool := hits
	if len(pool) > b.cfg.BestAffinityPool {
		pool = pool[:b.cfg.BestAffinityPool]
	}

	type scored struct {
		id    int
		score float64
	}
	ranked := make([]scored, 0, len(pool))
	for _, h := range pool {
		candidate, ok := byID[h.CandidateID]
		if !ok {
			continue
		}
		shared := overlapCount(requester.Intents, candidate.Intents)
		ranked = append(ranked, scored{
			id:    h.CandidateID,
			score: 0.7*h.Similarity + 0.3*float64(shared),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})

	entries := make([]Entry, 0, b.cfg.BestAffinitySize)
	for _, c := range ranked {
		if len(entries) >= b.cfg.BestAffinitySize {
			break
		}
		if _, used := dedup[c.id]; used {
			continue
		}
		dedup[c.id] = struct{}{}
		entries = append(entries, Entry{
			CandidateID: c.id,
			Section:     domain.SectionBestAffinity,
			Score:       c.score * 100,
		})
	}
	return entries
}

// buildRecentlyActive picks candidates updated within the recent window,
// ranked by profile completeness, then most recent update.
func (b *SectionBuilder) buildRecentlyActive(pool []*domain.Profile, now time.Time, dedup map[int]struct{}) []Entry {
	cutoff := now.Add(-time.Duration(b.cfg.RecentWindowDays) * 24 * time.Hour)

	recent := make([]*domain.Profile, 0, len(pool))
	for _, p := range pool {
		if _, used := dedup[p.UserID]; used {
			continue
		}
		if p.UpdatedAt.Before(cutoff) {
			continue
		}
		recent = append(recent, p)
	}
	sortByCompleteness(recent)

	entries := make([]Entry, 0, b.cfg.RecentlyActiveSize)
	for _, p := range recent {
		if len(entries) >= b.cfg.RecentlyActiveSize {
			break
		}
		dedup[p.UserID] = struct{}{}
		entries = append(entries, Entry{
			CandidateID: p.UserID,
			Section:     domain.SectionRecentlyActive,
			Score:       float64(p.CompletenessScore()) * 20,
		})
	}
	return entries
}

// buildGeneral takes the deterministic top slice of a larger similarity pool
// scored by 0.7*similarity + 0.3*shared-skill count, injects a random sample
// from the remainder for diversity, then shuffles the combined list so the
// deterministic ranking is not visually obvious to the user.
func (b *SectionBuilder) buildGeneral(requester *domain.Profile, pool []*domain.Profile, byID map[int]*domain.Profile, hits []Hit, sim map[int]float64, dedup map[int]struct{}) []Entry {
	// Similarity pool when the requester has an embedding, otherwise the whole
	// candidate pool with skill overlap as the only signal.
	candidates := make([]*domain.Profile, 0, len(pool))
	if len(hits) > 0 {
		limit := b.cfg.GeneralPool
		for i, h := range hits {
			if i >= limit {
				break
			}
			if candidate, ok := byID[h.CandidateID]; ok {
				candidates = append(candidates, candidate)
			}
		}
	} else {
		candidates = append(candidates, pool...)
	}

	type scored struct {
		id    int
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if _, used := dedup[candidate.UserID]; used {
			continue
		}
		shared := overlapCount(requester.AllSkills(), candidate.AllSkills())
		ranked = append(ranked, scored{
			id:    candidate.UserID,
			score: 0.7*sim[candidate.UserID] + 0.3*float64(shared),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})

	topCut := b.cfg.GeneralTopCut
	if topCut > len(ranked) {
		topCut = len(ranked)
	}
	selected := make([]scored, 0, b.cfg.GeneralSize)
	selected = append(selected, ranked[:topCut]...)

	// Exploratory injection: a fixed-size random sample from the remainder.
	remainder := ranked[topCut:]
	sampleSize := b.cfg.GeneralSize - b.cfg.GeneralTopCut
	if sampleSize > len(remainder) {
		sampleSize = len(remainder)
	}
	for i, idx := range b.rng.Perm(len(remainder)) {
		if i >= sampleSize {
			break
		}
		selected = append(selected, remainder[idx])
	}

	// Intentional shuffle of the combined list.
	b.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	if len(selected) > b.cfg.GeneralSize {
		selected = selected[:b.cfg.GeneralSize]
	}

	entries := make([]Entry, 0, len(selected))
	for _, c := range selected {
		dedup[c.id] = struct{}{}
		entries = append(entries, Entry{
			CandidateID: c.id,
			Section:     domain.SectionGeneral,
			Score:       c.score * 100,
		})
	}
	return entries
}

// buildSameInstitution works off the raw pool, not the dedup set, so campus
// peers stay visible even when another section already placed them. Dedup is
// internal only, and the selection never feeds the global set either.
func (b *SectionBuilder) buildSameInstitution(requester *domain.Profile, pool []*domain.Profile) []Entry {
	if requester.Institution == nil || *requester.Institution == "" {
		return nil
	}

	seen := make(map[int]struct{})
	peers := make([]*domain.Profile, 0, len(pool))
	for _, p := range pool {
		if !sameString(requester.Institution, p.Institution) {
			continue
		}
		if _, dup := seen[p.UserID]; dup {
			continue
		}
		seen[p.UserID] = struct{}{}
		peers = append(peers, p)
	}
	sortByCompleteness(peers)

	if len(peers) > b.cfg.SameInstitutionSize {
		peers = peers[:b.cfg.SameInstitutionSize]
	}
	entries := make([]Entry, 0, len(peers))
	for _, p := range peers {
		entries = append(entries, Entry{
			CandidateID: p.UserID,
			Section:     domain.SectionSameInstitution,
			Score:       float64(p.CompletenessScore()) * 20,
		})
	}
	return entries
}

// buildIntentGrouped selects up to N top candidates per distinct intent tag
// observed in the pool. A candidate may surface under several tags here; the
// final global dedup keeps only its first occurrence.
func (b *SectionBuilder) buildIntentGrouped(pool []*domain.Profile, dedup map[int]struct{}) []Entry {
	byIntent := make(map[string][]*domain.Profile)
	for _, p := range pool {
		if _, used := dedup[p.UserID]; used {
			continue
		}
		for _, intent := range p.Intents {
			byIntent[intent] = append(byIntent[intent], p)
		}
	}

	// Deterministic tag order.
	tags := make([]string, 0, len(byIntent))
	for tag := range byIntent {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var entries []Entry
	selected := make(map[int]struct{})
	for _, tag := range tags {
		group := byIntent[tag]
		sortByCompleteness(group)
		for i, p := range group {
			if i >= b.cfg.IntentGroupSize {
				break
			}
			entries = append(entries, Entry{
				CandidateID: p.UserID,
				Section:     domain.SectionIntentGrouped,
				Score:       float64(p.CompletenessScore()) * 20,
			})
			selected[p.UserID] = struct{}{}
		}
	}
	for id := range selected {
		dedup[id] = struct{}{}
	}
	return entries
}

// buildExploratory is a uniform random sample from whatever the earlier
// sections left untouched.
func (b *SectionBuilder) buildExploratory(requester *domain.Profile, pool []*domain.Profile, sim map[int]float64, now time.Time, dedup map[int]struct{}) []Entry {
	remaining := make([]*domain.Profile, 0, len(pool))
	for _, p := range pool {
		if _, used := dedup[p.UserID]; used {
			continue
		}
		remaining = append(remaining, p)
	}

	size := b.cfg.ExploratorySize
	if size > len(remaining) {
		size = len(remaining)
	}
	entries := make([]Entry, 0, size)
	for i, idx := range b.rng.Perm(len(remaining)) {
		if i >= size {
			break
		}
		p := remaining[idx]
		dedup[p.UserID] = struct{}{}
		entries = append(entries, Entry{
			CandidateID: p.UserID,
			Section:     domain.SectionExploratory,
			Score:       b.scorer.Score(requester, p, sim[p.UserID], now) * 100,
		})
	}
	return entries
}

// sortByCompleteness orders profiles by completeness desc, then most recent
// update, then user id for a stable total order.
func sortByCompleteness(profiles []*domain.Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		ci, cj := profiles[i].CompletenessScore(), profiles[j].CompletenessScore()
		if ci != cj {
			return ci > cj
		}
		if !profiles[i].UpdatedAt.Equal(profiles[j].UpdatedAt) {
			return profiles[i].UpdatedAt.After(profiles[j].UpdatedAt)
		}
		return profiles[i].UserID < profiles[j].UserID
	})
}
