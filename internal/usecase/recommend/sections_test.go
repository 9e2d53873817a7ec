package recommend

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjail3/fyndly-backend/internal/config"
	"github.com/sanjail3/fyndly-backend/internal/domain"
)

// smallSectionConfig shrinks section sizes so a pool of a dozen profiles
// still exercises every section.
func smallSectionConfig() config.RecommendConfig {
	cfg := testRecommendConfig()
	cfg.BestAffinitySize = 2
	cfg.BestAffinityPool = 5
	cfg.RecentlyActiveSize = 2
	cfg.GeneralSize = 3
	cfg.GeneralPool = 10
	cfg.GeneralTopCut = 2
	cfg.SameInstitutionSize = 3
	cfg.IntentGroupSize = 1
	cfg.ExploratorySize = 2
	return cfg
}

func newSectionBuilder(cfg config.RecommendConfig, seed int64) *SectionBuilder {
	return NewSectionBuilder(cfg, NewScorer(cfg), rand.New(rand.NewSource(seed)))
}

func sectionIDs(entries []Entry, section string) []int {
	var ids []int
	for _, e := range entries {
		if e.Section == section {
			ids = append(ids, e.CandidateID)
		}
	}
	return ids
}

func TestBuildEmptyPool(t *testing.T) {
	builder := newSectionBuilder(smallSectionConfig(), 1)
	assert.Nil(t, builder.Build(newProfile(1), nil, nil, time.Now()))
}

func TestBuildDedupAcrossSections(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	requester := newProfile(1, withEmbedding(1, 0), withIntents("hackathon"), withUpdatedAt(now))

	var pool []*domain.Profile
	for i := 2; i <= 13; i++ {
		pool = append(pool, newProfile(i,
			withEmbedding(1, float64(i)/10),
			withIntents("hackathon"),
			withUpdatedAt(now.Add(-time.Duration(i)*time.Hour)),
		))
	}

	builder := newSectionBuilder(smallSectionConfig(), 42)
	retriever := NewRetriever()
	hits := retriever.TopK(requester, pool, 10)
	entries := builder.Build(requester, pool, hits, now)
	require.NotEmpty(t, entries)

	seen := make(map[int]string)
	for _, e := range entries {
		if e.Section == domain.SectionSameInstitution {
			continue
		}
		prev, dup := seen[e.CandidateID]
		assert.Falsef(t, dup, "candidate %d appears in both %s and %s", e.CandidateID, prev, e.Section)
		seen[e.CandidateID] = e.Section
	}
}

func TestBuildSectionSizeCaps(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := smallSectionConfig()
	requester := newProfile(1, withEmbedding(1, 0), withIntents("hackathon"), withUpdatedAt(now))

	var pool []*domain.Profile
	for i := 2; i <= 21; i++ {
		pool = append(pool, newProfile(i,
			withEmbedding(1, float64(i)/10),
			withIntents("hackathon", "study-group"),
			withUpdatedAt(now.Add(-time.Hour)),
		))
	}

	builder := newSectionBuilder(cfg, 7)
	hits := NewRetriever().TopK(requester, pool, cfg.GeneralPool)
	entries := builder.Build(requester, pool, hits, now)

	assert.LessOrEqual(t, len(sectionIDs(entries, domain.SectionBestAffinity)), cfg.BestAffinitySize)
	assert.LessOrEqual(t, len(sectionIDs(entries, domain.SectionRecentlyActive)), cfg.RecentlyActiveSize)
	assert.LessOrEqual(t, len(sectionIDs(entries, domain.SectionGeneral)), cfg.GeneralSize)
	assert.LessOrEqual(t, len(sectionIDs(entries, domain.SectionExploratory)), cfg.ExploratorySize)
	assert.Equal(t, cfg.BestAffinitySize, len(sectionIDs(entries, domain.SectionBestAffinity)))
}

func TestBuildSameInstitutionIgnoresDedup(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := smallSectionConfig()
	requester := newProfile(1, withEmbedding(1, 0), withInstitution("IIT Madras"), withUpdatedAt(now))

	// Campus peers similar enough to land in best_affinity as well.
	pool := []*domain.Profile{
		newProfile(2, withEmbedding(1, 0), withInstitution("IIT Madras"), withUpdatedAt(now)),
		newProfile(3, withEmbedding(1, 0.1), withInstitution("IIT Madras"), withUpdatedAt(now)),
		newProfile(4, withEmbedding(0, 1), withInstitution("IIT Bombay"), withUpdatedAt(now)),
	}

	builder := newSectionBuilder(cfg, 3)
	hits := NewRetriever().TopK(requester, pool, cfg.GeneralPool)
	entries := builder.Build(requester, pool, hits, now)

	campus := sectionIDs(entries, domain.SectionSameInstitution)
	assert.ElementsMatch(t, []int{2, 3}, campus)

	// The same peers also surface in other sections: campus visibility does
	// not consume their one global slot.
	others := make(map[int]struct{})
	for _, e := range entries {
		if e.Section != domain.SectionSameInstitution {
			others[e.CandidateID] = struct{}{}
		}
	}
	assert.Contains(t, others, 2)
	assert.Contains(t, others, 3)
}

func TestBuildSameInstitutionOrdersByCompleteness(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	requester := newProfile(1, withInstitution("IIT Madras"), withUpdatedAt(now))

	sparse := newProfile(2, withInstitution("IIT Madras"), withUpdatedAt(now))
	complete := newProfile(3,
		withInstitution("IIT Madras"), withBio("bio"), withIntents("hackathon"),
		withTechSkills("go"), withAvatar("https://cdn/a.png"),
		withUpdatedAt(now),
	)
	pool := []*domain.Profile{sparse, complete}

	builder := newSectionBuilder(smallSectionConfig(), 3)
	entries := builder.Build(requester, pool, nil, now)

	campus := sectionIDs(entries, domain.SectionSameInstitution)
	require.Len(t, campus, 2)
	assert.Equal(t, 3, campus[0])
	assert.Equal(t, 2, campus[1])
}

func TestBuildSameInstitutionRequiresInstitution(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	requester := newProfile(1, withUpdatedAt(now))
	pool := []*domain.Profile{
		newProfile(2, withInstitution("IIT Madras"), withUpdatedAt(now)),
	}

	builder := newSectionBuilder(smallSectionConfig(), 3)
	entries := builder.Build(requester, pool, nil, now)
	assert.Empty(t, sectionIDs(entries, domain.SectionSameInstitution))
}

func TestBuildRecentlyActiveWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := smallSectionConfig()
	// Disable the sections that would claim candidates first.
	cfg.BestAffinitySize = 0
	requester := newProfile(1, withUpdatedAt(now))

	fresh := newProfile(2, withBio("here"), withUpdatedAt(now.Add(-24*time.Hour)))
	stale := newProfile(3, withBio("gone"), withUpdatedAt(now.Add(-30*24*time.Hour)))
	pool := []*domain.Profile{fresh, stale}

	builder := newSectionBuilder(cfg, 11)
	entries := builder.Build(requester, pool, nil, now)

	recent := sectionIDs(entries, domain.SectionRecentlyActive)
	assert.Equal(t, []int{2}, recent)
}

func TestBuildRecentlyActiveOrdersByCompleteness(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := smallSectionConfig()
	cfg.RecentlyActiveSize = 3
	requester := newProfile(1, withUpdatedAt(now))

	sparse := newProfile(2, withUpdatedAt(now.Add(-time.Hour)))
	complete := newProfile(3,
		withBio("bio"), withIntents("hackathon"), withTechSkills("go"),
		withInstitution("IIT Madras"), withAvatar("https://cdn/a.png"),
		withUpdatedAt(now.Add(-2*time.Hour)),
	)
	middling := newProfile(4, withBio("bio"), withUpdatedAt(now.Add(-time.Hour)))
	pool := []*domain.Profile{sparse, complete, middling}

	builder := newSectionBuilder(cfg, 11)
	entries := builder.Build(requester, pool, nil, now)

	recent := sectionIDs(entries, domain.SectionRecentlyActive)
	require.Len(t, recent, 3)
	assert.Equal(t, 3, recent[0])
	assert.Equal(t, 4, recent[1])
	assert.Equal(t, 2, recent[2])

	// Completeness scores surface as score * 20.
	for _, e := range entries {
		if e.Section == domain.SectionRecentlyActive && e.CandidateID == 3 {
			assert.InDelta(t, 100.0, e.Score, 1e-9)
		}
	}
}

func TestBuildIntentGroupedCapPerTag(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := smallSectionConfig()
	cfg.BestAffinitySize = 0
	cfg.RecentlyActiveSize = 0
	cfg.GeneralSize = 0
	cfg.GeneralTopCut = 0
	cfg.IntentGroupSize = 2

	requester := newProfile(1, withUpdatedAt(now))
	var pool []*domain.Profile
	for i := 2; i <= 7; i++ {
		pool = append(pool, newProfile(i, withIntents("hackathon"), withUpdatedAt(now.Add(-40*24*time.Hour))))
	}
	pool = append(pool, newProfile(8, withIntents("startup"), withUpdatedAt(now.Add(-40*24*time.Hour))))

	builder := newSectionBuilder(cfg, 5)
	entries := builder.Build(requester, pool, nil, now)

	grouped := sectionIDs(entries, domain.SectionIntentGrouped)
	// Two for hackathon plus one for startup.
	assert.Len(t, grouped, 3)
	assert.Contains(t, grouped, 8)
}

func TestBuildDeterministicUnderSameSeed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := smallSectionConfig()
	requester := newProfile(1, withEmbedding(1, 0), withIntents("hackathon"), withUpdatedAt(now))

	var pool []*domain.Profile
	for i := 2; i <= 16; i++ {
		pool = append(pool, newProfile(i,
			withEmbedding(1, float64(i)/20),
			withIntents(fmt.Sprintf("intent-%d", i%3)),
			withUpdatedAt(now.Add(-time.Duration(i)*time.Hour)),
		))
	}
	hits := NewRetriever().TopK(requester, pool, cfg.GeneralPool)

	first := newSectionBuilder(cfg, 99).Build(requester, pool, hits, now)
	second := newSectionBuilder(cfg, 99).Build(requester, pool, hits, now)
	assert.Equal(t, first, second)
}

func TestBuildGeneralWithoutEmbeddingFallsBackToPool(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := smallSectionConfig()
	cfg.BestAffinitySize = 0
	cfg.RecentlyActiveSize = 0

	requester := newProfile(1, withTechSkills("go"), withUpdatedAt(now))
	pool := []*domain.Profile{
		newProfile(2, withTechSkills("go"), withUpdatedAt(now.Add(-40*24*time.Hour))),
		newProfile(3, withTechSkills("rust"), withUpdatedAt(now.Add(-40*24*time.Hour))),
	}

	builder := newSectionBuilder(cfg, 13)
	entries := builder.Build(requester, pool, nil, now)

	general := sectionIDs(entries, domain.SectionGeneral)
	assert.NotEmpty(t, general)
}
