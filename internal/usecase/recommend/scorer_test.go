package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScorerEmptyProfiles(t *testing.T) {
	scorer := NewScorer(testRecommendConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	requester := newProfile(1, withUpdatedAt(now))
	candidate := newProfile(2, withUpdatedAt(now))

	// No intents, no skills, no locality: only the recency term survives.
	score := scorer.Score(requester, candidate, 0, now)
	assert.InDelta(t, 0.1, score, 1e-9)
}

func TestScorerNeverNegative(t *testing.T) {
	scorer := NewScorer(testRecommendConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	requester := newProfile(1)
	stale := newProfile(2, withUpdatedAt(now.AddDate(-2, 0, 0)))

	assert.GreaterOrEqual(t, scorer.Score(requester, stale, -0.5, now), 0.0)
	assert.GreaterOrEqual(t, scorer.Score(requester, stale, 0, now), 0.0)
}

func TestScorerIntentOverlapNormalized(t *testing.T) {
	scorer := NewScorer(testRecommendConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	requester := newProfile(1, withIntents("hackathon", "study-group"), withUpdatedAt(now))
	full := newProfile(2, withIntents("hackathon", "study-group"), withUpdatedAt(now))
	half := newProfile(3, withIntents("hackathon", "startup", "mentorship", "gaming"), withUpdatedAt(now))

	fullScore := scorer.Score(requester, full, 0, now)
	halfScore := scorer.Score(requester, half, 0, now)
	assert.Greater(t, fullScore, halfScore)

	// Two shared intents over max(2, 2) vs one shared over max(2, 4).
	assert.InDelta(t, 1.0*0.25+0.1, fullScore, 1e-9)
	assert.InDelta(t, 0.25*0.25+0.1, halfScore, 1e-9)
}

func TestScorerLocalityTiers(t *testing.T) {
	scorer := NewScorer(testRecommendConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	requester := newProfile(1, withInstitution("IIT Madras"), withCity("Chennai"), withUpdatedAt(now))
	samePlace := newProfile(2, withInstitution("IIT Madras"), withCity("Chennai"), withUpdatedAt(now))
	sameCity := newProfile(3, withInstitution("Anna University"), withCity("Chennai"), withUpdatedAt(now))
	elsewhere := newProfile(4, withInstitution("IIT Bombay"), withCity("Mumbai"), withUpdatedAt(now))

	institutionScore := scorer.Score(requester, samePlace, 0, now)
	cityScore := scorer.Score(requester, sameCity, 0, now)
	farScore := scorer.Score(requester, elsewhere, 0, now)

	assert.Greater(t, institutionScore, cityScore)
	assert.Greater(t, cityScore, farScore)
	assert.InDelta(t, 0.1*0.5, cityScore-farScore, 1e-9)
}

func TestScorerEmptyLocalityNoBoost(t *testing.T) {
	scorer := NewScorer(testRecommendConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Both empty-string institutions must not count as "same".
	requester := newProfile(1, withInstitution(""), withUpdatedAt(now))
	candidate := newProfile(2, withInstitution(""), withUpdatedAt(now))

	assert.InDelta(t, 0.1, scorer.Score(requester, candidate, 0, now), 1e-9)
}

func TestScorerRecencyDecay(t *testing.T) {
	scorer := NewScorer(testRecommendConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	requester := newProfile(1)
	fresh := newProfile(2, withUpdatedAt(now))
	midway := newProfile(3, withUpdatedAt(now.Add(-15*24*time.Hour)))
	expired := newProfile(4, withUpdatedAt(now.Add(-60*24*time.Hour)))

	assert.InDelta(t, 0.1, scorer.Score(requester, fresh, 0, now), 1e-9)
	assert.InDelta(t, 0.05, scorer.Score(requester, midway, 0, now), 1e-9)
	assert.InDelta(t, 0.0, scorer.Score(requester, expired, 0, now), 1e-9)
}

func TestScorerSimilarityDominates(t *testing.T) {
	scorer := NewScorer(testRecommendConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	requester := newProfile(1, withUpdatedAt(now))
	candidate := newProfile(2, withUpdatedAt(now))

	low := scorer.Score(requester, candidate, 0.1, now)
	high := scorer.Score(requester, candidate, 0.9, now)
	assert.InDelta(t, 0.8*0.65, high-low, 1e-9)
}

func TestOverlapCountIgnoresDuplicates(t *testing.T) {
	assert.Equal(t, 1, overlapCount([]string{"go"}, []string{"go", "go", "go"}))
	assert.Equal(t, 0, overlapCount(nil, []string{"go"}))
	assert.Equal(t, 0, overlapCount([]string{"go"}, nil))
	assert.Equal(t, 2, overlapCount([]string{"go", "rust", "zig"}, []string{"rust", "go"}))
}
