package recommend

import (
	"time"

	"github.com/sanjail3/fyndly-backend/internal/config"
	"github.com/sanjail3/fyndly-backend/internal/domain"
)

// Scorer computes the composite compatibility score of a candidate relative
// to the requesting user. It is a pure function of its inputs plus the
// configured weights: no store access, no side effects.
type Scorer struct {
	cfg config.RecommendConfig
}

func NewScorer(cfg config.RecommendConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score combines similarity, intent overlap, shared skills, locality and
// recency as a weighted sum. Every term is non-negative, so the result is too.
// The similarity argument comes from the retriever; pass 0 when unknown.
func (s *Scorer) Score(requester, candidate *domain.Profile, similarity float64, now time.Time) float64 {
	if similarity < 0 {
		similarity = 0
	}

	score := similarity * s.cfg.SimilarityWeight
	score += intentOverlap(requester, candidate) * s.cfg.IntentWeight
	score += skillOverlap(requester, candidate) * s.cfg.SkillWeight
	score += localityBoost(requester, candidate) * s.cfg.LocalityWeight
	score += s.recencyBoost(candidate, now) * s.cfg.RecencyWeight

	return score
}

// intentOverlap is the count of shared intents normalized by the larger of
// the two intent-set sizes. Empty sets yield 0, never an error.
func intentOverlap(requester, candidate *domain.Profile) float64 {
	return normalizedOverlap(requester.Intents, candidate.Intents)
}

// skillOverlap counts overlapping entries across all five skill categories,
// normalized the same way.
func skillOverlap(requester, candidate *domain.Profile) float64 {
	return normalizedOverlap(requester.AllSkills(), candidate.AllSkills())
}

func normalizedOverlap(a, b []string) float64 {
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom == 0 {
		return 0
	}
	return float64(overlapCount(a, b)) / float64(denom)
}

func overlapCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}

// localityBoost is 1.0 for the same institution, 0.5 for the same city at a
// different institution, 0 otherwise.
func localityBoost(requester, candidate *domain.Profile) float64 {
	if sameString(requester.Institution, candidate.Institution) {
		return 1.0
	}
	if sameString(requester.City, candidate.City) {
		return 0.5
	}
	return 0
}

func sameString(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}

// recencyBoost decays linearly from 1 to 0 over the configured window based
// on the candidate's last profile update.
func (s *Scorer) recencyBoost(candidate *domain.Profile, now time.Time) float64 {
	window := time.Duration(s.cfg.RecencyWindowDays) * 24 * time.Hour
	if window <= 0 {
		return 0
	}
	age := now.Sub(candidate.UpdatedAt)
	if age < 0 {
		age = 0
	}
	boost := 1 - float64(age)/float64(window)
	if boost < 0 {
		return 0
	}
	return boost
}
