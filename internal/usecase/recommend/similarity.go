package recommend

import (
	"math"
	"sort"

	"github.com/sanjail3/fyndly-backend/internal/domain"
)

// Hit is a single result from the similarity retriever.
type Hit struct {
	CandidateID int
	Similarity  float64
}

// Retriever ranks candidates by cosine similarity over profile embeddings.
type Retriever struct{}

func NewRetriever() *Retriever {
	return &Retriever{}
}

// TopK returns up to k candidates ordered by descending similarity.
// The requester itself and candidates without an embedding are skipped.
// A requester without an embedding gets an empty result, not an error:
// callers fall back to non-vector scoring. Ties break by candidate id so
// regeneration is idempotent under identical inputs.
func (r *Retriever) TopK(requester *domain.Profile, candidates []*domain.Profile, k int) []Hit {
	if !requester.HasEmbedding() || k <= 0 {
		return nil
	}

	hits := make([]Hit, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.UserID == requester.UserID || !candidate.HasEmbedding() {
			continue
		}
		hits = append(hits, Hit{
			CandidateID: candidate.UserID,
			Similarity:  cosineSimilarity(requester.Embedding, candidate.Embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].CandidateID < hits[j].CandidateID
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits
}

// cosineSimilarity is clamped to [0, 1]; mismatched or zero vectors yield 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	sim := dot / denom
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
