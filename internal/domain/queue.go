package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation queue sections, in evaluation order. All sections except
// same_institution contribute to and consult the cross-section dedup set.
const (
	SectionBestAffinity    = "best_affinity"
	SectionRecentlyActive  = "recently_active"
	SectionGeneral         = "general"
	SectionSameInstitution = "same_institution"
	SectionIntentGrouped   = "intent_grouped"
	SectionExploratory     = "exploratory"
)

// QueueEntry is one persisted (candidate, section, rank, score) tuple for one
// requesting user. A full batch shares a BatchID and is written by one
// generation run, replacing the user's previous batch in full.
type QueueEntry struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	CandidateID int       `json:"candidate_id" db:"candidate_id"`
	Section     string    `json:"section" db:"section"`
	Score       float64   `json:"score" db:"score"`
	Rank        int       `json:"rank" db:"rank"`
	BatchID     uuid.UUID `json:"batch_id" db:"batch_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
