package domain

import "time"

type Profile struct {
	ID                   int       `json:"id" db:"id"`
	UserID               int       `json:"user_id" db:"user_id"`
	DisplayName          string    `json:"display_name" db:"display_name"`
	Bio                  *string   `json:"bio" db:"bio"`
	Institution          *string   `json:"institution" db:"institution"`
	Department           *string   `json:"department" db:"department"`
	GradYear             *int      `json:"grad_year" db:"grad_year"`
	City                 *string   `json:"city" db:"city"`
	AvatarURL            *string   `json:"avatar_url" db:"avatar_url"`
	Interests            []string  `json:"interests" db:"interests"`
	TechSkills           []string  `json:"tech_skills" db:"tech_skills"`
	CreativeSkills       []string  `json:"creative_skills" db:"creative_skills"`
	AthleticSkills       []string  `json:"athletic_skills" db:"athletic_skills"`
	LeadershipSkills     []string  `json:"leadership_skills" db:"leadership_skills"`
	OtherSkills          []string  `json:"other_skills" db:"other_skills"`
	Intents              []string  `json:"intents" db:"intents"`
	PersonalityTags      []string  `json:"personality_tags" db:"personality_tags"`
	Embedding            []float64 `json:"-" db:"embedding"`
	IsOnboardingComplete bool      `json:"is_onboarding_complete" db:"is_onboarding_complete"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// AllSkills flattens the five skill categories into one list.
func (p *Profile) AllSkills() []string {
	skills := make([]string, 0, len(p.TechSkills)+len(p.CreativeSkills)+len(p.AthleticSkills)+len(p.LeadershipSkills)+len(p.OtherSkills))
	skills = append(skills, p.TechSkills...)
	skills = append(skills, p.CreativeSkills...)
	skills = append(skills, p.AthleticSkills...)
	skills = append(skills, p.LeadershipSkills...)
	skills = append(skills, p.OtherSkills...)
	return skills
}

// CompletenessScore counts populated optional fields (bio, intents,
// tech skills, institution, avatar). Range 0-5.
func (p *Profile) CompletenessScore() int {
	score := 0
	if p.Bio != nil && *p.Bio != "" {
		score++
	}
	if len(p.Intents) > 0 {
		score++
	}
	if len(p.TechSkills) > 0 {
		score++
	}
	if p.Institution != nil && *p.Institution != "" {
		score++
	}
	if p.AvatarURL != nil && *p.AvatarURL != "" {
		score++
	}
	return score
}

func (p *Profile) HasEmbedding() bool {
	return len(p.Embedding) > 0
}

// PublicProfile is the subset of profile fields exposed to other users.
type PublicProfile struct {
	UserID      int      `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Bio         *string  `json:"bio"`
	Institution *string  `json:"institution"`
	Department  *string  `json:"department"`
	GradYear    *int     `json:"grad_year"`
	City        *string  `json:"city"`
	AvatarURL   *string  `json:"avatar_url"`
	Interests   []string `json:"interests"`
	Intents     []string `json:"intents"`
}

func (p *Profile) Public() *PublicProfile {
	return &PublicProfile{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		Institution: p.Institution,
		Department:  p.Department,
		GradYear:    p.GradYear,
		City:        p.City,
		AvatarURL:   p.AvatarURL,
		Interests:   p.Interests,
		Intents:     p.Intents,
	}
}
