package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

// EmbeddingClient produces a fixed-length numeric vector for free text.
// The engine never computes embeddings itself; this is the boundary to the
// external embedding provider.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

type UseCase struct {
	profileRepo repository.ProfileRepository
	embedder    EmbeddingClient
}

func NewUseCase(profileRepo repository.ProfileRepository, embedder EmbeddingClient) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		embedder:    embedder,
	}
}

// CreateProfileRequest represents profile creation request
type CreateProfileRequest struct {
	DisplayName      string   `json:"display_name" binding:"required,min=2,max=100"`
	Bio              *string  `json:"bio" binding:"omitempty,max=500"`
	Institution      *string  `json:"institution" binding:"omitempty,max=200"`
	Department       *string  `json:"department" binding:"omitempty,max=200"`
	GradYear         *int     `json:"grad_year" binding:"omitempty,min=1950,max=2100"`
	City             *string  `json:"city" binding:"omitempty,max=100"`
	AvatarURL        *string  `json:"avatar_url" binding:"omitempty,max=500"`
	Interests        []string `json:"interests" binding:"omitempty,max=20"`
	TechSkills       []string `json:"tech_skills" binding:"omitempty,max=20"`
	CreativeSkills   []string `json:"creative_skills" binding:"omitempty,max=20"`
	AthleticSkills   []string `json:"athletic_skills" binding:"omitempty,max=20"`
	LeadershipSkills []string `json:"leadership_skills" binding:"omitempty,max=20"`
	OtherSkills      []string `json:"other_skills" binding:"omitempty,max=20"`
	Intents          []string `json:"intents" binding:"omitempty,max=10"`
	PersonalityTags  []string `json:"personality_tags" binding:"omitempty,max=10"`
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	DisplayName      *string   `json:"display_name" binding:"omitempty,min=2,max=100"`
	Bio              *string   `json:"bio" binding:"omitempty,max=500"`
	Institution      *string   `json:"institution" binding:"omitempty,max=200"`
	Department       *string   `json:"department" binding:"omitempty,max=200"`
	GradYear         *int      `json:"grad_year" binding:"omitempty,min=1950,max=2100"`
	City             *string   `json:"city" binding:"omitempty,max=100"`
	AvatarURL        *string   `json:"avatar_url" binding:"omitempty,max=500"`
	Interests        *[]string `json:"interests" binding:"omitempty,max=20"`
	TechSkills       *[]string `json:"tech_skills" binding:"omitempty,max=20"`
	CreativeSkills   *[]string `json:"creative_skills" binding:"omitempty,max=20"`
	AthleticSkills   *[]string `json:"athletic_skills" binding:"omitempty,max=20"`
	LeadershipSkills *[]string `json:"leadership_skills" binding:"omitempty,max=20"`
	OtherSkills      *[]string `json:"other_skills" binding:"omitempty,max=20"`
	Intents          *[]string `json:"intents" binding:"omitempty,max=10"`
	PersonalityTags  *[]string `json:"personality_tags" binding:"omitempty,max=10"`
}

// GetMyProfile returns current user's profile
func (uc *UseCase) GetMyProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// GetPublicProfile returns another user's public profile fields.
func (uc *UseCase) GetPublicProfile(ctx context.Context, userID int) (*domain.PublicProfile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.Public(), nil
}

// CreateProfile creates a new profile (onboarding)
func (uc *UseCase) CreateProfile(ctx context.Context, userID int, req *CreateProfileRequest) (*domain.Profile, error) {
	existing, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err == nil && existing != nil {
		return nil, domain.ErrProfileAlreadyExists
	}

	profile := &domain.Profile{
		UserID:               userID,
		DisplayName:          req.DisplayName,
		Bio:                  req.Bio,
		Institution:          req.Institution,
		Department:           req.Department,
		GradYear:             req.GradYear,
		City:                 req.City,
		AvatarURL:            req.AvatarURL,
		Interests:            req.Interests,
		TechSkills:           req.TechSkills,
		CreativeSkills:       req.CreativeSkills,
		AthleticSkills:       req.AthleticSkills,
		LeadershipSkills:     req.LeadershipSkills,
		OtherSkills:          req.OtherSkills,
		Intents:              req.Intents,
		PersonalityTags:      req.PersonalityTags,
		IsOnboardingComplete: true,
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	// Embedding generation happens off the request path.
	go uc.refreshEmbedding(profile)

	return profile, nil
}

// UpdateProfile updates user profile and refreshes the embedding.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Institution != nil {
		profile.Institution = req.Institution
	}
	if req.Department != nil {
		profile.Department = req.Department
	}
	if req.GradYear != nil {
		profile.GradYear = req.GradYear
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.Interests != nil {
		profile.Interests = *req.Interests
	}
	if req.TechSkills != nil {
		profile.TechSkills = *req.TechSkills
	}
	if req.CreativeSkills != nil {
		profile.CreativeSkills = *req.CreativeSkills
	}
	if req.AthleticSkills != nil {
		profile.AthleticSkills = *req.AthleticSkills
	}
	if req.LeadershipSkills != nil {
		profile.LeadershipSkills = *req.LeadershipSkills
	}
	if req.OtherSkills != nil {
		profile.OtherSkills = *req.OtherSkills
	}
	if req.Intents != nil {
		profile.Intents = *req.Intents
	}
	if req.PersonalityTags != nil {
		profile.PersonalityTags = *req.PersonalityTags
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	go uc.refreshEmbedding(profile)

	return profile, nil
}

// refreshEmbedding regenerates the profile embedding from its text fields.
// Failures are logged and left for the next save; the profile write itself
// already succeeded.
func (uc *UseCase) refreshEmbedding(profile *domain.Profile) {
	if uc.embedder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	embedding, err := uc.embedder.Embed(ctx, BuildEmbeddingText(profile))
	if err != nil {
		fmt.Printf("Warning: failed to embed profile for user %d: %v\n", profile.UserID, err)
		return
	}
	if err := uc.profileRepo.UpdateEmbedding(ctx, profile.UserID, embedding); err != nil {
		fmt.Printf("Warning: failed to store embedding for user %d: %v\n", profile.UserID, err)
	}
}

// BuildEmbeddingText assembles the text that represents a profile to the
// embedding model.
func BuildEmbeddingText(profile *domain.Profile) string {
	var b strings.Builder

	if profile.Bio != nil && *profile.Bio != "" {
		b.WriteString(*profile.Bio)
		b.WriteString("\n")
	}
	writeList := func(label string, values []string) {
		if len(values) == 0 {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(strings.Join(values, ", "))
		b.WriteString("\n")
	}
	writeList("Interests", profile.Interests)
	writeList("Skills", profile.AllSkills())
	writeList("Looking for", profile.Intents)
	writeList("Personality", profile.PersonalityTags)
	if profile.Department != nil && *profile.Department != "" {
		b.WriteString(*profile.Department)
		b.WriteString("\n")
	}

	return b.String()
}
