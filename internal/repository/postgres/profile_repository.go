package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sanjail3/fyndly-backend/internal/domain"
	"github.com/sanjail3/fyndly-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, display_name, bio, institution, department, grad_year, city, avatar_url,
	interests, tech_skills, creative_skills, athletic_skills, leadership_skills, other_skills,
	intents, personality_tags, embedding, is_onboarding_complete, created_at, updated_at
`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, display_name, bio, institution, department, grad_year, city, avatar_url,
			interests, tech_skills, creative_skills, athletic_skills, leadership_skills, other_skills,
			intents, personality_tags, is_onboarding_complete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.DisplayName, profile.Bio, profile.Institution,
		profile.Department, profile.GradYear, profile.City, profile.AvatarURL,
		pq.Array(profile.Interests), pq.Array(profile.TechSkills), pq.Array(profile.CreativeSkills),
		pq.Array(profile.AthleticSkills), pq.Array(profile.LeadershipSkills), pq.Array(profile.OtherSkills),
		pq.Array(profile.Intents), pq.Array(profile.PersonalityTags), profile.IsOnboardingComplete,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, bio = $2, institution = $3, department = $4, grad_year = $5,
		    city = $6, avatar_url = $7, interests = $8, tech_skills = $9, creative_skills = $10,
		    athletic_skills = $11, leadership_skills = $12, other_skills = $13, intents = $14,
		    personality_tags = $15, is_onboarding_complete = $16,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $17
		RETURNING updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Bio, profile.Institution, profile.Department, profile.GradYear,
		profile.City, profile.AvatarURL, pq.Array(profile.Interests), pq.Array(profile.TechSkills),
		pq.Array(profile.CreativeSkills), pq.Array(profile.AthleticSkills), pq.Array(profile.LeadershipSkills),
		pq.Array(profile.OtherSkills), pq.Array(profile.Intents), pq.Array(profile.PersonalityTags),
		profile.IsOnboardingComplete, profile.ID,
	).Scan(&profile.UpdatedAt)
}

func (r *profileRepository) UpdateEmbedding(ctx context.Context, userID int, embedding []float64) error {
	query := `UPDATE profiles SET embedding = $1 WHERE user_id = $2`
	result, err := r.db.ExecContext(ctx, query, pq.Array(embedding), userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListComplete(ctx context.Context) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE is_onboarding_complete = true`
	return r.queryProfiles(ctx, query)
}

func (r *profileRepository) ListByUserIDs(ctx context.Context, userIDs []int) ([]*domain.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ANY($1)`
	return r.queryProfiles(ctx, query, pq.Array(userIDs))
}

func (r *profileRepository) queryProfiles(ctx context.Context, query string, args ...interface{}) ([]*domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.DisplayName, &profile.Bio, &profile.Institution,
		&profile.Department, &profile.GradYear, &profile.City, &profile.AvatarURL,
		pq.Array(&profile.Interests), pq.Array(&profile.TechSkills), pq.Array(&profile.CreativeSkills),
		pq.Array(&profile.AthleticSkills), pq.Array(&profile.LeadershipSkills), pq.Array(&profile.OtherSkills),
		pq.Array(&profile.Intents), pq.Array(&profile.PersonalityTags), pq.Array(&profile.Embedding),
		&profile.IsOnboardingComplete, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
