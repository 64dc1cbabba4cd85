package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		INSERT INTO profiles (user_id, bio, education, occupation, city, country,
			height_cm, marital_status, religious_practice, lifestyle, photos, interests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.Bio, profile.Education, profile.Occupation,
		profile.City, profile.Country, profile.HeightCm, profile.MaritalStatus,
		profile.ReligiousPractice, pq.Array(profile.Lifestyle),
		pq.Array(profile.Photos), pq.Array(profile.Interests),
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	query := `
		SELECT id, user_id, bio, education, occupation, city, country,
		       height_cm, marital_status, religious_practice, lifestyle, photos,
		       interests, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Bio, &profile.Education,
		&profile.Occupation, &profile.City, &profile.Country, &profile.HeightCm,
		&profile.MaritalStatus, &profile.ReligiousPractice,
		pq.Array(&profile.Lifestyle), pq.Array(&profile.Photos),
		pq.Array(&profile.Interests), &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		UPDATE profiles
		SET bio = $1, education = $2, occupation = $3, city = $4, country = $5,
		    height_cm = $6, marital_status = $7, religious_practice = $8,
		    lifestyle = $9, photos = $10, interests = $11,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $12
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		profile.Bio, profile.Education, profile.Occupation, profile.City,
		profile.Country, profile.HeightCm, profile.MaritalStatus,
		profile.ReligiousPractice, pq.Array(profile.Lifestyle),
		pq.Array(profile.Photos), pq.Array(profile.Interests), profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}
