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

type preferencesRepository struct {
	db *sqlx.DB
}

func NewPreferencesRepository(db *sqlx.DB) repository.PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	var (
		prefs     domain.UserPreferences
		statuses  []string
		practices []string
		levels    []string
	)
	query := `
		SELECT id, user_id, min_age, max_age, max_distance_km,
		       marital_statuses, religious_practices, education_levels,
		       locations, accepted_lifestyles, created_at, updated_at
		FROM preferences WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.ID, &prefs.UserID, &prefs.MinAge, &prefs.MaxAge, &prefs.MaxDistanceKm,
		pq.Array(&statuses), pq.Array(&practices), pq.Array(&levels),
		pq.Array(&prefs.Locations), pq.Array(&prefs.AcceptedLifestyles),
		&prefs.CreatedAt, &prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}

	prefs.MaritalStatuses = toEnum[domain.MaritalStatus](statuses)
	prefs.ReligiousPractices = toEnum[domain.ReligiousPractice](practices)
	prefs.EducationLevels = toEnum[domain.EducationLevel](levels)
	return &prefs, nil
}

// Save overwrites the row wholesale via upsert.
func (r *preferencesRepository) Save(ctx context.Context, prefs *domain.UserPreferences) error {
	query := `
		INSERT INTO preferences (user_id, min_age, max_age, max_distance_km,
			marital_statuses, religious_practices, education_levels,
			locations, accepted_lifestyles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			min_age = EXCLUDED.min_age,
			max_age = EXCLUDED.max_age,
			max_distance_km = EXCLUDED.max_distance_km,
			marital_statuses = EXCLUDED.marital_statuses,
			religious_practices = EXCLUDED.religious_practices,
			education_levels = EXCLUDED.education_levels,
			locations = EXCLUDED.locations,
			accepted_lifestyles = EXCLUDED.accepted_lifestyles,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		prefs.UserID, prefs.MinAge, prefs.MaxAge, prefs.MaxDistanceKm,
		pq.Array(fromEnum(prefs.MaritalStatuses)),
		pq.Array(fromEnum(prefs.ReligiousPractices)),
		pq.Array(fromEnum(prefs.EducationLevels)),
		pq.Array(prefs.Locations), pq.Array(prefs.AcceptedLifestyles),
	).Scan(&prefs.ID, &prefs.CreatedAt, &prefs.UpdatedAt)
}

func toEnum[T ~string](values []string) []T {
	if len(values) == 0 {
		return nil
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}

func fromEnum[T ~string](values []T) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
