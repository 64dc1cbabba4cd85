package repository

import (
	"context"

	"github.com/zawajapp/zawaj-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	Update(ctx context.Context, profile *domain.UserProfile) error
}

type PreferencesRepository interface {
	// GetByUserID returns the stored preferences, or domain.ErrPreferencesNotFound.
	GetByUserID(ctx context.Context, userID string) (*domain.UserPreferences, error)
	// Save overwrites the user's preferences wholesale; rows are never
	// partially merged.
	Save(ctx context.Context, prefs *domain.UserPreferences) error
}

type GuardianRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Guardian, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Guardian, error)
}
