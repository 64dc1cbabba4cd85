package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/repository"
	"go.uber.org/zap"
)

const candidatePoolSize = 200

type FeedUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	prefsRepo   repository.PreferencesRepository
	swipeRepo   repository.SwipeRepository
	exclusions  repository.ExclusionStore
	log         *zap.Logger
}

func NewFeedUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	prefsRepo repository.PreferencesRepository,
	swipeRepo repository.SwipeRepository,
	exclusions repository.ExclusionStore,
	log *zap.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		prefsRepo:   prefsRepo,
		swipeRepo:   swipeRepo,
		exclusions:  exclusions,
		log:         log,
	}
}

// ListCandidates returns the user's candidate pool: completed profiles minus
// self, already-swiped and passed users, reduced by the user's preferences.
func (uc *FeedUseCase) ListCandidates(ctx context.Context, userID string) ([]Candidate, error) {
	prefs, err := uc.prefsRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrPreferencesNotFound) {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	users, err := uc.userRepo.ListCompleted(ctx, userID, candidatePoolSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	var pool []Candidate
	for _, user := range users {
		swipe, err := uc.swipeRepo.GetByUsers(ctx, userID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check swipe history: %w", err)
		}
		if swipe != nil {
			continue
		}

		excluded, err := uc.exclusions.IsExcluded(ctx, userID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check exclusions: %w", err)
		}
		if excluded {
			continue
		}

		profile, err := uc.profileRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load candidate profile: %w", err)
		}

		pool = append(pool, Candidate{User: user, Profile: profile})
	}

	result := slices.Collect(Filter(pool, prefs))
	uc.log.Debug("candidate pool built",
		zap.String("user_id", userID),
		zap.Int("pool", len(pool)),
		zap.Int("after_filter", len(result)),
	)
	return result, nil
}

// GetPreferences loads the user's preferences, creating defaults on first
// load.
func (uc *FeedUseCase) GetPreferences(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	prefs, err := uc.prefsRepo.GetByUserID(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, domain.ErrPreferencesNotFound) {
		return nil, err
	}

	prefs = domain.DefaultPreferences(userID)
	if err := uc.prefsRepo.Save(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to store default preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences overwrites the user's preferences wholesale.
func (uc *FeedUseCase) SavePreferences(ctx context.Context, prefs *domain.UserPreferences) (*domain.UserPreferences, error) {
	if prefs.MinAge > prefs.MaxAge {
		return nil, fmt.Errorf("age range lower bound exceeds upper bound")
	}
	if err := uc.prefsRepo.Save(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
