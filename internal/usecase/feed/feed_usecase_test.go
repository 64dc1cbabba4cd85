package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"go.uber.org/zap"
)

type stubUserRepo struct {
	users []*domain.User
}

func (r *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (r *stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListCompleted(_ context.Context, exclude string, _, _ int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.ID != exclude {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubProfileRepo struct {
	profiles map[string]*domain.UserProfile
}

func (r *stubProfileRepo) Create(context.Context, *domain.UserProfile) error { return nil }
func (r *stubProfileRepo) Update(context.Context, *domain.UserProfile) error { return nil }

func (r *stubProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

type stubPrefsRepo struct {
	prefs map[string]*domain.UserPreferences
}

func (r *stubPrefsRepo) GetByUserID(_ context.Context, userID string) (*domain.UserPreferences, error) {
	p, ok := r.prefs[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	return p, nil
}

func (r *stubPrefsRepo) Save(_ context.Context, p *domain.UserPreferences) error {
	r.prefs[p.UserID] = p
	return nil
}

type stubSwipeRepo struct {
	swiped map[string]bool // "swiper|swiped"
}

func (r *stubSwipeRepo) Create(_ context.Context, s *domain.Swipe) error {
	r.swiped[s.SwiperID+"|"+s.SwipedID] = true
	return nil
}

func (r *stubSwipeRepo) GetByUsers(_ context.Context, swiperID, swipedID string) (*domain.Swipe, error) {
	if r.swiped[swiperID+"|"+swipedID] {
		return &domain.Swipe{SwiperID: swiperID, SwipedID: swipedID}, nil
	}
	return nil, nil
}

func (r *stubSwipeRepo) HasLike(context.Context, string, string) (bool, error) {
	return false, nil
}

type stubExclusions struct {
	set map[string]bool // "user|target"
}

func (e *stubExclusions) Add(_ context.Context, userID, targetID string) error {
	e.set[userID+"|"+targetID] = true
	return nil
}

func (e *stubExclusions) IsExcluded(_ context.Context, userID, targetID string) (bool, error) {
	return e.set[userID+"|"+targetID], nil
}

func (e *stubExclusions) List(context.Context, string) ([]string, error) { return nil, nil }

func newFeedFixture() (*FeedUseCase, *stubSwipeRepo, *stubExclusions, *stubPrefsRepo) {
	users := &stubUserRepo{}
	for _, id := range []string{"me", "amina", "basma", "celine"} {
		users.users = append(users.users, &domain.User{
			ID:                id,
			BirthDate:         time.Now().AddDate(-30, 0, -1),
			IsVerified:        true,
			IsProfileComplete: true,
		})
	}
	profiles := &stubProfileRepo{profiles: map[string]*domain.UserProfile{
		"amina":  {UserID: "amina"},
		"basma":  {UserID: "basma"},
		"celine": {UserID: "celine"},
	}}
	prefs := &stubPrefsRepo{prefs: make(map[string]*domain.UserPreferences)}
	swipes := &stubSwipeRepo{swiped: make(map[string]bool)}
	exclusions := &stubExclusions{set: make(map[string]bool)}

	uc := NewFeedUseCase(users, profiles, prefs, swipes, exclusions, zap.NewNop())
	return uc, swipes, exclusions, prefs
}

func TestListCandidatesExcludesSwipedAndPassed(t *testing.T) {
	uc, swipes, exclusions, _ := newFeedFixture()
	ctx := context.Background()

	swipes.swiped["me|amina"] = true
	exclusions.set["me|basma"] = true

	candidates, err := uc.ListCandidates(ctx, "me")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "celine", candidates[0].User.ID)
}

func TestListCandidatesWithoutPreferencesReturnsAll(t *testing.T) {
	uc, _, _, _ := newFeedFixture()

	candidates, err := uc.ListCandidates(context.Background(), "me")
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
}

func TestGetPreferencesCreatesDefaultsOnFirstLoad(t *testing.T) {
	uc, _, _, prefsRepo := newFeedFixture()
	ctx := context.Background()

	prefs, err := uc.GetPreferences(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, 18, prefs.MinAge)
	assert.Equal(t, 60, prefs.MaxAge)

	// Defaults were persisted, not just returned.
	stored, ok := prefsRepo.prefs["me"]
	require.True(t, ok)
	assert.Equal(t, prefs, stored)
}

func TestSavePreferencesRejectsInvertedAgeRange(t *testing.T) {
	uc, _, _, _ := newFeedFixture()

	_, err := uc.SavePreferences(context.Background(), &domain.UserPreferences{
		UserID: "me",
		MinAge: 40,
		MaxAge: 25,
	})
	assert.Error(t, err)
}
