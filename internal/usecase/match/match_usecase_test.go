package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zawajapp/zawaj-backend/internal/config"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"go.uber.org/zap"
)

// --- in-memory fakes ---

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) ListCompleted(_ context.Context, exclude string, _, _ int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.ID != exclude {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeGuardianRepo struct {
	byUser map[string]*domain.Guardian
}

func (r *fakeGuardianRepo) GetByID(_ context.Context, id string) (*domain.Guardian, error) {
	for _, g := range r.byUser {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrGuardianNotFound
}

func (r *fakeGuardianRepo) GetByUserID(_ context.Context, userID string) (*domain.Guardian, error) {
	g, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrGuardianNotFound
	}
	return g, nil
}

type fakeSwipeRepo struct {
	mu       sync.Mutex
	swipes   []*domain.Swipe
	onCreate func(*domain.Swipe)
}

func (r *fakeSwipeRepo) Create(_ context.Context, s *domain.Swipe) error {
	if r.onCreate != nil {
		r.onCreate(s)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s.CreatedAt = time.Now()
	r.swipes = append(r.swipes, s)
	return nil
}

func (r *fakeSwipeRepo) GetByUsers(_ context.Context, swiperID, swipedID string) (*domain.Swipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.swipes {
		if s.SwiperID == swiperID && s.SwipedID == swipedID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSwipeRepo) HasLike(_ context.Context, swiperID, swipedID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.swipes {
		if s.SwiperID == swiperID && s.SwipedID == swipedID && s.Action != domain.SwipePass {
			return true, nil
		}
	}
	return false, nil
}

type fakeMatchRepo struct {
	mu        sync.Mutex
	matches   map[string]*domain.Match
	approvals map[string][]domain.GuardianApproval
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		matches:   make(map[string]*domain.Match),
		approvals: make(map[string][]domain.GuardianApproval),
	}
}

func (r *fakeMatchRepo) Create(_ context.Context, m *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.User1ID, m.User2ID = domain.NormalizeMatchUsers(m.User1ID, m.User2ID)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) GetByUsers(_ context.Context, a, b string) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u1, u2 := domain.NormalizeMatchUsers(a, b)
	for _, m := range r.matches {
		if m.User1ID == u1 && m.User2ID == u2 {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *fakeMatchRepo) GetUserMatches(_ context.Context, userID string, _, _ int) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.HasUser(userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateStatus(_ context.Context, id string, status domain.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now()
	return nil
}

func (r *fakeMatchRepo) ListPendingBefore(_ context.Context, cutoff time.Time) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.Status == domain.MatchPending && m.CreatedAt.Before(cutoff) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) AppendApproval(_ context.Context, a *domain.GuardianApproval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.CreatedAt = time.Now()
	r.approvals[a.MatchID] = append(r.approvals[a.MatchID], *a)
	return nil
}

func (r *fakeMatchRepo) ListApprovals(_ context.Context, matchID string) ([]domain.GuardianApproval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.GuardianApproval(nil), r.approvals[matchID]...), nil
}

type fakeExclusions struct {
	mu  sync.Mutex
	set map[string]map[string]bool
}

func newFakeExclusions() *fakeExclusions {
	return &fakeExclusions{set: make(map[string]map[string]bool)}
}

func (e *fakeExclusions) Add(_ context.Context, userID, targetID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set[userID] == nil {
		e.set[userID] = make(map[string]bool)
	}
	e.set[userID][targetID] = true
	return nil
}

func (e *fakeExclusions) IsExcluded(_ context.Context, userID, targetID string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set[userID][targetID], nil
}

func (e *fakeExclusions) List(_ context.Context, userID string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for t := range e.set[userID] {
		out = append(out, t)
	}
	return out, nil
}

type fakeScorer struct {
	err   error
	calls int
}

func (s *fakeScorer) Assess(_ context.Context, _, _ string) (*domain.CompatibilityScore, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CompatibilityScore{Overall: 72.5, Personality: 80, Values: 75}, nil
}

// --- fixture ---

type fixture struct {
	uc       *MatchUseCase
	users    *fakeUserRepo
	guards   *fakeGuardianRepo
	swipes   *fakeSwipeRepo
	matches  *fakeMatchRepo
	excluded *fakeExclusions
	scorer   *fakeScorer
}

func newFixture(t *testing.T, cfg config.MatchConfig) *fixture {
	t.Helper()
	f := &fixture{
		users:    &fakeUserRepo{users: make(map[string]*domain.User)},
		guards:   &fakeGuardianRepo{byUser: make(map[string]*domain.Guardian)},
		swipes:   &fakeSwipeRepo{},
		matches:  newFakeMatchRepo(),
		excluded: newFakeExclusions(),
		scorer:   &fakeScorer{},
	}
	for _, id := range []string{"alice", "bilal", "chadia"} {
		f.users.users[id] = &domain.User{ID: id, IsVerified: true, IsProfileComplete: true}
	}
	f.uc = NewMatchUseCase(f.matches, f.swipes, f.users, f.guards, f.excluded, f.scorer, cfg, zap.NewNop())
	return f
}

func defaultConfig() config.MatchConfig {
	return config.MatchConfig{
		RequireMutualLike:   true,
		GuardianBothSides:   false,
		PendingTTL:          72 * time.Hour,
		ExpirySweepInterval: time.Minute,
	}
}

func (f *fixture) addGuardian(userID, guardianID string, required bool) {
	f.guards.byUser[userID] = &domain.Guardian{
		ID:                        guardianID,
		UserID:                    userID,
		Name:                      "Guardian of " + userID,
		RequireApprovalForContact: required,
	}
}

// --- tests ---

func TestApplyRejectsSelfSwipe(t *testing.T) {
	f := newFixture(t, defaultConfig())
	_, err := f.uc.Apply(context.Background(), domain.SwipeLike, "alice", "alice")
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)
}

func TestApplyRejectsUnknownAction(t *testing.T) {
	f := newFixture(t, defaultConfig())
	_, err := f.uc.Apply(context.Background(), domain.SwipeAction("wink"), "alice", "bilal")
	assert.ErrorIs(t, err, domain.ErrInvalidSwipeAction)
}

func TestApplyRejectsDuplicateSwipe(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	_, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)

	_, err = f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	assert.ErrorIs(t, err, domain.ErrSwipeAlreadyExists)
}

func TestApplyPassCreatesNoMatchAndExcludes(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipePass, "alice", "bilal")
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Empty(t, f.matches.matches)
	assert.Zero(t, f.scorer.calls)

	excluded, err := f.excluded.IsExcluded(ctx, "alice", "bilal")
	require.NoError(t, err)
	assert.True(t, excluded)
}

func TestApplyFirstLikeIsPendingUntilReciprocated(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, domain.MatchPending, match.Status)
	assert.False(t, match.GuardianApprovalRequired)
	assert.Equal(t, "alice", match.InitiatedBy)
	assert.InDelta(t, 72.5, match.Score.Overall, 1e-9)

	reciprocal, err := f.uc.Apply(ctx, domain.SwipeSuperLike, "bilal", "alice")
	require.NoError(t, err)
	require.NotNil(t, reciprocal)
	assert.Equal(t, match.ID, reciprocal.ID)
	assert.Equal(t, domain.MatchAccepted, reciprocal.Status)
}

func TestApplyLikeAcceptsImmediatelyWithoutReciprocityPolicy(t *testing.T) {
	cfg := defaultConfig()
	cfg.RequireMutualLike = false
	f := newFixture(t, cfg)

	match, err := f.uc.Apply(context.Background(), domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, domain.MatchAccepted, match.Status)
}

func TestApplyScoringFailureLeavesNoSwipe(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.scorer.err = errors.New("oracle unavailable")
	ctx := context.Background()

	_, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.Error(t, err)

	swipe, err := f.swipes.GetByUsers(ctx, "alice", "bilal")
	require.NoError(t, err)
	assert.Nil(t, swipe, "failed scoring must not record the swipe")
	assert.Empty(t, f.matches.matches)

	// The action can be retried once the scorer recovers.
	f.scorer.err = nil
	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	assert.NotNil(t, match)
}

func TestApplyGuardianRequiredStaysPendingDespiteMutualLike(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.addGuardian("alice", "g-alice", true)
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	require.True(t, match.GuardianApprovalRequired)
	assert.Equal(t, domain.MatchPending, match.Status)

	reciprocal, err := f.uc.Apply(ctx, domain.SwipeLike, "bilal", "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchPending, reciprocal.Status,
		"mutual like never bypasses guardian approval")
}

func TestApplyGuardianNotRequiredWhenApprovalDisabled(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.addGuardian("alice", "g-alice", false)

	match, err := f.uc.Apply(context.Background(), domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	assert.False(t, match.GuardianApprovalRequired)
}

func TestRecordApprovalAcceptsMatch(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.addGuardian("alice", "g-alice", true)
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)

	updated, err := f.uc.RecordApproval(ctx, "g-alice", match.ID, domain.ApprovalApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, updated.Status)
	require.Len(t, updated.Approvals, 1)
	assert.Equal(t, domain.ApprovalApproved, updated.Approvals[0].Status)
}

func TestRecordApprovalRejectionClosesMatch(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.addGuardian("alice", "g-alice", true)
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)

	comment := "not a suitable family"
	updated, err := f.uc.RecordApproval(ctx, "g-alice", match.ID, domain.ApprovalRejected, &comment)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchRejected, updated.Status)

	// Terminal state is immutable.
	_, err = f.uc.RecordApproval(ctx, "g-alice", match.ID, domain.ApprovalApproved, nil)
	assert.ErrorIs(t, err, domain.ErrMatchTerminal)
}

func TestRecordApprovalIsAppendOnlyLatestWins(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.addGuardian("alice", "g-alice", true)
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)

	first, err := f.uc.RecordApproval(ctx, "g-alice", match.ID, domain.ApprovalNeedsMoreInfo, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchPending, first.Status)

	second, err := f.uc.RecordApproval(ctx, "g-alice", match.ID, domain.ApprovalApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, second.Status)

	// Both records survive; history is never rewritten.
	require.Len(t, second.Approvals, 2)
	assert.Equal(t, domain.ApprovalNeedsMoreInfo, second.Approvals[0].Status)
	assert.Equal(t, domain.ApprovalApproved, second.Approvals[1].Status)
}

func TestRecordApprovalBothSidesPolicyNeedsEveryGuardian(t *testing.T) {
	cfg := defaultConfig()
	cfg.GuardianBothSides = true
	f := newFixture(t, cfg)
	f.addGuardian("alice", "g-alice", true)
	f.addGuardian("bilal", "g-bilal", true)
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)

	partial, err := f.uc.RecordApproval(ctx, "g-alice", match.ID, domain.ApprovalApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchPending, partial.Status)

	full, err := f.uc.RecordApproval(ctx, "g-bilal", match.ID, domain.ApprovalApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, full.Status)
}

func TestRecordApprovalRejectsOutsideGuardian(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.addGuardian("alice", "g-alice", true)
	f.addGuardian("chadia", "g-chadia", true)
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)

	_, err = f.uc.RecordApproval(ctx, "g-chadia", match.ID, domain.ApprovalApproved, nil)
	assert.ErrorIs(t, err, domain.ErrGuardianNotParty)
}

func TestExpirePendingIsIdempotent(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	require.Equal(t, domain.MatchPending, match.Status)

	// Age the match past the TTL.
	f.matches.mu.Lock()
	f.matches.matches[match.ID].CreatedAt = time.Now().Add(-100 * time.Hour)
	f.matches.mu.Unlock()

	expired, err := f.uc.ExpirePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	got, err := f.matches.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchExpired, got.Status)

	// Second sweep finds nothing and changes nothing.
	expired, err = f.uc.ExpirePending(ctx)
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestExpirePendingSkipsFreshAndAcceptedMatches(t *testing.T) {
	cfg := defaultConfig()
	cfg.RequireMutualLike = false
	f := newFixture(t, cfg)
	ctx := context.Background()

	accepted, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	require.Equal(t, domain.MatchAccepted, accepted.Status)

	expired, err := f.uc.ExpirePending(ctx)
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestExpirySweepSerializesWithReciprocalLike(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	require.Equal(t, domain.MatchPending, match.Status)

	// Age the match past the TTL so the sweep sees it as stale.
	f.matches.mu.Lock()
	f.matches.matches[match.ID].CreatedAt = time.Now().Add(-100 * time.Hour)
	f.matches.mu.Unlock()

	// Park the reciprocal like inside the pair lock, after it has read the
	// match as pending but before it commits acceptance.
	entered := make(chan struct{})
	release := make(chan struct{})
	f.swipes.onCreate = func(s *domain.Swipe) {
		if s.SwiperID == "bilal" {
			close(entered)
			<-release
		}
	}

	applyDone := make(chan error, 1)
	go func() {
		_, err := f.uc.Apply(ctx, domain.SwipeLike, "bilal", "alice")
		applyDone <- err
	}()
	<-entered

	// The sweep must wait for the in-flight transition instead of expiring
	// from a reading of the match the other path is about to invalidate.
	sweepDone := make(chan int, 1)
	go func() {
		n, err := f.uc.ExpirePending(ctx)
		require.NoError(t, err)
		sweepDone <- n
	}()

	close(release)
	require.NoError(t, <-applyDone)
	expired := <-sweepDone

	got, err := f.matches.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, got.Status,
		"an accepted match must never be flipped back by the sweep")
	assert.Zero(t, expired)
}

func TestRecordApprovalHonorsGateAfterGuardianSettingsChange(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.addGuardian("alice", "g-alice", true)
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)
	require.True(t, match.GuardianApprovalRequired)

	// The guardian relaxes their settings after the match was gated.
	f.guards.byUser["alice"].RequireApprovalForContact = false

	updated, err := f.uc.RecordApproval(ctx, "g-alice", match.ID, domain.ApprovalApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, updated.Status,
		"an approved record must still resolve a match gated at creation")
}

func TestGetMatchRestrictedToParties(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	match, err := f.uc.Apply(ctx, domain.SwipeLike, "alice", "bilal")
	require.NoError(t, err)

	got, err := f.uc.GetMatch(ctx, match.ID, "bilal")
	require.NoError(t, err)
	assert.Equal(t, match.ID, got.ID)

	_, err = f.uc.GetMatch(ctx, match.ID, "chadia")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}
