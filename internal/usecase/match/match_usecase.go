package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zawajapp/zawaj-backend/internal/config"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/repository"
	"go.uber.org/zap"
)

// Scorer computes the compatibility score frozen into a match at creation.
type Scorer interface {
	Assess(ctx context.Context, userAID, userBID string) (*domain.CompatibilityScore, error)
}

type MatchUseCase struct {
	matchRepo    repository.MatchRepository
	swipeRepo    repository.SwipeRepository
	userRepo     repository.UserRepository
	guardianRepo repository.GuardianRepository
	exclusions   repository.ExclusionStore
	scorer       Scorer
	cfg          config.MatchConfig
	log          *zap.Logger
	locks        *keyMutex
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	swipeRepo repository.SwipeRepository,
	userRepo repository.UserRepository,
	guardianRepo repository.GuardianRepository,
	exclusions repository.ExclusionStore,
	scorer Scorer,
	cfg config.MatchConfig,
	log *zap.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:    matchRepo,
		swipeRepo:    swipeRepo,
		userRepo:     userRepo,
		guardianRepo: guardianRepo,
		exclusions:   exclusions,
		scorer:       scorer,
		cfg:          cfg,
		log:          log,
		locks:        newKeyMutex(),
	}
}

func pairKey(a, b string) string {
	u1, u2 := domain.NormalizeMatchUsers(a, b)
	return u1 + "|" + u2
}

// Apply records the actor's swipe on the target. A pass never yields a match;
// a like or super-like creates (or returns) the pair's match. Scoring is
// attempted before anything is persisted, so a scoring failure leaves no
// trace of the swipe.
func (uc *MatchUseCase) Apply(ctx context.Context, action domain.SwipeAction, actorID, targetID string) (*domain.Match, error) {
	if actorID == targetID {
		return nil, domain.ErrCannotSwipeSelf
	}
	switch action {
	case domain.SwipePass, domain.SwipeLike, domain.SwipeSuperLike:
	default:
		return nil, domain.ErrInvalidSwipeAction
	}

	if _, err := uc.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	existing, err := uc.swipeRepo.GetByUsers(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSwipeAlreadyExists
	}

	if action == domain.SwipePass {
		if err := uc.swipeRepo.Create(ctx, &domain.Swipe{
			SwiperID: actorID,
			SwipedID: targetID,
			Action:   action,
		}); err != nil {
			return nil, err
		}
		if err := uc.exclusions.Add(ctx, actorID, targetID); err != nil {
			return nil, fmt.Errorf("failed to record exclusion: %w", err)
		}
		return nil, nil
	}

	key := pairKey(actorID, targetID)
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	match, err := uc.matchRepo.GetByUsers(ctx, actorID, targetID)
	if err != nil && !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, err
	}
	if match != nil {
		if err := uc.swipeRepo.Create(ctx, &domain.Swipe{
			SwiperID: actorID,
			SwipedID: targetID,
			Action:   action,
		}); err != nil {
			return nil, err
		}
		// A reciprocal like completes a mutual-like match, unless guardian
		// approval still gates it.
		if match.Status == domain.MatchPending && !match.GuardianApprovalRequired && uc.cfg.RequireMutualLike {
			if err := uc.transition(ctx, match, domain.MatchAccepted); err != nil {
				return nil, err
			}
		}
		return uc.withApprovals(ctx, match)
	}

	// Score first. All-or-nothing: a failed assessment aborts the whole
	// action and the swipe is not recorded.
	score, err := uc.scorer.Assess(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	guardianRequired, err := uc.guardianRequired(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	status := domain.MatchPending
	if !guardianRequired {
		if uc.cfg.RequireMutualLike {
			reciprocal, err := uc.swipeRepo.HasLike(ctx, targetID, actorID)
			if err != nil {
				return nil, err
			}
			if reciprocal {
				status = domain.MatchAccepted
			}
		} else {
			status = domain.MatchAccepted
		}
	}

	if err := uc.swipeRepo.Create(ctx, &domain.Swipe{
		SwiperID: actorID,
		SwipedID: targetID,
		Action:   action,
	}); err != nil {
		return nil, err
	}

	match = &domain.Match{
		ID:                       uuid.NewString(),
		User1ID:                  actorID,
		User2ID:                  targetID,
		InitiatedBy:              actorID,
		Score:                    *score,
		Status:                   status,
		GuardianApprovalRequired: guardianRequired,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	uc.log.Info("match created",
		zap.String("match_id", match.ID),
		zap.String("initiated_by", actorID),
		zap.String("status", string(match.Status)),
		zap.Bool("guardian_approval_required", guardianRequired),
		zap.Float64("overall", score.Overall),
	)
	return match, nil
}

// guardianRequired is evaluated exactly once, at match creation. The
// initiator's guardian settings decide; the target's side is consulted only
// when both-sides policy is on.
func (uc *MatchUseCase) guardianRequired(ctx context.Context, actorID, targetID string) (bool, error) {
	required, err := uc.userNeedsApproval(ctx, actorID)
	if err != nil || required {
		return required, err
	}
	if uc.cfg.GuardianBothSides {
		return uc.userNeedsApproval(ctx, targetID)
	}
	return false, nil
}

func (uc *MatchUseCase) userNeedsApproval(ctx context.Context, userID string) (bool, error) {
	guardian, err := uc.guardianRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrGuardianNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return guardian.RequireApprovalForContact, nil
}

// RecordApproval appends a guardian decision to the match and re-evaluates
// the match status from the latest record per guardian. Records are never
// overwritten; a changed mind is a new record.
func (uc *MatchUseCase) RecordApproval(ctx context.Context, guardianID, matchID string, status domain.ApprovalStatus, comment *string) (*domain.Match, error) {
	switch status {
	case domain.ApprovalApproved, domain.ApprovalRejected, domain.ApprovalNeedsMoreInfo:
	default:
		return nil, fmt.Errorf("invalid approval status %q", status)
	}

	// Resolve the pair key from an unlocked read, then re-read under the
	// same lock Apply uses. Every match mutation serializes on the pair key.
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	key := pairKey(match.User1ID, match.User2ID)
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	match, err = uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status.IsTerminal() {
		return nil, domain.ErrMatchTerminal
	}

	guardian, err := uc.guardianRepo.GetByID(ctx, guardianID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(guardian.UserID) {
		return nil, domain.ErrGuardianNotParty
	}

	if err := uc.matchRepo.AppendApproval(ctx, &domain.GuardianApproval{
		ID:         uuid.NewString(),
		GuardianID: guardianID,
		UserID:     guardian.UserID,
		MatchID:    matchID,
		Status:     status,
		Comment:    comment,
	}); err != nil {
		return nil, err
	}

	if err := uc.reevaluate(ctx, match); err != nil {
		return nil, err
	}

	uc.log.Info("guardian decision recorded",
		zap.String("match_id", matchID),
		zap.String("guardian_id", guardianID),
		zap.String("decision", string(status)),
		zap.String("match_status", string(match.Status)),
	)
	return uc.withApprovals(ctx, match)
}

// reevaluate derives the match status from the latest decision of every
// required guardian. Any standing rejection closes the match; the match is
// accepted only once every required guardian's latest decision is approval.
func (uc *MatchUseCase) reevaluate(ctx context.Context, match *domain.Match) error {
	if !match.GuardianApprovalRequired || match.Status != domain.MatchPending {
		return nil
	}

	records, err := uc.matchRepo.ListApprovals(ctx, match.ID)
	if err != nil {
		return err
	}
	latest := make(map[string]domain.ApprovalStatus, len(records))
	for _, r := range records {
		latest[r.GuardianID] = r.Status
	}

	required, err := uc.requiredGuardians(ctx, match)
	if err != nil {
		return err
	}
	// The gate was frozen at creation. If guardian settings changed since and
	// nobody is required anymore, the guardians already on record decide.
	if len(required) == 0 {
		for guardianID := range latest {
			required = append(required, guardianID)
		}
	}
	if len(required) == 0 {
		return nil
	}

	allApproved := true
	for _, guardianID := range required {
		switch latest[guardianID] {
		case domain.ApprovalRejected:
			return uc.transition(ctx, match, domain.MatchRejected)
		case domain.ApprovalApproved:
		default:
			allApproved = false
		}
	}
	if allApproved {
		return uc.transition(ctx, match, domain.MatchAccepted)
	}
	return nil
}

// requiredGuardians lists the guardians whose approval gates this match:
// the initiator's guardian, plus the other party's under both-sides policy.
func (uc *MatchUseCase) requiredGuardians(ctx context.Context, match *domain.Match) ([]string, error) {
	parties := []string{match.InitiatedBy}
	if uc.cfg.GuardianBothSides {
		if other, ok := match.OtherUserID(match.InitiatedBy); ok {
			parties = append(parties, other)
		}
	}

	var ids []string
	for _, userID := range parties {
		guardian, err := uc.guardianRepo.GetByUserID(ctx, userID)
		if errors.Is(err, domain.ErrGuardianNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if guardian.RequireApprovalForContact {
			ids = append(ids, guardian.ID)
		}
	}
	return ids, nil
}

func (uc *MatchUseCase) transition(ctx context.Context, match *domain.Match, status domain.MatchStatus) error {
	if err := uc.matchRepo.UpdateStatus(ctx, match.ID, status); err != nil {
		return err
	}
	match.Status = status
	return nil
}

// GetMatch returns the match with its full approval history attached. Only a
// party to the match may read it.
func (uc *MatchUseCase) GetMatch(ctx context.Context, matchID, userID string) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrMatchNotFound
	}
	return uc.withApprovals(ctx, match)
}

func (uc *MatchUseCase) ListMatches(ctx context.Context, userID string, limit, offset int) ([]*domain.Match, error) {
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if _, err := uc.withApprovals(ctx, m); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (uc *MatchUseCase) withApprovals(ctx context.Context, match *domain.Match) (*domain.Match, error) {
	approvals, err := uc.matchRepo.ListApprovals(ctx, match.ID)
	if err != nil {
		return nil, err
	}
	match.Approvals = approvals
	return match, nil
}

// ExpirePending expires every pending match older than the configured TTL.
// Safe to run concurrently and repeatedly: each candidate is re-checked
// under its lock, and matches already terminal are left untouched.
func (uc *MatchUseCase) ExpirePending(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-uc.cfg.PendingTTL)
	stale, err := uc.matchRepo.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, m := range stale {
		key := pairKey(m.User1ID, m.User2ID)
		uc.locks.Lock(key)
		current, err := uc.matchRepo.GetByID(ctx, m.ID)
		if err == nil && current.Status == domain.MatchPending && current.CreatedAt.Before(cutoff) {
			if err := uc.matchRepo.UpdateStatus(ctx, m.ID, domain.MatchExpired); err == nil {
				expired++
			} else {
				uc.log.Warn("failed to expire match", zap.String("match_id", m.ID), zap.Error(err))
			}
		}
		uc.locks.Unlock(key)
	}

	if expired > 0 {
		uc.log.Info("expired pending matches", zap.Int("count", expired))
	}
	return expired, nil
}

// StartExpirySweep runs ExpirePending on a fixed interval until the context
// is cancelled.
func (uc *MatchUseCase) StartExpirySweep(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(uc.cfg.ExpirySweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := uc.ExpirePending(ctx); err != nil {
					uc.log.Error("expiry sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
