package repository

import (
	"context"
	"time"

	"github.com/zawajapp/zawaj-backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error)
	GetUserMatches(ctx context.Context, userID string, limit, offset int) ([]*domain.Match, error)
	UpdateStatus(ctx context.Context, id string, status domain.MatchStatus) error
	// ListPendingBefore returns pending matches created before the cutoff,
	// for the expiry sweep.
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]*domain.Match, error)
	// AppendApproval appends a guardian approval record; prior records are
	// never mutated.
	AppendApproval(ctx context.Context, approval *domain.GuardianApproval) error
	// ListApprovals returns all approval records for a match in append order.
	ListApprovals(ctx context.Context, matchID string) ([]domain.GuardianApproval, error)
}

type SwipeRepository interface {
	Create(ctx context.Context, swipe *domain.Swipe) error
	// GetByUsers returns the swipe swiper→swiped, or (nil, nil) when absent.
	GetByUsers(ctx context.Context, swiperID, swipedID string) (*domain.Swipe, error)
	// HasLike reports whether swiper has an on-file like or super-like for
	// swiped.
	HasLike(ctx context.Context, swiperID, swipedID string) (bool, error)
}

// ExclusionStore tracks users excluded from a user's candidate presentation
// (passed targets).
type ExclusionStore interface {
	Add(ctx context.Context, userID, targetID string) error
	IsExcluded(ctx context.Context, userID, targetID string) (bool, error)
	List(ctx context.Context, userID string) ([]string, error)
}
