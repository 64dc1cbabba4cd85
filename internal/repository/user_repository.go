package repository

import (
	"context"

	"github.com/zawajapp/zawaj-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// ListCompleted returns verified users with completed profiles, excluding
	// the given user, in stable creation order.
	ListCompleted(ctx context.Context, excludeUserID string, limit, offset int) ([]*domain.User, error)
}
