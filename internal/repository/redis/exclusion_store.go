package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zawajapp/zawaj-backend/internal/repository"
)

// exclusionStore keeps the set of users a given user has passed on, so they
// never reappear in that user's candidate feed. Pass actions create no Match
// entity; this set is the only trace they leave.
type exclusionStore struct {
	client *redis.Client
}

func NewExclusionStore(client *redis.Client) repository.ExclusionStore {
	return &exclusionStore{client: client}
}

func exclusionKey(userID string) string {
	return fmt.Sprintf("feed:exclusions:%s", userID)
}

func (s *exclusionStore) Add(ctx context.Context, userID, targetID string) error {
	return s.client.SAdd(ctx, exclusionKey(userID), targetID).Err()
}

func (s *exclusionStore) IsExcluded(ctx context.Context, userID, targetID string) (bool, error) {
	return s.client.SIsMember(ctx, exclusionKey(userID), targetID).Result()
}

func (s *exclusionStore) List(ctx context.Context, userID string) ([]string, error) {
	return s.client.SMembers(ctx, exclusionKey(userID)).Result()
}
