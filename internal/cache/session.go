package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/studyspot/studyspot/internal/session"
)

// sessionPrefix is the Redis key prefix for login sessions.
const sessionPrefix = "session:"

var _ session.Store = (*Cache)(nil)

// SaveSession stores token → userID with a TTL.
func (c *Cache) SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := c.client.Set(ctx, sessionPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession returns the user bound to token, or session.ErrNotFound.
func (c *Cache) LoadSession(ctx context.Context, token string) (string, error) {
	userID, err := c.client.Get(ctx, sessionPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", session.ErrNotFound
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return userID, nil
}

// DeleteSession removes token. Unknown tokens are ignored.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
