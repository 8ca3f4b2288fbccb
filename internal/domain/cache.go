package domain

import (
	"context"
	"time"
)

// Cache stores JSON-encodable values by key. Get reports false on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
