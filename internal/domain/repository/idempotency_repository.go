package repository

import (
	"context"
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and access role
	GetByKey(ctx context.Context, key, role string) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteByKey removes the key stored for (key, role), if any
	DeleteByKey(ctx context.Context, key, role string) error
	// DeleteExpired removes keys that expired before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
