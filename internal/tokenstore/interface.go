package tokenstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store tracks issued refresh tokens by jti so individual tokens can be
// revoked before their TTL runs out. Access tokens stay stateless.
type Store interface {
	Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error

	Close() error
}
