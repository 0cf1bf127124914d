package redis

import (
	"errors"
	"time"

	"github.com/astromart/goledger/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("key not found")

	// ErrNoTTL is returned by TTL when the key exists but has no expire
	ErrNoTTL = errors.New("key has no ttl")
)

// Service abstracts the redis layer
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	// TTL returns remaining seconds. ErrNotFound if the key does not
	// exist, ErrNoTTL if it exists without an expire.
	TTL(context ctx.Ctx, key string) (int, error)
}
