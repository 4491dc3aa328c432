package locks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired holder cannot free somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Redis is a lease-based lock shared by every instance using the same server.
type Redis struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	retry  time.Duration
	logger *zap.Logger
}

type RedisOption func(*Redis)

func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

func WithRetryInterval(d time.Duration) RedisOption {
	return func(r *Redis) { r.retry = d }
}

// WithLogger receives release failures. They are otherwise silent because
// release runs from a defer.
func WithLogger(logger *zap.Logger) RedisOption {
	return func(r *Redis) { r.logger = logger }
}

func NewRedis(client redis.Cmdable, prefix string, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: prefix,
		ttl:    10 * time.Second,
		retry:  25 * time.Millisecond,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire polls SET NX until it wins or ctx ends.
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, r.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.Join(ErrNotAcquired, ctxErr)
			}
			return nil, fmt.Errorf("acquire %s: %w", fullKey, err)
		}
		if ok {
			return func() { r.release(fullKey, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}

// release runs on a fresh context since the caller's may already be done.
func (r *Redis) release(fullKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deleted, err := releaseScript.Run(ctx, r.client, []string{fullKey}, token).Int64()
	switch {
	case err != nil:
		r.logger.Warn("failed to release lock, it is held until the lease expires",
			zap.String("key", fullKey), zap.Duration("ttl", r.ttl), zap.Error(err))
	case deleted == 0:
		r.logger.Warn("lock lease expired before release", zap.String("key", fullKey), zap.Duration("ttl", r.ttl))
	}
}
