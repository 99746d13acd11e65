// Package lock provides a Redis-backed lock.Locker for running several
// server instances against one database.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/bankcore/pkg/lock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

var release = redis.NewScript(releaseScript)

// RedisLocker acquires locks with SET NX PX and releases them only if the
// stored token is still ours. The TTL bounds how long a crashed holder can
// block other callers.
type RedisLocker struct {
	client        *redis.Client
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	logger        *slog.Logger
}

// NewRedisLocker creates a distributed locker.
func NewRedisLocker(
	client *redis.Client,
	prefix string,
	ttl, retryInterval time.Duration,
	logger *slog.Logger,
) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if retryInterval <= 0 {
		retryInterval = 25 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		client:        client,
		prefix:        prefix + "lock:",
		ttl:           ttl,
		retryInterval: retryInterval,
		logger:        logger.With("component", "redis-locker"),
	}
}

// Lock retries until the key is free or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, wrapCtxErr(ctxErr)
			}
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, wrapCtxErr(ctx.Err())
		case <-ticker.C:
		}
	}

	return func() {
		// The caller's ctx may already be cancelled; release on a fresh one.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		n, err := release.Run(releaseCtx, l.client, []string{lockKey}, token).Int64()
		if err != nil {
			l.logger.Error("failed to release lock", "key", lockKey, "error", err)
			return
		}
		if n == 0 {
			l.logger.Warn("lock expired before release", "key", lockKey)
		}
	}, nil
}

func wrapCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return lock.ErrTimeout
	}
	return err
}

var _ lock.Locker = (*RedisLocker)(nil)
