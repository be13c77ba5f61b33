package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix     = "scheduling:datelock:"
	acquireRetryDelay = 50 * time.Millisecond
)

// releaseScript deletes the lock only when the caller still owns it, so
// an expired-and-reacquired lock is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a DateLocker backed by a redis SET NX lease, for
// deployments running more than one instance against the same database.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a locker using client, with ttl bounding how
// long a crashed holder can keep a date locked.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// WithDateLock acquires the per-date lease, runs fn, and releases the
// lease. Acquisition retries until the context is done.
func (l *RedisLocker) WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error {
	key := lockKeyPrefix + date
	owner := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLockNotAcquired, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrLockNotAcquired, ctx.Err())
		case <-time.After(acquireRetryDelay):
		}
	}

	defer func() {
		// Best-effort release; the TTL reclaims the lease on failure.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, _ = releaseScript.Run(releaseCtx, l.client, []string{key}, owner).Result()
	}()

	return fn(ctx)
}
