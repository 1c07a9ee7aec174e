package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sheet-gateway-backend/internal/common/logger"
)

const (
	keyPrefixLock  = "lock:"
	pollInterval   = 25 * time.Millisecond
	releaseTimeout = 2 * time.Second
)

// releaseScript deletes the lock only while it still carries our token, so an
// expired lease taken over by another replica is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// renewScript extends the lease only while it still carries our token.
var renewScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker shares table locks between replicas through SET NX PX. A held
// lease is renewed every third of its TTL until it is released, so slow store
// calls inside the critical section do not let another replica in.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client redis.UniversalClient, ttl, wait time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl, wait: wait}
}

func makeLockKey(name string) string {
	return keyPrefixLock + name
}

func (l *RedisLocker) Acquire(ctx context.Context, name string) (func(), error) {
	key := makeLockKey(name)
	token := uuid.New().String()

	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", name, err)
		}
		if ok {
			return l.hold(key, token), nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return nil, fmt.Errorf("%w: %s", ErrTimeout, name)
			}
			return nil, ctx.Err()
		}
	}
}

// hold keeps the lease alive until the returned release func runs. Release
// is idempotent.
func (l *RedisLocker) hold(key, token string) func() {
	stop := make(chan struct{})
	done := make(chan struct{})
	go l.renew(key, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			l.release(key, token)
		})
	}
}

func (l *RedisLocker) renew(key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	every := l.ttl / 3
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), every)
		n, err := renewScript.Run(ctx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int()
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("lock", key).Msg("Failed to renew lock lease")
			continue
		}
		if n == 0 {
			logger.Error().Str("lock", key).Msg("Lock lease lost while held")
			return
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	// The caller's context may already be gone; release on our own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		logger.Warn().Err(err).Str("lock", key).Msg("Failed to release lock")
	}
}
