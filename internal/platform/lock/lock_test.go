package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, ttl, wait time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, ttl, wait), mr
}

func lockers(t *testing.T, wait time.Duration) map[string]Locker {
	redisLocker, _ := newRedisLocker(t, time.Minute, wait)
	return map[string]Locker{
		"local": NewLocalLocker(wait),
		"redis": redisLocker,
	}
}

func TestLocker_ExclusivePerName(t *testing.T) {
	for name, l := range lockers(t, 200*time.Millisecond) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			release, err := l.Acquire(ctx, "Feuille 4")
			require.NoError(t, err)

			_, err = l.Acquire(ctx, "Feuille 4")
			assert.ErrorIs(t, err, ErrTimeout)

			other, err := l.Acquire(ctx, "Feuille 5")
			require.NoError(t, err, "different tables must not block each other")
			other()

			release()

			again, err := l.Acquire(ctx, "Feuille 4")
			require.NoError(t, err)
			again()
		})
	}
}

func TestLocker_SerialisesCriticalSections(t *testing.T) {
	for name, l := range lockers(t, 5*time.Second) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			counter := 0
			var mu sync.Mutex
			var wg sync.WaitGroup

			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := withLock(ctx, l, "table", func() error {
						mu.Lock()
						v := counter
						mu.Unlock()

						time.Sleep(time.Millisecond)

						mu.Lock()
						counter = v + 1
						mu.Unlock()
						return nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			assert.Equal(t, 10, counter)
		})
	}
}

func TestLocker_ReleasesOnError(t *testing.T) {
	l := NewLocalLocker(50 * time.Millisecond)
	boom := errors.New("boom")

	err := withLock(context.Background(), l, "t", func() error { return boom })
	assert.ErrorIs(t, err, boom)

	err = withLock(context.Background(), l, "t", func() error { return nil })
	assert.NoError(t, err)
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker(0)
	release, err := l.Acquire(context.Background(), "t")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Acquire(ctx, "t")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalLocker_DoubleReleaseIsSafe(t *testing.T) {
	l := NewLocalLocker(50 * time.Millisecond)
	release, err := l.Acquire(context.Background(), "t")
	require.NoError(t, err)

	release()
	release()

	again, err := l.Acquire(context.Background(), "t")
	require.NoError(t, err)
	again()
}

func TestRedisLocker_DoesNotReleaseForeignLease(t *testing.T) {
	l, mr := newRedisLocker(t, time.Minute, 50*time.Millisecond)

	release, err := l.Acquire(context.Background(), "t")
	require.NoError(t, err)

	// Simulate lease expiry followed by another replica taking the lock.
	require.NoError(t, mr.Set("lock:t", "someone-else"))
	release()

	v, err := mr.Get("lock:t")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", v)
}

func TestRedisLocker_LeaseExpires(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second, 50*time.Millisecond)

	_, err := l.Acquire(context.Background(), "t")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	release, err := l.Acquire(context.Background(), "t")
	require.NoError(t, err)
	release()
}

func TestRedisLocker_RenewsLeaseWhileHeld(t *testing.T) {
	l, mr := newRedisLocker(t, 300*time.Millisecond, 50*time.Millisecond)

	release, err := l.Acquire(context.Background(), "t")
	require.NoError(t, err)

	// Without renewal the lease would run out within these two jumps.
	mr.FastForward(250 * time.Millisecond)
	require.Eventually(t, func() bool {
		return mr.TTL("lock:t") > 250*time.Millisecond
	}, 2*time.Second, 10*time.Millisecond)
	mr.FastForward(250 * time.Millisecond)
	require.True(t, mr.Exists("lock:t"))

	_, err = l.Acquire(context.Background(), "t")
	assert.ErrorIs(t, err, ErrTimeout)

	release()
	assert.False(t, mr.Exists("lock:t"))
}

func TestRedisLocker_StopsRenewingAfterRelease(t *testing.T) {
	l, mr := newRedisLocker(t, 300*time.Millisecond, 50*time.Millisecond)

	release, err := l.Acquire(context.Background(), "t")
	require.NoError(t, err)
	release()
	release()

	require.NoError(t, mr.Set("lock:t", "someone-else"))
	mr.SetTTL("lock:t", 100*time.Millisecond)
	time.Sleep(250 * time.Millisecond)

	assert.Equal(t, 100*time.Millisecond, mr.TTL("lock:t"))
}

func withLock(ctx context.Context, l Locker, name string, fn func() error) error {
	release, err := l.Acquire(ctx, name)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
