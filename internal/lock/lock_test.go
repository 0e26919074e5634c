package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"auction-engine/internal/biddingerrors"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, ttl), mr
}

// lockers returns every Locker implementation under test
func lockers(t *testing.T) map[string]Locker {
	redisLocker, _ := newTestRedisLocker(t, 5*time.Second)
	return map[string]Locker{
		"memory": NewMemoryLocker(),
		"redis":  redisLocker,
	}
}

func TestLocker_MutualExclusion(t *testing.T) {
	t.Parallel()

	for name, locker := range lockers(t) {
		locker := locker
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			const workers = 20
			var (
				wg      sync.WaitGroup
				inside  int32
				maxSeen int32
				total   int32
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()

					release, err := locker.Acquire(ctx, 1)
					require.NoError(t, err)
					defer release()

					n := atomic.AddInt32(&inside, 1)
					for {
						m := atomic.LoadInt32(&maxSeen)
						if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
							break
						}
					}
					time.Sleep(time.Millisecond)
					atomic.AddInt32(&total, 1)
					atomic.AddInt32(&inside, -1)
				}()
			}
			wg.Wait()

			require.Equal(t, int32(1), maxSeen)
			require.Equal(t, int32(workers), total)
		})
	}
}

func TestLocker_IndependentAuctions(t *testing.T) {
	t.Parallel()

	for name, locker := range lockers(t) {
		locker := locker
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			releaseA, err := locker.Acquire(ctx, 1)
			require.NoError(t, err)
			defer releaseA()

			ctx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			releaseB, err := locker.Acquire(ctx, 2)
			require.NoError(t, err)
			releaseB()
		})
	}
}

func TestLocker_BusyTimeout(t *testing.T) {
	t.Parallel()

	for name, locker := range lockers(t) {
		locker := locker
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			release, err := locker.Acquire(context.Background(), 9)
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()
			_, err = locker.Acquire(ctx, 9)
			require.ErrorIs(t, err, biddingerrors.ErrAuctionBusy)

			release()
			ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
			defer cancel2()
			again, err := locker.Acquire(ctx2, 9)
			require.NoError(t, err)
			again()
		})
	}
}

func TestMemoryLocker_ReleaseIsIdempotent(t *testing.T) {
	t.Parallel()

	locker := NewMemoryLocker()
	release, err := locker.Acquire(context.Background(), 3)
	require.NoError(t, err)
	release()
	release()

	locker.mu.Lock()
	require.Empty(t, locker.entries)
	locker.mu.Unlock()
}

func TestRedisLocker_ExpiredHolderCannotReleaseSuccessor(t *testing.T) {
	t.Parallel()

	locker, mr := newTestRedisLocker(t, time.Second)
	ctx := context.Background()

	stale, err := locker.Acquire(ctx, 4)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	fresh, err := locker.Acquire(ctx, 4)
	require.NoError(t, err)

	stale()
	require.True(t, mr.Exists(lockKeyPrefix+"4"))

	fresh()
	require.False(t, mr.Exists(lockKeyPrefix+"4"))
}
