package lock

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"auction-engine/utils"

	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "auction:lock:"

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every process pointing at the same Redis.
// The key expires after ttl so a crashed holder cannot wedge an auction.
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryEvery time.Duration
}

// NewRedisLocker creates a RedisLocker
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, retryEvery: 10 * time.Millisecond}
}

// Acquire polls SET NX until it wins or ctx is done
func (l *RedisLocker) Acquire(ctx context.Context, auctionID int64) (func(), error) {
	key := lockKeyPrefix + strconv.FormatInt(auctionID, 10)
	token := utils.GenerateID()

	ticker := time.NewTicker(l.retryEvery)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("lock auction %d: %w", auctionID, err)
		}
		if ok {
			return l.releaser(key, token, auctionID), nil
		}

		select {
		case <-ctx.Done():
			return nil, busy(auctionID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) releaser(key, token string, auctionID int64) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			utils.Warn("Failed to release auction lock", map[string]any{
				"auction_id": auctionID,
				"error":      err.Error(),
			})
		}
	}
}

// NewRedisClient connects to addr and verifies the connection with a ping
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}
