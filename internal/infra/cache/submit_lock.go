package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"homestay-checkout/internal/infra"
	"homestay-checkout/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Deletes the key only if it still holds our token, so an expired holder
// cannot release a lock someone else has since taken.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// SubmitLock serializes submits per session. While a holder is alive its
// lock is re-armed every third of the TTL, so a slow provider call cannot
// outlive it; the TTL only matters once the holder has crashed.
type SubmitLock struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSubmitLock(client *redis.Client, cfg config.CheckoutConfig, logger *slog.Logger) *SubmitLock {
	return &SubmitLock{client: client, ttl: cfg.SubmitLockTTL, logger: logger}
}

func (l *SubmitLock) Acquire(ctx context.Context, sessionID uuid.UUID) (func(context.Context) error, error) {
	key := lockKey(sessionID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, infra.WrapAdapterErr(l.logger, infra.KindCacheFailure, "failed to acquire submit lock", err)
	}
	if !ok {
		return nil, infra.WrapAdapterErr(l.logger, infra.KindLockHeld, "submit already in progress", nil)
	}

	stop := l.keepAlive(key, token)
	release := func(ctx context.Context) error {
		stop()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return infra.WrapAdapterErr(l.logger, infra.KindCacheFailure, "failed to release submit lock", err)
		}
		return nil
	}
	return release, nil
}

// keepAlive extends the lock until the returned stop func is called or the
// token is no longer ours. stop waits for the refresher to exit.
func (l *SubmitLock) keepAlive(key, token string) (stop func()) {
	interval := l.ttl / 3
	if interval <= 0 {
		return func() {}
	}

	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), interval)
				n, err := extendScript.Run(ctx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int()
				cancel()
				if err != nil {
					l.logger.Warn("failed to extend submit lock", "key", key, "error", err)
					continue
				}
				if n == 0 {
					l.logger.Warn("submit lock lost before release", "key", key)
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(quit)
			<-done
		})
	}
}

func lockKey(id uuid.UUID) string {
	return fmt.Sprintf("checkout:submit-lock:%s", id)
}
