// Package adapter holds infrastructure adapters that do not warrant a
// package of their own.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLockTTL   = 3 * time.Minute
	lockPollInterval = 250 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another process is left alone.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// RedisURLLock implements domain.GenerationLock with SET NX PX.
type RedisURLLock struct {
	client   *redis.Client
	ttl      time.Duration
	poll     time.Duration
	newToken func() string
}

var _ domain.GenerationLock = (*RedisURLLock)(nil)

// NewRedisURLLock expects a connected *redis.Client.
func NewRedisURLLock(client *redis.Client, ttl time.Duration) *RedisURLLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisURLLock{
		client:   client,
		ttl:      ttl,
		poll:     lockPollInterval,
		newToken: util.NewULID,
	}
}

// Acquire blocks until the lock for url is free or ctx is done.
func (l *RedisURLLock) Acquire(ctx context.Context, url string) (func(), error) {
	key := cache.GenerationLockKey(url)
	token := l.newToken()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		logger.Get().Debug("Generation already running for URL, waiting", zap.String("url", url))
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for generation lock: %w", ctx.Err())
		case <-time.After(l.poll):
		}
	}
}

func (l *RedisURLLock) release(key, token string) {
	// The request context may already be cancelled; the lock must still go.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		logger.Get().Warn("Failed to release generation lock", zap.String("key", key), zap.Error(err))
	}
}
