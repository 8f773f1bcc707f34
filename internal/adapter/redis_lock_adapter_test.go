package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"wiki-quiz/internal/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://en.wikipedia.org/wiki/Alan_Turing"

func newTestLock(t *testing.T) (*RedisURLLock, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	lock := NewRedisURLLock(db, time.Minute)
	lock.poll = time.Millisecond
	lock.newToken = func() string { return "token-1" }
	return lock, mock
}

func TestRedisURLLock_AcquireAndRelease(t *testing.T) {
	lock, mock := newTestLock(t)
	key := cache.GenerationLockKey(testURL)

	mock.ExpectSetNX(key, "token-1", time.Minute).SetVal(true)
	mock.ExpectEval(releaseScript, []string{key}, "token-1").SetVal(int64(1))

	release, err := lock.Acquire(context.Background(), testURL)
	require.NoError(t, err)
	release()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisURLLock_WaitsForHolder(t *testing.T) {
	lock, mock := newTestLock(t)
	key := cache.GenerationLockKey(testURL)

	mock.ExpectSetNX(key, "token-1", time.Minute).SetVal(false)
	mock.ExpectSetNX(key, "token-1", time.Minute).SetVal(false)
	mock.ExpectSetNX(key, "token-1", time.Minute).SetVal(true)

	release, err := lock.Acquire(context.Background(), testURL)
	require.NoError(t, err)
	assert.NotNil(t, release)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisURLLock_ContextDone(t *testing.T) {
	lock, mock := newTestLock(t)
	lock.poll = time.Hour
	key := cache.GenerationLockKey(testURL)

	ctx, cancel := context.WithCancel(context.Background())
	mock.ExpectSetNX(key, "token-1", time.Minute).SetVal(false)
	cancel()

	release, err := lock.Acquire(ctx, testURL)
	assert.Nil(t, release)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisURLLock_RedisError(t *testing.T) {
	lock, mock := newTestLock(t)

	mock.ExpectSetNX(cache.GenerationLockKey(testURL), "token-1", time.Minute).SetErr(errors.New("connection refused"))

	_, err := lock.Acquire(context.Background(), testURL)
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockKey(t *testing.T) {
	key := cache.GenerationLockKey(testURL)
	assert.Regexp(t, `^wikiquiz:generation:lock:[0-9a-f]{64}$`, key)
	assert.NotEqual(t, key, cache.GenerationLockKey("https://en.wikipedia.org/wiki/Ada_Lovelace"))
}
