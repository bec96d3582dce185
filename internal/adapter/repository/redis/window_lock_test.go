package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowLock_AcquireIsExclusive(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	lock := NewWindowLock(client)
	ctx := context.Background()

	token, ok, err := lock.Acquire(ctx, "reconcile:w", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = lock.Acquire(ctx, "reconcile:w", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lock.Release(ctx, "reconcile:w", token))

	_, ok, err = lock.Acquire(ctx, "reconcile:w", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWindowLock_ReleaseWithForeignToken(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	lock := NewWindowLock(client)
	ctx := context.Background()

	_, ok, err := lock.Acquire(ctx, "reconcile:w", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	err = lock.Release(ctx, "reconcile:w", "someone-else")
	assert.ErrorIs(t, err, ErrLockNotHeld)
	assert.True(t, mr.Exists("lock:reconcile:w"))
}

func TestWindowLock_ExpiresAfterTTL(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	lock := NewWindowLock(client)
	ctx := context.Background()

	token, ok, err := lock.Acquire(ctx, "reconcile:w", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = lock.Acquire(ctx, "reconcile:w", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, lock.Release(ctx, "reconcile:w", token), ErrLockNotHeld)
}
