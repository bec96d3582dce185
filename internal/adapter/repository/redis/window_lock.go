package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned by Release when the lock expired or was taken
// over by another holder.
var ErrLockNotHeld = errors.New("lock not held")

// Deletes the key only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type lockClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// WindowLock is a single-holder lease used to keep two reconciliations of the
// same window from running at once across instances.
type WindowLock struct {
	client lockClient
	prefix string
}

func NewWindowLock(client lockClient) *WindowLock {
	return &WindowLock{
		client: client,
		prefix: "lock:",
	}
}

// Acquire sets the lock if absent. The returned token must be passed to Release.
func (l *WindowLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.prefix+key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

func (l *WindowLock) Release(ctx context.Context, key, token string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{l.prefix + key}, token).Int64()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}
