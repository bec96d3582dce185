package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/cashflow/internal/usecase"
)

// Value held by a key whose first request has not finished.
const pendingMarker = "pending"

type idempotencyClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// IdempotencyStore implements usecase.IdempotencyStore on Redis. A claim is a
// SETNX of a pending marker; completing it overwrites the marker with the
// encoded response.
type IdempotencyStore struct {
	client idempotencyClient
	prefix string
}

func NewIdempotencyStore(client idempotencyClient) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
	}
}

func (s *IdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, *usecase.StoredResponse, error) {
	fullKey := s.prefix + key

	ok, err := s.client.SetNX(ctx, fullKey, pendingMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if ok {
		return true, nil, nil
	}

	raw, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// Released or expired between SETNX and GET; the caller may retry.
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	if string(raw) == pendingMarker {
		return false, nil, nil
	}

	var stored usecase.StoredResponse
	if err := json.Unmarshal(raw, &stored); err != nil {
		return false, nil, fmt.Errorf("decode stored response %s: %w", key, err)
	}
	return false, &stored, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp usecase.StoredResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
