package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// ConsolidationCache keeps read-mostly daily consolidations in Redis.
// Writers delete keys after commit; readers repopulate on miss.
type ConsolidationCache struct {
	client redis.Cmdable
	prefix string
}

func NewConsolidationCache(client redis.Cmdable) *ConsolidationCache {
	return &ConsolidationCache{
		client: client,
		prefix: "consolidation:",
	}
}

type cachedConsolidation struct {
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	Date          domain.CalendarDate `json:"date"`
	Merchant      string              `json:"merchant"`
	TotalCredits  decimal.Decimal     `json:"totalCredits"`
	TotalDebits   decimal.Decimal     `json:"totalDebits"`
	ID            int64               `json:"id"`
	CreditCount   int64               `json:"creditCount"`
	DebitCount    int64               `json:"debitCount"`
}

func (c *ConsolidationCache) key(k domain.ConsolidationKey) string {
	return c.prefix + k.Merchant + ":" + k.Date.String()
}

// Get returns nil, nil on a miss.
func (c *ConsolidationCache) Get(ctx context.Context, key domain.ConsolidationKey) (*domain.DailyConsolidation, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached cachedConsolidation
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("decode cached consolidation %s: %w", key, err)
	}

	return &domain.DailyConsolidation{
		ID:            cached.ID,
		Merchant:      cached.Merchant,
		Date:          cached.Date,
		TotalCredits:  cached.TotalCredits,
		TotalDebits:   cached.TotalDebits,
		CreditCount:   cached.CreditCount,
		DebitCount:    cached.DebitCount,
		LastUpdatedAt: cached.LastUpdatedAt,
	}, nil
}

func (c *ConsolidationCache) Set(ctx context.Context, consolidation *domain.DailyConsolidation, ttl time.Duration) error {
	raw, err := json.Marshal(cachedConsolidation{
		ID:            consolidation.ID,
		Merchant:      consolidation.Merchant,
		Date:          consolidation.Date,
		TotalCredits:  consolidation.TotalCredits,
		TotalDebits:   consolidation.TotalDebits,
		CreditCount:   consolidation.CreditCount,
		DebitCount:    consolidation.DebitCount,
		LastUpdatedAt: consolidation.LastUpdatedAt,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.key(consolidation.Key()), raw, ttl).Err()
}

func (c *ConsolidationCache) Delete(ctx context.Context, keys ...domain.ConsolidationKey) error {
	if len(keys) == 0 {
		return nil
	}

	fullKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		fullKeys = append(fullKeys, c.key(k))
	}

	return c.client.Del(ctx, fullKeys...).Err()
}
