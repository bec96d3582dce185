package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/domain"
)

type stubEngine struct {
	got []*domain.LedgerEntry
	err error
}

func (s *stubEngine) Consume(_ context.Context, entry *domain.LedgerEntry) (bool, error) {
	s.got = append(s.got, entry)
	return s.err == nil, s.err
}

type stubMarker struct {
	got []domain.MarkConsolidatedEvent
	err error
}

func (s *stubMarker) Handle(_ context.Context, event domain.MarkConsolidatedEvent) (int64, error) {
	s.got = append(s.got, event)
	return int64(len(event.EntryIDs)), s.err
}

func entryBody(t *testing.T, amount string) []byte {
	t.Helper()
	body, err := json.Marshal(domain.EntryEvent{
		ID:         "e-1",
		Merchant:   "ACME",
		Amount:     decimal.RequireFromString(amount),
		Kind:       "credit",
		Date:       domain.MustDate(2024, time.January, 1),
		RecordedAt: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return body
}

func TestEntryEventHandler(t *testing.T) {
	t.Run("valid entry reaches the engine", func(t *testing.T) {
		engine := &stubEngine{}
		h := NewEntryEventHandler(engine)

		require.NoError(t, h(context.Background(), amqp.Delivery{Body: entryBody(t, "10.00")}))
		require.Len(t, engine.got, 1)
		assert.Equal(t, "e-1", engine.got[0].ID)
		assert.Equal(t, domain.EntryKindCredit, engine.got[0].Kind)
	})

	t.Run("malformed json is a validation error", func(t *testing.T) {
		engine := &stubEngine{}
		err := NewEntryEventHandler(engine)(context.Background(), amqp.Delivery{Body: []byte("{")})

		assert.True(t, domain.IsValidation(err))
		assert.Empty(t, engine.got)
	})

	t.Run("non-positive amount never reaches the engine", func(t *testing.T) {
		engine := &stubEngine{}
		err := NewEntryEventHandler(engine)(context.Background(), amqp.Delivery{Body: entryBody(t, "0")})

		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Empty(t, engine.got)
	})

	t.Run("engine failure propagates", func(t *testing.T) {
		engine := &stubEngine{err: errors.New("db down")}
		err := NewEntryEventHandler(engine)(context.Background(), amqp.Delivery{Body: entryBody(t, "1")})

		assert.EqualError(t, err, "db down")
	})
}

func TestMarkConsolidatedEventHandler(t *testing.T) {
	marker := &stubMarker{}
	h := NewMarkConsolidatedEventHandler(marker)

	body, err := json.Marshal(domain.NewMarkConsolidatedEvent([]string{"a", "b"}))
	require.NoError(t, err)

	require.NoError(t, h(context.Background(), amqp.Delivery{Body: body}))
	require.Len(t, marker.got, 1)
	assert.Equal(t, []string{"a", "b"}, marker.got[0].EntryIDs)

	err = h(context.Background(), amqp.Delivery{Body: []byte("not json")})
	assert.True(t, domain.IsValidation(err))
}
