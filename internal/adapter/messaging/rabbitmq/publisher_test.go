package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/domain"
)

type recordedAttempt struct {
	queue string
	err   error
}

type attemptRecorder struct {
	mu       sync.Mutex
	attempts []recordedAttempt
}

func (r *attemptRecorder) PublishAttempted(queue string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, recordedAttempt{queue: queue, err: err})
}

func fastConfig() PublisherConfig {
	return PublisherConfig{BackoffBase: time.Millisecond}
}

func TestPublisher_PublishEntry(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(&fakeOpener{ch: ch}, fastConfig(), zerolog.Nop())

	event := domain.EntryEvent{
		ID:         "01HENTRY",
		Merchant:   "ACME",
		Amount:     decimal.RequireFromString("12.34"),
		Kind:       "credit",
		Date:       domain.MustDate(2024, time.January, 1),
		RecordedAt: time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.PublishEntry(context.Background(), event))

	published := ch.Published()
	require.Len(t, published, 1)
	msg := published[0]
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.NotEmpty(t, msg.MessageId)
	assert.Equal(t, []string{DefaultEntryQueue}, ch.queues)

	var decoded domain.EntryEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "01HENTRY", decoded.ID)
	assert.True(t, decoded.Amount.Equal(event.Amount))
	assert.Equal(t, 1, ch.closed)
}

func TestPublisher_PublishMarkConsolidatedUsesItsQueue(t *testing.T) {
	ch := &fakeChannel{}
	cfg := fastConfig()
	cfg.MarkConsolidatedQueue = "marks"
	p := NewPublisher(&fakeOpener{ch: ch}, cfg, zerolog.Nop())

	err := p.PublishMarkConsolidated(context.Background(), domain.NewMarkConsolidatedEvent([]string{"a", "b"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"marks"}, ch.queues)
	var decoded domain.MarkConsolidatedEvent
	require.NoError(t, json.Unmarshal(ch.Published()[0].Body, &decoded))
	assert.Equal(t, []string{"a", "b"}, decoded.EntryIDs)
}

func TestPublisher_RetriesTransientFailures(t *testing.T) {
	ch := &fakeChannel{failFirst: 2}
	rec := &attemptRecorder{}
	p := NewPublisher(&fakeOpener{ch: ch}, fastConfig(), zerolog.Nop(), WithPublishRecorder(rec))

	err := p.PublishMarkConsolidated(context.Background(), domain.NewMarkConsolidatedEvent([]string{"a"}))
	require.NoError(t, err)

	assert.Len(t, ch.Published(), 1)
	require.Len(t, rec.attempts, 3)
	assert.Error(t, rec.attempts[0].err)
	assert.Error(t, rec.attempts[1].err)
	assert.NoError(t, rec.attempts[2].err)
}

func TestPublisher_GivesUpAfterMaxAttempts(t *testing.T) {
	ch := &fakeChannel{failFirst: 10}
	rec := &attemptRecorder{}
	p := NewPublisher(&fakeOpener{ch: ch}, fastConfig(), zerolog.Nop(), WithPublishRecorder(rec))

	err := p.PublishMarkConsolidated(context.Background(), domain.NewMarkConsolidatedEvent([]string{"a"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPublishFailed)
	assert.Len(t, rec.attempts, DefaultMaxAttempts)
	assert.Empty(t, ch.Published())
}

func TestPublisher_ChannelUnavailable(t *testing.T) {
	p := NewPublisher(&fakeOpener{err: errors.New("connection refused")}, fastConfig(), zerolog.Nop())

	err := p.PublishEntry(context.Background(), domain.EntryEvent{ID: "x"})
	assert.ErrorIs(t, err, domain.ErrPublishFailed)
}

func TestPublisher_BackoffDoublesFromBase(t *testing.T) {
	p := NewPublisher(&fakeOpener{ch: &fakeChannel{}}, PublisherConfig{BackoffBase: time.Second}, zerolog.Nop())

	b := p.newBackOff(context.Background())
	assert.Equal(t, 2*time.Second, b.NextBackOff())
	assert.Equal(t, 4*time.Second, b.NextBackOff())
	assert.Equal(t, time.Duration(-1), b.NextBackOff())
}
