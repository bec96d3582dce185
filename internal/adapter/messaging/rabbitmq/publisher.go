package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/domain"
)

const (
	DefaultEntryQueue            = "entry_events"
	DefaultMarkConsolidatedQueue = "mark_consolidated_events"
	DefaultMaxAttempts           = 3
	DefaultBackoffBase           = time.Second
)

// PublishRecorder observes every publish attempt.
type PublishRecorder interface {
	PublishAttempted(queue string, err error)
}

type PublisherConfig struct {
	EntryQueue            string
	MarkConsolidatedQueue string
	MaxAttempts           int
	// Attempt n waits 2^n * BackoffBase before retrying.
	BackoffBase time.Duration
}

// Publisher sends persistent JSON messages to durable queues and retries
// transient failures with exponential backoff.
type Publisher struct {
	opener   ChannelOpener
	cfg      PublisherConfig
	recorder PublishRecorder
	logger   zerolog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

func WithPublishRecorder(r PublishRecorder) PublisherOption {
	return func(p *Publisher) {
		p.recorder = r
	}
}

func NewPublisher(opener ChannelOpener, cfg PublisherConfig, logger zerolog.Logger, opts ...PublisherOption) *Publisher {
	if cfg.EntryQueue == "" {
		cfg.EntryQueue = DefaultEntryQueue
	}
	if cfg.MarkConsolidatedQueue == "" {
		cfg.MarkConsolidatedQueue = DefaultMarkConsolidatedQueue
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = DefaultBackoffBase
	}

	p := &Publisher{
		opener: opener,
		cfg:    cfg,
		logger: logger.With().Str("component", "rabbitmq_publisher").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishEntry sends one entry event to the entry queue.
func (p *Publisher) PublishEntry(ctx context.Context, event domain.EntryEvent) error {
	return p.publish(ctx, p.cfg.EntryQueue, event)
}

// PublishMarkConsolidated sends a batch of consolidated entry ids to the ledger.
func (p *Publisher) PublishMarkConsolidated(ctx context.Context, event domain.MarkConsolidatedEvent) error {
	return p.publish(ctx, p.cfg.MarkConsolidatedQueue, event)
}

func (p *Publisher) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * p.cfg.BackoffBase
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(1<<p.cfg.MaxAttempts) * p.cfg.BackoffBase
	b.MaxElapsedTime = 0
	b.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.cfg.MaxAttempts-1)), ctx)
}

func (p *Publisher) publish(ctx context.Context, queue string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode message for %s: %w", queue, err)
	}

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		err := p.publishOnce(ctx, queue, body)
		if p.recorder != nil {
			p.recorder.PublishAttempted(queue, err)
		}
		if err != nil {
			p.logger.Warn().
				Err(err).
				Str("queue", queue).
				Int("attempt", attempt).
				Int("max_attempts", p.cfg.MaxAttempts).
				Msg("publish attempt failed")
		}
		return err
	}, p.newBackOff(ctx))
	if err != nil {
		return fmt.Errorf("%w: queue %s after %d attempts: %v", domain.ErrPublishFailed, queue, attempt, err)
	}

	p.logger.Debug().Str("queue", queue).Int("attempt", attempt).Msg("message published")
	return nil
}

func (p *Publisher) publishOnce(ctx context.Context, queue string, body []byte) error {
	ch, err := p.opener.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := declareQueue(ch, queue); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
