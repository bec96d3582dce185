package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// ErrDeliveriesClosed means the broker closed the delivery channel.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Handler processes one delivery. A nil return acks the message; any error
// rejects it without requeue.
type Handler func(ctx context.Context, d amqp.Delivery) error

type ConsumerConfig struct {
	Queue    string
	Prefetch int
	// Tag identifies the consumer on the broker; empty lets the broker pick.
	Tag string
}

// Consumer reads a durable queue with manual acknowledgement.
type Consumer struct {
	opener  ChannelOpener
	cfg     ConsumerConfig
	handler Handler
	logger  zerolog.Logger
}

func NewConsumer(opener ChannelOpener, cfg ConsumerConfig, handler Handler, logger zerolog.Logger) *Consumer {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}
	return &Consumer{
		opener:  opener,
		cfg:     cfg,
		handler: handler,
		logger:  logger.With().Str("component", "rabbitmq_consumer").Str("queue", cfg.Queue).Logger(),
	}
}

// Start consumes until ctx is cancelled, resubscribing with backoff whenever
// the channel or connection drops.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().Int("prefetch", c.cfg.Prefetch).Msg("consumer started")

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	b.MaxInterval = 30 * time.Second

	for {
		err := c.Run(ctx)
		if ctx.Err() != nil {
			c.logger.Info().Msg("consumer shutting down")
			return nil
		}

		wait := b.NextBackOff()
		c.logger.Error().Err(err).Dur("retry_in", wait).Msg("consumer stopped, resubscribing")

		select {
		case <-ctx.Done():
			c.logger.Info().Msg("consumer shutting down")
			return nil
		case <-time.After(wait):
		}
	}
}

// Run subscribes once and handles deliveries until ctx is cancelled or the
// delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.opener.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := declareQueue(ch, c.cfg.Queue); err != nil {
		return err
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(c.cfg.Queue, c.cfg.Tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.cfg.Queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	log := c.logger.With().Uint64("delivery_tag", d.DeliveryTag).Str("message_id", d.MessageId).Logger()

	if err := c.handler(ctx, d); err != nil {
		log.Error().Err(err).Msg("message rejected")
		if rerr := d.Reject(false); rerr != nil {
			log.Error().Err(rerr).Msg("failed to reject message")
		}
		return
	}

	if err := d.Ack(false); err != nil {
		log.Error().Err(err).Msg("failed to ack message")
	}
}
