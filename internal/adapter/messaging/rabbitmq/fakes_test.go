package rabbitmq

import (
	"context"
	"errors"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	mu         sync.Mutex
	failFirst  int
	published  []amqp.Publishing
	queues     []string
	prefetch   int
	deliveries chan amqp.Delivery
	closed     int
}

func (c *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !durable {
		return amqp.Queue{}, errors.New("queue must be durable")
	}
	c.queues = append(c.queues, name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failFirst > 0 {
		c.failFirst--
		return amqp.ErrClosed
	}
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Qos(prefetchCount, _ int, _ bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefetch = prefetchCount
	return nil
}

func (c *fakeChannel) Consume(_, _ string, autoAck, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	if autoAck {
		return nil, errors.New("auto ack not allowed")
	}
	return c.deliveries, nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeChannel) Published() []amqp.Publishing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]amqp.Publishing(nil), c.published...)
}

type fakeOpener struct {
	ch  *fakeChannel
	err error
}

func (o *fakeOpener) Channel() (Channel, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.ch, nil
}

type fakeAcknowledger struct {
	mu       sync.Mutex
	acked    []uint64
	rejected []uint64
	requeued bool
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	return a.Reject(tag, requeue)
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rejected = append(a.rejected, tag)
	a.requeued = a.requeued || requeue
	return nil
}

func (a *fakeAcknowledger) snapshot() (acked, rejected []uint64, requeued bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]uint64(nil), a.acked...), append([]uint64(nil), a.rejected...), a.requeued
}
