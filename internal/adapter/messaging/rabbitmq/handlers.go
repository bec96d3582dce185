package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iho/cashflow/internal/domain"
)

// EntryConsumer folds one entry into its aggregate.
type EntryConsumer interface {
	Consume(ctx context.Context, entry *domain.LedgerEntry) (bool, error)
}

// MarkConsolidatedHandler flags entries as consolidated on the ledger side.
type MarkConsolidatedHandler interface {
	Handle(ctx context.Context, event domain.MarkConsolidatedEvent) (int64, error)
}

// NewEntryEventHandler decodes entry events and hands them to the engine.
// Malformed payloads fail validation and are dead-lettered like any other
// invalid entry.
func NewEntryEventHandler(engine EntryConsumer) Handler {
	return func(ctx context.Context, d amqp.Delivery) error {
		var event domain.EntryEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			return fmt.Errorf("%w: decode entry event: %v", domain.ErrValidation, err)
		}

		entry, err := event.ToEntry()
		if err != nil {
			return err
		}

		_, err = engine.Consume(ctx, entry)
		return err
	}
}

// NewMarkConsolidatedEventHandler decodes batched id lists for the ledger.
func NewMarkConsolidatedEventHandler(h MarkConsolidatedHandler) Handler {
	return func(ctx context.Context, d amqp.Delivery) error {
		var event domain.MarkConsolidatedEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			return fmt.Errorf("%w: decode mark-consolidated event: %v", domain.ErrValidation, err)
		}

		_, err := h.Handle(ctx, event)
		return err
	}
}
