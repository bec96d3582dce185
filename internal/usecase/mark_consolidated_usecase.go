package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/domain"
)

// MarkConsolidatedUseCase flags ledger entries once the consolidation
// service has folded them in.
type MarkConsolidatedUseCase struct {
	entryRepo EntryRepository
	recorder  Recorder
	logger    zerolog.Logger
}

// NewMarkConsolidatedUseCase creates a new MarkConsolidatedUseCase.
func NewMarkConsolidatedUseCase(entryRepo EntryRepository, recorder Recorder, logger zerolog.Logger) *MarkConsolidatedUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &MarkConsolidatedUseCase{
		entryRepo: entryRepo,
		recorder:  recorder,
		logger:    logger.With().Str("component", "mark_consolidated").Logger(),
	}
}

// Handle applies one batched event with a single bulk update. A mismatch
// between requested and matched ids is only logged; the flag is what
// reconciliation relies on.
func (uc *MarkConsolidatedUseCase) Handle(ctx context.Context, event domain.MarkConsolidatedEvent) (int64, error) {
	ids := uniqueIDs(event.EntryIDs)
	if len(ids) == 0 {
		uc.logger.Warn().Time("processed_at", event.ProcessedAt).Msg("mark-consolidated event without entry ids")
		return 0, nil
	}

	matched, err := uc.entryRepo.MarkConsolidated(ctx, ids)
	if err != nil {
		return 0, err
	}

	uc.recorder.EntriesMarkedConsolidated(len(ids), matched)

	if matched != int64(len(ids)) {
		uc.logger.Warn().
			Int("requested", len(ids)).
			Int64("matched", matched).
			Msg("mark-consolidated count mismatch")
	} else {
		uc.logger.Info().Int("count", len(ids)).Msg("entries marked consolidated")
	}

	return matched, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
