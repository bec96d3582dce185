package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/postgres/generated"
	"github.com/iho/cashflow/internal/usecase"
)

// ConsolidationRepository implements usecase.ConsolidationRepository.
type ConsolidationRepository struct {
	queries *generated.Queries
}

// NewConsolidationRepository creates a new ConsolidationRepository. db is
// usually a *pgxpool.Pool.
func NewConsolidationRepository(db generated.DBTX) *ConsolidationRepository {
	return &ConsolidationRepository{
		queries: generated.New(db),
	}
}

// GetOrCreateForUpdate locks the (merchant, date) row for the rest of tx.
// A missing row is inserted with ON CONFLICT DO NOTHING and then selected,
// so concurrent creators converge on the same row.
func (r *ConsolidationRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, key domain.ConsolidationKey) (*domain.DailyConsolidation, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}
	queries := generated.New(pgxTx)

	params := generated.GetConsolidationForUpdateParams{
		Merchant: key.Merchant,
		Date:     dateToPgDate(key.Date),
	}

	row, err := queries.GetConsolidationForUpdate(ctx, params)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = queries.CreateConsolidationIfMissing(ctx, generated.CreateConsolidationIfMissingParams{
			Merchant:      key.Merchant,
			Date:          params.Date,
			LastUpdatedAt: timeToPgTimestamptz(time.Now().UTC()),
		})
		if err != nil {
			return nil, err
		}

		row, err = queries.GetConsolidationForUpdate(ctx, params)
	}
	if err != nil {
		return nil, err
	}

	return rowToConsolidation(row), nil
}

// Update writes the totals of a locked consolidation.
func (r *ConsolidationRepository) Update(ctx context.Context, tx usecase.Transaction, c *domain.DailyConsolidation) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	affected, err := generated.New(pgxTx).UpdateConsolidationTotals(ctx, generated.UpdateConsolidationTotalsParams{
		ID:            c.ID,
		TotalCredits:  decimalToNumeric(c.TotalCredits),
		TotalDebits:   decimalToNumeric(c.TotalDebits),
		CreditCount:   c.CreditCount,
		DebitCount:    c.DebitCount,
		LastUpdatedAt: timeToPgTimestamptz(c.LastUpdatedAt),
	})
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrConsolidationNotFound
	}

	return nil
}

// Get retrieves a consolidation by its natural key.
func (r *ConsolidationRepository) Get(ctx context.Context, key domain.ConsolidationKey) (*domain.DailyConsolidation, error) {
	row, err := r.queries.GetConsolidation(ctx, generated.GetConsolidationParams{
		Merchant: key.Merchant,
		Date:     dateToPgDate(key.Date),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConsolidationNotFound
		}

		return nil, err
	}

	return rowToConsolidation(row), nil
}

// List returns consolidations of the period ordered by date, then merchant.
func (r *ConsolidationRepository) List(ctx context.Context, filter usecase.ConsolidationFilter) ([]*domain.DailyConsolidation, error) {
	rows, err := r.queries.ListConsolidations(ctx, generated.ListConsolidationsParams{
		StartDate: dateToPgDate(filter.Period.Start),
		EndDate:   dateToPgDate(filter.Period.End),
		Merchant:  filter.Merchant,
	})
	if err != nil {
		return nil, err
	}

	consolidations := make([]*domain.DailyConsolidation, 0, len(rows))
	for _, row := range rows {
		consolidations = append(consolidations, rowToConsolidation(row))
	}

	return consolidations, nil
}

// Delete removes consolidations of the period.
func (r *ConsolidationRepository) Delete(ctx context.Context, filter usecase.ConsolidationFilter) (int64, error) {
	return r.queries.DeleteConsolidations(ctx, generated.DeleteConsolidationsParams{
		StartDate: dateToPgDate(filter.Period.Start),
		EndDate:   dateToPgDate(filter.Period.End),
		Merchant:  filter.Merchant,
	})
}

func rowToConsolidation(row generated.DailyConsolidation) *domain.DailyConsolidation {
	return &domain.DailyConsolidation{
		ID:            row.ID,
		Merchant:      row.Merchant,
		Date:          pgDateToDate(row.Date),
		TotalCredits:  numericToDecimal(row.TotalCredits),
		TotalDebits:   numericToDecimal(row.TotalDebits),
		CreditCount:   row.CreditCount,
		DebitCount:    row.DebitCount,
		LastUpdatedAt: row.LastUpdatedAt.Time,
	}
}
