package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createConsolidationIfMissing = `-- name: CreateConsolidationIfMissing :execrows
INSERT INTO daily_consolidations (merchant, date, total_credits, total_debits, credit_count, debit_count, last_updated_at)
VALUES ($1, $2, 0, 0, 0, 0, $3)
ON CONFLICT (merchant, date) DO NOTHING
`

type CreateConsolidationIfMissingParams struct {
	Merchant      string             `json:"merchant"`
	Date          pgtype.Date        `json:"date"`
	LastUpdatedAt pgtype.Timestamptz `json:"last_updated_at"`
}

func (q *Queries) CreateConsolidationIfMissing(ctx context.Context, arg CreateConsolidationIfMissingParams) (int64, error) {
	result, err := q.db.Exec(ctx, createConsolidationIfMissing, arg.Merchant, arg.Date, arg.LastUpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteConsolidations = `-- name: DeleteConsolidations :execrows
DELETE FROM daily_consolidations
WHERE date BETWEEN $1 AND $2
  AND ($3::text = '' OR merchant = $3)
`

type DeleteConsolidationsParams struct {
	StartDate pgtype.Date `json:"start_date"`
	EndDate   pgtype.Date `json:"end_date"`
	Merchant  string      `json:"merchant"`
}

func (q *Queries) DeleteConsolidations(ctx context.Context, arg DeleteConsolidationsParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteConsolidations, arg.StartDate, arg.EndDate, arg.Merchant)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getConsolidation = `-- name: GetConsolidation :one
SELECT id, merchant, date, total_credits, total_debits, credit_count, debit_count, last_updated_at FROM daily_consolidations
WHERE merchant = $1 AND date = $2
`

type GetConsolidationParams struct {
	Merchant string      `json:"merchant"`
	Date     pgtype.Date `json:"date"`
}

func (q *Queries) GetConsolidation(ctx context.Context, arg GetConsolidationParams) (DailyConsolidation, error) {
	row := q.db.QueryRow(ctx, getConsolidation, arg.Merchant, arg.Date)
	var i DailyConsolidation
	err := row.Scan(
		&i.ID,
		&i.Merchant,
		&i.Date,
		&i.TotalCredits,
		&i.TotalDebits,
		&i.CreditCount,
		&i.DebitCount,
		&i.LastUpdatedAt,
	)
	return i, err
}

const getConsolidationForUpdate = `-- name: GetConsolidationForUpdate :one
SELECT id, merchant, date, total_credits, total_debits, credit_count, debit_count, last_updated_at FROM daily_consolidations
WHERE merchant = $1 AND date = $2
FOR UPDATE
`

type GetConsolidationForUpdateParams struct {
	Merchant string      `json:"merchant"`
	Date     pgtype.Date `json:"date"`
}

func (q *Queries) GetConsolidationForUpdate(ctx context.Context, arg GetConsolidationForUpdateParams) (DailyConsolidation, error) {
	row := q.db.QueryRow(ctx, getConsolidationForUpdate, arg.Merchant, arg.Date)
	var i DailyConsolidation
	err := row.Scan(
		&i.ID,
		&i.Merchant,
		&i.Date,
		&i.TotalCredits,
		&i.TotalDebits,
		&i.CreditCount,
		&i.DebitCount,
		&i.LastUpdatedAt,
	)
	return i, err
}

const listConsolidations = `-- name: ListConsolidations :many
SELECT id, merchant, date, total_credits, total_debits, credit_count, debit_count, last_updated_at FROM daily_consolidations
WHERE date BETWEEN $1 AND $2
  AND ($3::text = '' OR merchant = $3)
ORDER BY date, merchant
`

type ListConsolidationsParams struct {
	StartDate pgtype.Date `json:"start_date"`
	EndDate   pgtype.Date `json:"end_date"`
	Merchant  string      `json:"merchant"`
}

func (q *Queries) ListConsolidations(ctx context.Context, arg ListConsolidationsParams) ([]DailyConsolidation, error) {
	rows, err := q.db.Query(ctx, listConsolidations, arg.StartDate, arg.EndDate, arg.Merchant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DailyConsolidation
	for rows.Next() {
		var i DailyConsolidation
		if err := rows.Scan(
			&i.ID,
			&i.Merchant,
			&i.Date,
			&i.TotalCredits,
			&i.TotalDebits,
			&i.CreditCount,
			&i.DebitCount,
			&i.LastUpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateConsolidationTotals = `-- name: UpdateConsolidationTotals :execrows
UPDATE daily_consolidations
SET total_credits = $2, total_debits = $3, credit_count = $4, debit_count = $5, last_updated_at = $6
WHERE id = $1
`

type UpdateConsolidationTotalsParams struct {
	ID            int64              `json:"id"`
	TotalCredits  pgtype.Numeric     `json:"total_credits"`
	TotalDebits   pgtype.Numeric     `json:"total_debits"`
	CreditCount   int64              `json:"credit_count"`
	DebitCount    int64              `json:"debit_count"`
	LastUpdatedAt pgtype.Timestamptz `json:"last_updated_at"`
}

func (q *Queries) UpdateConsolidationTotals(ctx context.Context, arg UpdateConsolidationTotalsParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateConsolidationTotals,
		arg.ID,
		arg.TotalCredits,
		arg.TotalDebits,
		arg.CreditCount,
		arg.DebitCount,
		arg.LastUpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
