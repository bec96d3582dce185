package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const claimProcessedEntry = `-- name: ClaimProcessedEntry :execrows
INSERT INTO processed_entries (entry_id, processed_at)
VALUES ($1, $2)
ON CONFLICT (entry_id) DO NOTHING
`

type ClaimProcessedEntryParams struct {
	EntryID     string             `json:"entry_id"`
	ProcessedAt pgtype.Timestamptz `json:"processed_at"`
}

func (q *Queries) ClaimProcessedEntry(ctx context.Context, arg ClaimProcessedEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, claimProcessedEntry, arg.EntryID, arg.ProcessedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const processedEntryExists = `-- name: ProcessedEntryExists :one
SELECT EXISTS (SELECT 1 FROM processed_entries WHERE entry_id = $1)
`

func (q *Queries) ProcessedEntryExists(ctx context.Context, entryID string) (bool, error) {
	row := q.db.QueryRow(ctx, processedEntryExists, entryID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
