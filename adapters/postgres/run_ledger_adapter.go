package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"golehmer/domain/core"
	"golehmer/ports"
)

// RunLedgerAdapter implements RunLedgerPort for PostgreSQL
type RunLedgerAdapter struct {
	db *sqlx.DB
}

// Open connects to the ledger database
func Open(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("connecting to ledger database: %w", err)
	}
	return db, nil
}

// NewRunLedgerAdapter creates a new PostgreSQL run ledger
func NewRunLedgerAdapter(db *sqlx.DB) *RunLedgerAdapter {
	return &RunLedgerAdapter{db: db}
}

// EnsureSchema creates the runs table if it does not exist
func (a *RunLedgerAdapter) EnsureSchema(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS generator_runs (
			id            UUID PRIMARY KEY,
			modulus       BIGINT NOT NULL,
			multiplier    BIGINT NOT NULL,
			seed          BIGINT NOT NULL,
			stream_count  INTEGER NOT NULL,
			policy        TEXT NOT NULL,
			jump_exp      INTEGER NOT NULL,
			stream_index  INTEGER NOT NULL DEFAULT 0,
			advance_count BIGINT NOT NULL DEFAULT 0,
			last_value    BIGINT NOT NULL DEFAULT 0,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating generator_runs table: %w", err)
	}
	return nil
}

// SaveRun inserts or updates a run record
func (a *RunLedgerAdapter) SaveRun(ctx context.Context, record ports.RunRecord) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO generator_runs
			(id, modulus, multiplier, seed, stream_count, policy, jump_exp,
			 stream_index, advance_count, last_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			stream_index  = EXCLUDED.stream_index,
			advance_count = EXCLUDED.advance_count,
			last_value    = EXCLUDED.last_value,
			updated_at    = EXCLUDED.updated_at
	`, record.ID, record.Modulus, record.Multiplier, record.Seed,
		record.StreamCount, record.Policy, record.JumpExp,
		record.StreamIndex, record.AdvanceCount, record.LastValue,
		record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", record.ID, err)
	}
	return nil
}

// GetRun retrieves a run record by ID
func (a *RunLedgerAdapter) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	var record ports.RunRecord
	err := a.db.GetContext(ctx, &record, `
		SELECT id, modulus, multiplier, seed, stream_count, policy, jump_exp,
		       stream_index, advance_count, last_value, created_at, updated_at
		FROM generator_runs
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewRunNotFoundError(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}
	return &record, nil
}

// ListRuns returns the most recently updated records, newest first
func (a *RunLedgerAdapter) ListRuns(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	if limit < 1 {
		limit = 50
	}
	var records []ports.RunRecord
	err := a.db.SelectContext(ctx, &records, `
		SELECT id, modulus, multiplier, seed, stream_count, policy, jump_exp,
		       stream_index, advance_count, last_value, created_at, updated_at
		FROM generator_runs
		ORDER BY updated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return records, nil
}

// Ensure RunLedgerAdapter implements RunLedgerPort
var _ ports.RunLedgerPort = (*RunLedgerAdapter)(nil)
