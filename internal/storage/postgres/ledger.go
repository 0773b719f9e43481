package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"soposyncd/internal/domain"
)

// LedgerStore is the durable bookkeeping behind the sync engine: which
// (workflow, connector) pairs completed an initial sync, and which entries
// were already processed. Timestamps are stored as Unix epoch seconds.
//
// All operations honour a transaction installed by TransactionManager on
// the context, falling back to the plain connection otherwise.
type LedgerStore struct {
	db *sqlx.DB
}

func NewLedgerStore(db *sqlx.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) HasInitialSync(ctx context.Context, workflow, connector string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM sync_done WHERE workflow = $1 AND connector = $2)`

	var exists bool
	err := sqlx.GetContext(ctx, getExecutor(ctx, s.db), &exists, query, workflow, connector)
	if err != nil {
		return false, fmt.Errorf("query sync_done: %w: %v", domain.ErrStorage, err)
	}
	return exists, nil
}

// MarkInitialSyncDone is idempotent; repeating it leaves a single row.
func (s *LedgerStore) MarkInitialSyncDone(ctx context.Context, workflow, connector string) error {
	query := `
		INSERT INTO sync_done (workflow, connector)
		VALUES ($1, $2)
		ON CONFLICT (workflow, connector) DO NOTHING`

	_, err := getExecutor(ctx, s.db).ExecContext(ctx, query, workflow, connector)
	if err != nil {
		return fmt.Errorf("insert sync_done: %w: %v", domain.ErrStorage, err)
	}
	return nil
}

// LatestProcessedCreatedAt returns the maximum entry creation time recorded
// for the pair, with false when no entry was ever recorded.
func (s *LedgerStore) LatestProcessedCreatedAt(ctx context.Context, workflow, connector string) (time.Time, bool, error) {
	query := `
		SELECT created_at FROM synced_items
		WHERE workflow = $1 AND connector = $2
		ORDER BY created_at DESC
		LIMIT 1`

	var createdAt int64
	err := sqlx.GetContext(ctx, getExecutor(ctx, s.db), &createdAt, query, workflow, connector)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query synced_items: %w: %v", domain.ErrStorage, err)
	}

	return time.Unix(createdAt, 0).UTC(), true, nil
}

func (s *LedgerStore) IsProcessed(ctx context.Context, workflow, connector, entryID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM synced_items
			WHERE workflow = $1 AND connector = $2 AND entry_id = $3
		)`

	var exists bool
	err := sqlx.GetContext(ctx, getExecutor(ctx, s.db), &exists, query, workflow, connector, entryID)
	if err != nil {
		return false, fmt.Errorf("query synced_items: %w: %v", domain.ErrStorage, err)
	}
	return exists, nil
}

// RecordProcessed upserts the row for (workflow, connector, entry), so
// re-processing replaces rather than duplicates.
func (s *LedgerStore) RecordProcessed(ctx context.Context, workflow, connector string, entry domain.Entry, processedAt time.Time) error {
	query := `
		INSERT INTO synced_items (workflow, connector, entry_id, created_at, synced_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workflow, connector, entry_id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			synced_at = EXCLUDED.synced_at`

	_, err := getExecutor(ctx, s.db).ExecContext(ctx, query,
		workflow,
		connector,
		entry.UniqueID,
		entry.CreatedAt.Unix(),
		processedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert synced_items: %w: %v", domain.ErrStorage, err)
	}
	return nil
}
