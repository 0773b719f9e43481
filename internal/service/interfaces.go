package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"soposyncd/internal/domain"
)

// Ledger is the durable record of sync progress. It is the sole source of
// truth for "already handled"; external services are never consulted.
type Ledger interface {
	HasInitialSync(ctx context.Context, workflow, connector string) (bool, error)
	MarkInitialSyncDone(ctx context.Context, workflow, connector string) error
	LatestProcessedCreatedAt(ctx context.Context, workflow, connector string) (time.Time, bool, error)
	IsProcessed(ctx context.Context, workflow, connector, entryID string) (bool, error)
	RecordProcessed(ctx context.Context, workflow, connector string, entry domain.Entry, processedAt time.Time) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
