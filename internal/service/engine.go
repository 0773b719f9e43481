package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"soposyncd/internal/config"
	"soposyncd/internal/connector"
	"soposyncd/internal/domain"
)

// Engine drives the two sync modes over the configured workflows.
// Workflows, entries and targets are all processed strictly sequentially;
// the first failure aborts the invocation, leaving earlier workflows'
// committed transactions in effect.
type Engine struct {
	workflows []domain.Workflow
	registry  connector.Registry
	ledger    Ledger
	txManager TransactionManager
	logger    *slog.Logger
	config    config.SyncConfig
}

func NewEngine(
	workflows []domain.Workflow,
	registry connector.Registry,
	ledger Ledger,
	txManager TransactionManager,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *Engine {
	return &Engine{
		workflows: workflows,
		registry:  registry,
		ledger:    ledger,
		txManager: txManager,
		logger:    logger,
		config:    cfg,
	}
}

// InitialSync bootstraps the ledger for every workflow: it records all
// entries found within the look-back window as processed and marks the
// initial sync done, without pushing anything to targets. Re-running it is
// safe; all writes are replace-or-ignore.
func (e *Engine) InitialSync(ctx context.Context) error {
	now := time.Now().UTC()
	horizon := now.AddDate(0, 0, -e.config.MaxGapDays)

	e.logger.Info("starting initial sync",
		"workflows", len(e.workflows),
		"horizon", horizon,
	)

	for _, wf := range e.workflows {
		if err := e.initWorkflow(ctx, wf, now, horizon); err != nil {
			return fmt.Errorf("workflow %q: %w", wf.Name, err)
		}
	}

	return nil
}

func (e *Engine) initWorkflow(ctx context.Context, wf domain.Workflow, now, horizon time.Time) error {
	logger := e.logger.With("workflow", wf.Name)
	logger.Info("seeding ledger")

	source, err := e.registry.Create(wf.Source)
	if err != nil {
		return err
	}
	defer closeConnector(source)

	entries, err := source.Entries(ctx, horizon)
	if err != nil {
		return fmt.Errorf("fetch entries: %w", err)
	}

	err = e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, entry := range entries {
			logger.Debug("recording entry", "entry_id", entry.UniqueID)
			if err := e.ledger.RecordProcessed(txCtx, wf.Name, wf.Source.Name, entry, now); err != nil {
				return err
			}
		}
		return e.ledger.MarkInitialSyncDone(txCtx, wf.Name, wf.Source.Name)
	})
	if err != nil {
		return err
	}

	logger.Info("initial sync done", "recorded", len(entries))
	return nil
}

// Sync performs one incremental pass: for every workflow it fetches entries
// created after its watermark, pushes the ones not yet in the ledger to all
// targets, and records them. Stats for workflows completed before an error
// are returned alongside the error.
func (e *Engine) Sync(ctx context.Context) ([]domain.SyncStats, error) {
	// Fail fast before touching any workflow if one lacks an initial sync.
	for _, wf := range e.workflows {
		done, err := e.ledger.HasInitialSync(ctx, wf.Name, wf.Source.Name)
		if err != nil {
			return nil, fmt.Errorf("workflow %q: %w", wf.Name, err)
		}
		if !done {
			return nil, fmt.Errorf("workflow %q source %q: %w",
				wf.Name, wf.Source.Name, domain.ErrPrecondition)
		}
	}

	now := time.Now().UTC()
	maxHorizon := now.AddDate(0, 0, -e.config.MaxGapDays)

	var all []domain.SyncStats
	for _, wf := range e.workflows {
		stats, err := e.syncWorkflow(ctx, wf, now, maxHorizon)
		if stats != nil {
			all = append(all, *stats)
		}
		if err != nil {
			return all, fmt.Errorf("workflow %q: %w", wf.Name, err)
		}
	}

	return all, nil
}

func (e *Engine) syncWorkflow(ctx context.Context, wf domain.Workflow, now, maxHorizon time.Time) (*domain.SyncStats, error) {
	startTime := time.Now()
	logger := e.logger.With("workflow", wf.Name)

	source, err := e.registry.Create(wf.Source)
	if err != nil {
		return nil, err
	}
	defer closeConnector(source)

	// Targets are instantiated fresh for every pass; no caching across runs.
	targets := make([]connector.Connector, 0, len(wf.Targets))
	defer func() {
		for _, t := range targets {
			closeConnector(t)
		}
	}()
	for _, spec := range wf.Targets {
		target, err := e.registry.Create(spec)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	stats := &domain.SyncStats{Workflow: wf.Name}

	err = e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		lastSync, ok, err := e.ledger.LatestProcessedCreatedAt(txCtx, wf.Name, wf.Source.Name)
		if err != nil {
			return err
		}

		// The watermark: bounded below by maxHorizon so a huge backlog
		// after a long outage is never replayed, and by lastSync so
		// frequent syncs never re-scan processed history.
		horizon := maxHorizon
		if ok && lastSync.After(horizon) {
			horizon = lastSync
		}

		logger.Info("syncing", "horizon", horizon)

		entries, err := source.Entries(ctx, horizon)
		if err != nil {
			return fmt.Errorf("fetch entries: %w", err)
		}
		stats.Fetched = len(entries)

		for _, entry := range entries {
			// The connector already filtered by the horizon, but connector
			// bugs and clock skew make the ledger the final word.
			processed, err := e.ledger.IsProcessed(txCtx, wf.Name, wf.Source.Name, entry.UniqueID)
			if err != nil {
				return err
			}
			if processed {
				logger.Info("skipping already processed entry", "entry_id", entry.UniqueID)
				stats.Skipped++
				continue
			}

			for _, target := range targets {
				if err := target.Push(ctx, entry); err != nil {
					return fmt.Errorf("push entry %s: %w", entry.UniqueID, err)
				}
			}

			// Record only after every target accepted the entry. A failed
			// push above leaves the entry unrecorded, so the next run
			// retries it (at-least-once per target).
			if err := e.ledger.RecordProcessed(txCtx, wf.Name, wf.Source.Name, entry, now); err != nil {
				return err
			}
			stats.Pushed++
		}

		return nil
	})

	stats.Duration = time.Since(startTime)

	logger.Info("sync completed",
		"fetched", stats.Fetched,
		"pushed", stats.Pushed,
		"skipped", stats.Skipped,
		"duration", stats.Duration,
	)

	return stats, err
}

func closeConnector(c connector.Connector) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}
