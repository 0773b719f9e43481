//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"soposyncd/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_ledger.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM synced_items")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM sync_done")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func entryAt(id string, createdAt time.Time) domain.Entry {
	return domain.Entry{
		UniqueID:  id,
		Title:     "entry " + id,
		Link:      "https://example.com/" + id,
		CreatedAt: createdAt,
	}
}

func (s *PostgresIntegrationSuite) TestInitialSync_MarkAndCheck() {
	store := NewLedgerStore(s.db)

	done, err := store.HasInitialSync(s.ctx, "photos", "source")
	s.NoError(err)
	s.False(done)

	err = store.MarkInitialSyncDone(s.ctx, "photos", "source")
	s.NoError(err)

	done, err = store.HasInitialSync(s.ctx, "photos", "source")
	s.NoError(err)
	s.True(done)

	// Other pairs are unaffected.
	done, err = store.HasInitialSync(s.ctx, "photos", "other")
	s.NoError(err)
	s.False(done)
	done, err = store.HasInitialSync(s.ctx, "links", "source")
	s.NoError(err)
	s.False(done)
}

func (s *PostgresIntegrationSuite) TestMarkInitialSyncDone_Idempotent() {
	store := NewLedgerStore(s.db)

	s.NoError(store.MarkInitialSyncDone(s.ctx, "photos", "source"))
	s.NoError(store.MarkInitialSyncDone(s.ctx, "photos", "source"))

	var count int
	err := s.db.GetContext(s.ctx, &count,
		"SELECT COUNT(*) FROM sync_done WHERE workflow = $1 AND connector = $2",
		"photos", "source")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestRecordProcessed_ReplacesOnRepeat() {
	store := NewLedgerStore(s.db)
	now := time.Now().UTC().Truncate(time.Second)

	entry := entryAt("42", now.Add(-2*time.Hour))

	s.NoError(store.RecordProcessed(s.ctx, "photos", "source", entry, now.Add(-time.Hour)))

	// Re-processing the same entry replaces the row.
	entry.CreatedAt = now.Add(-90 * time.Minute)
	s.NoError(store.RecordProcessed(s.ctx, "photos", "source", entry, now))

	var count int
	err := s.db.GetContext(s.ctx, &count,
		"SELECT COUNT(*) FROM synced_items WHERE workflow = $1 AND connector = $2 AND entry_id = $3",
		"photos", "source", "42")
	s.NoError(err)
	s.Equal(1, count)

	var createdAt, syncedAt int64
	row := s.db.QueryRowContext(s.ctx,
		"SELECT created_at, synced_at FROM synced_items WHERE workflow = $1 AND connector = $2 AND entry_id = $3",
		"photos", "source", "42")
	s.NoError(row.Scan(&createdAt, &syncedAt))
	s.Equal(entry.CreatedAt.Unix(), createdAt)
	s.Equal(now.Unix(), syncedAt)
}

func (s *PostgresIntegrationSuite) TestIsProcessed() {
	store := NewLedgerStore(s.db)
	now := time.Now().UTC()

	s.NoError(store.RecordProcessed(s.ctx, "photos", "source", entryAt("1", now), now))

	processed, err := store.IsProcessed(s.ctx, "photos", "source", "1")
	s.NoError(err)
	s.True(processed)

	processed, err = store.IsProcessed(s.ctx, "photos", "source", "2")
	s.NoError(err)
	s.False(processed)

	// Scoped by the full key, not just the entry id.
	processed, err = store.IsProcessed(s.ctx, "links", "source", "1")
	s.NoError(err)
	s.False(processed)
}

func (s *PostgresIntegrationSuite) TestLatestProcessedCreatedAt() {
	store := NewLedgerStore(s.db)
	now := time.Now().UTC().Truncate(time.Second)

	_, ok, err := store.LatestProcessedCreatedAt(s.ctx, "photos", "source")
	s.NoError(err)
	s.False(ok)

	s.NoError(store.RecordProcessed(s.ctx, "photos", "source", entryAt("1", now.Add(-3*time.Hour)), now))
	s.NoError(store.RecordProcessed(s.ctx, "photos", "source", entryAt("2", now.Add(-1*time.Hour)), now))
	s.NoError(store.RecordProcessed(s.ctx, "photos", "source", entryAt("3", now.Add(-2*time.Hour)), now))

	latest, ok, err := store.LatestProcessedCreatedAt(s.ctx, "photos", "source")
	s.NoError(err)
	s.True(ok)
	s.Equal(now.Add(-1*time.Hour), latest)
}

func (s *PostgresIntegrationSuite) TestTimestampsRoundTripAsEpochSeconds() {
	store := NewLedgerStore(s.db)

	// Sub-second precision is dropped by the epoch-second schema.
	createdAt := time.Date(2020, 1, 15, 10, 30, 45, 123456789, time.UTC)
	now := time.Now().UTC()

	s.NoError(store.RecordProcessed(s.ctx, "photos", "source", entryAt("1", createdAt), now))

	latest, ok, err := store.LatestProcessedCreatedAt(s.ctx, "photos", "source")
	s.NoError(err)
	s.True(ok)
	s.Equal(createdAt.Truncate(time.Second), latest)
}

func (s *PostgresIntegrationSuite) TestTransaction_CommitPersistsLedgerWrites() {
	store := NewLedgerStore(s.db)
	tm := NewTransactionManager(s.db)
	now := time.Now().UTC()

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := store.RecordProcessed(ctx, "photos", "source", entryAt("1", now), now); err != nil {
			return err
		}
		return store.MarkInitialSyncDone(ctx, "photos", "source")
	})
	s.NoError(err)

	processed, err := store.IsProcessed(s.ctx, "photos", "source", "1")
	s.NoError(err)
	s.True(processed)

	done, err := store.HasInitialSync(s.ctx, "photos", "source")
	s.NoError(err)
	s.True(done)
}

func (s *PostgresIntegrationSuite) TestTransaction_RollbackLeavesLedgerUntouched() {
	store := NewLedgerStore(s.db)
	tm := NewTransactionManager(s.db)
	now := time.Now().UTC()

	s.NoError(store.RecordProcessed(s.ctx, "photos", "source", entryAt("kept", now), now))

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := store.RecordProcessed(ctx, "photos", "source", entryAt("dropped", now), now); err != nil {
			return err
		}
		return errors.New("boom")
	})
	s.Error(err)

	processed, err := store.IsProcessed(s.ctx, "photos", "source", "dropped")
	s.NoError(err)
	s.False(processed)

	processed, err = store.IsProcessed(s.ctx, "photos", "source", "kept")
	s.NoError(err)
	s.True(processed)
}

func (s *PostgresIntegrationSuite) TestStorageErrorClassification() {
	badDB, err := sqlx.Open("postgres", "host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable")
	s.Require().NoError(err)
	defer badDB.Close()

	store := NewLedgerStore(badDB)
	_, err = store.HasInitialSync(s.ctx, "photos", "source")
	s.Error(err)
	s.ErrorIs(err, domain.ErrStorage)
}
