package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"soposyncd/internal/config"
	"soposyncd/internal/connector"
	amqpconn "soposyncd/internal/connector/amqp"
	"soposyncd/internal/connector/console"
	"soposyncd/internal/connector/photofeed"
	"soposyncd/internal/service"
	"soposyncd/internal/storage/postgres"
)

var (
	configPath string
	maxGapDays int
)

var rootCmd = &cobra.Command{
	Use:   "soposyncd",
	Short: "One-way social media cross-posting sync daemon",
	Long: `soposyncd polls configured source connectors for new content entries
and republishes each new entry to the configured target connectors,
guaranteeing every entry is pushed to each target at most once.

Run "init" once per workflow to seed the ledger without posting, then
"sync" (or "run" for a periodic loop) to publish new entries.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().IntVar(&maxGapDays, "max-gap", 0, "assumed maximum gap between sync runs in days (overrides config)")
	rootCmd.AddCommand(initCmd, syncCmd, runCmd)
}

// app bundles the wiring shared by all subcommands.
type app struct {
	cfg    *config.Config
	db     *sqlx.DB
	engine *service.Engine
	logger *slog.Logger
}

func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if maxGapDays > 0 {
		cfg.Sync.MaxGapDays = maxGapDays
	}

	logger := setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database")

	registry := connector.Registry{
		"console":   func() connector.Connector { return console.New() },
		"photofeed": func() connector.Connector { return photofeed.New(logger) },
		"amqp":      func() connector.Connector { return amqpconn.New(logger) },
	}

	ledger := postgres.NewLedgerStore(db)
	txManager := postgres.NewTransactionManager(db)

	engine := service.NewEngine(
		cfg.Definitions(),
		registry,
		ledger,
		txManager,
		logger,
		cfg.Sync,
	)

	return &app{
		cfg:    cfg,
		db:     db,
		engine: engine,
		logger: logger,
	}, nil
}

func (a *app) close() {
	a.db.Close()
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
