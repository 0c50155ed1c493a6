package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/venlock/payments-engine/internal/config"
	"github.com/venlock/payments-engine/internal/engine"
	"github.com/venlock/payments-engine/internal/ingest"
	"github.com/venlock/payments-engine/internal/ledger"
	"github.com/venlock/payments-engine/internal/logging"
	"github.com/venlock/payments-engine/internal/report"
	"github.com/venlock/payments-engine/internal/txlog"
	"github.com/venlock/payments-engine/pkg/audit"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transactions.csv>\n", os.Args[0])
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init("payengine", cfg.LogLevel, cfg.AppEnv).With("run_id", uuid.NewString())

	if err := run(context.Background(), cfg, logger, os.Args[1], os.Stdout); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, inputPath string, out io.Writer) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer input.Close()

	stream, err := ingest.NewReader(input)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	store, closeStore, err := openTransactionLog(cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer closeStore()

	journal, closeJournal, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer closeJournal()

	led := ledger.New()
	runner := engine.NewRunner(engine.NewProcessor(led, store), journal, logger)

	stats, err := runner.Run(ctx, stream)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	logger.Info("run complete",
		"processed", stats.Processed,
		"applied", stats.Applied,
		"rejected", stats.Rejected,
		"accounts", led.Len(),
	)

	if err := report.Write(out, led.Snapshot()); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func openTransactionLog(cfg *config.Config) (engine.TransactionLog, func(), error) {
	if cfg.TxLogDBPath == "" {
		return txlog.NewMemoryStore(), func() {}, nil
	}

	store, err := txlog.NewSQLiteStore(cfg.TxLogDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("openTransactionLog: %w", err)
	}
	return store, func() { store.Close() }, nil
}

func openJournal(cfg *config.Config) (*audit.Journal, func(), error) {
	if cfg.AuditLogPath == "" {
		return nil, func() {}, nil
	}

	f, err := os.Create(cfg.AuditLogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("openJournal: %w", err)
	}
	return audit.NewJournal(f), func() { f.Close() }, nil
}
