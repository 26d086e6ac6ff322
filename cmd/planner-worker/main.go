// Command planner-worker consumes ledger events from AMQP, exports them to
// the configured ledger sink and warns about categories over budget.
package main

import (
	"context"
	"errors"
	"os"

	"planner/internal/amqp"
	"planner/internal/backend"
	"planner/internal/cli"
	"planner/internal/log"
	"planner/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(log.New(log.DefaultConfig()))
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentWorker)
	logger.Info("Starting planner-worker", "export", cfg.LedgerExport)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// Categories are read for budget warnings.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	exportCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid ledger export configuration", "error", err)
		os.Exit(1)
	}
	export, err := backend.New(ctx, exportCfg, logger)
	if err != nil {
		logger.WithComponent(log.ComponentSheets).Error("Failed to initialize ledger export", "error", err)
		os.Exit(1)
	}
	if export.Cleanup != nil {
		defer export.Cleanup()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.WithComponent(log.ComponentAMQP).Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ledgerWorker := worker.NewLedgerWorker(repo, export.Writer)
	err = amqpClient.ConsumeLedgerEvents(ctx, ledgerWorker.HandleLedgerEvent)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithComponent(log.ComponentAMQP).Error("Message consumption failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

