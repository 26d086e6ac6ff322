// Command planner serves the personal finance JSON API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"planner/internal/amqp"
	"planner/internal/cache"
	"planner/internal/cli"
	"planner/internal/core"
	apphttp "planner/internal/http"
	"planner/internal/log"
	"planner/internal/services"
	"planner/internal/worker"
)

const (
	shutdownTimeout   = 30 * time.Second
	summaryCacheSize  = 1000
	cacheCleanupEvery = time.Minute
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(log.New(log.DefaultConfig()))
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentApp)
	logger.Info("Starting planner server", "port", cfg.Port, "db", cfg.SQLiteDBPath)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	summaryCache := cache.NewLRUCache[core.MonthSummary](summaryCacheSize, cfg.SummaryCacheTTL)
	caches := cache.NewManager()
	caches.Register(summaryCache)
	caches.StartCleanup(cacheCleanupEvery)
	defer caches.Stop()

	// Assign only a live client: a typed nil would defeat the nil check in the ledger.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WithComponent(log.ComponentAMQP).Warn("Failed to initialize AMQP client, ledger events disabled", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			logger.WithComponent(log.ComponentAMQP).Info("AMQP publisher ready", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.WithComponent(log.ComponentAMQP).Info("AMQP disabled, ledger events will not be published")
	}

	summary := services.NewSummaryService(repo, summaryCache)
	auth := services.NewAuthService(repo, cfg.SessionTTL)
	svc := apphttp.Services{
		Auth:       auth,
		Users:      services.NewUserService(repo, summary),
		Accounts:   services.NewAccountService(repo, summary),
		Categories: services.NewCategoryService(repo, summary),
		Ledger:     services.NewLedgerService(repo, publisher, summary),
		Summary:    summary,
	}

	janitor, err := worker.NewJanitor(auth, cfg.SessionPurgeSchedule)
	if err != nil {
		logger.Error("Failed to create session janitor", "error", err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		CookieName:         cfg.SessionCookieName,
		SecureCookie:       cfg.SessionSecureCookie,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger.WithComponent(log.ComponentHTTP),
		Ready:              repo.Ping,
	}, svc)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithComponent(log.ComponentHTTP).Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return janitor.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
