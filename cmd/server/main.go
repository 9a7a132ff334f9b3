package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nailpos/internal/config"
	"nailpos/internal/infra"
	"nailpos/internal/ledger"
	"nailpos/internal/repository"
	"nailpos/internal/router"
	"nailpos/internal/service"
	"nailpos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in dev, JSON in production
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := infra.NewNotifier(rdb)

	// Live ledger: one feed shared by every console session
	feed := ledger.NewFeed(repository.NewSaleRepository(db), notifier, cfg.LedgerPollInterval)
	sessions := ledger.NewSessions(feed, cfg.LedgerPageSize, cfg.LedgerSessionTTL)
	go sessions.Run(ctx)

	// Low-stock alerts: cron scan -> redis queue -> mail worker
	mailCB := infra.NewCircuitBreaker("mail", infra.CircuitBreakerConfig{
		FailureThreshold: cfg.MailCBFailureThreshold,
		SuccessThreshold: cfg.MailCBSuccessThreshold,
		OpenTimeout:      cfg.MailCBOpenTimeout,
	})
	inventory := service.NewInventoryService(
		repository.NewChemicalRepository(db),
		repository.NewConsumableRepository(db),
	)
	dispatcher := worker.NewDispatcher(rdb)
	pool := worker.NewPool(rdb, map[string]worker.Handler{
		worker.QueueStockAlert: worker.NewStockAlertWorker(infra.NewMailer(cfg), mailCB),
	})
	pool.Start(ctx, cfg.WorkerPoolSize)

	scheduler, err := worker.NewScheduler(ctx, cfg.StockScanSchedule, worker.NewStockScanner(inventory, dispatcher, cfg.AlertEmail))
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.StockScanSchedule).Msg("invalid STOCK_SCAN_SCHEDULE")
	}
	scheduler.Start()

	r := router.New(cfg, db, rdb, router.Deps{
		Notifier:  notifier,
		Sessions:  sessions,
		Inventory: inventory,
		MailCB:    mailCB,
	})

	// WriteTimeout stays 0: ledger streams are long-lived.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("nailpos backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	<-scheduler.Stop().Done()
	sessions.CloseAll()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	cancel()
	pool.Wait()
	log.Info().Msg("server exited")
}
