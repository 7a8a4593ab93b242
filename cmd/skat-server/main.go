package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bettercodepaul/Skat/app/modules/player"
	"github.com/bettercodepaul/Skat/config"
	"github.com/bettercodepaul/Skat/db/bundb"
	"github.com/bettercodepaul/Skat/internal/eventbus"
	"github.com/bettercodepaul/Skat/internal/observability"
	"github.com/bettercodepaul/Skat/internal/observability/attr"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		log.Fatalf("Failed to initialize observability: %v", err)
	}
	logger := obs.Provider.Logger

	db, err := bundb.NewBunDB(ctx, cfg.Postgres)
	if err != nil {
		logger.Error("Failed to connect to database", attr.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := bundb.RunMigrations(ctx, db, logger); err != nil {
			logger.Error("Failed to run migrations", attr.Error(err))
			os.Exit(1)
		}
	}

	publisher, err := eventbus.NewPublisher(cfg.NATS.URL, logger)
	if err != nil {
		logger.Error("Failed to create event publisher", attr.Error(err))
		os.Exit(1)
	}
	defer publisher.Close()

	router := newRouter(db, obs.Provider.MetricsHandler)

	playerModule, err := player.NewPlayerModule(ctx, cfg, obs, publisher, router, db)
	if err != nil {
		logger.Error("Failed to create player module", attr.Error(err))
		os.Exit(1)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go playerModule.Run(ctx, &wg)

	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", attr.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", attr.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}
	if err := playerModule.Close(); err != nil {
		logger.Error("Player module shutdown failed", attr.Error(err))
	}
	wg.Wait()

	if err := obs.Shutdown(shutdownCtx); err != nil {
		logger.Error("Observability shutdown failed", attr.Error(err))
	}
	logger.Info("Shutdown complete")
}
