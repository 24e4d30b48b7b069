package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fincompass/engine/internal/config"
	"github.com/fincompass/engine/internal/modules/allocation"
	"github.com/fincompass/engine/internal/modules/payoff"
	"github.com/fincompass/engine/internal/modules/rebalancing"
	"github.com/fincompass/engine/internal/modules/recommendation"
	"github.com/fincompass/engine/internal/server"
	"github.com/fincompass/engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting strategy engine")

	// Wire the engine services. They are pure computation: no storage,
	// no shared state, safe to share across requests.
	scheduler := payoff.NewScheduler(cfg.MaxSimulationMonths, log)
	comparator := payoff.NewComparator(scheduler, log)
	calculator := allocation.NewCalculator(log)
	analyzer := allocation.NewAnalyzer(log)
	planner := rebalancing.NewPlanner(calculator, analyzer, log)
	recommender := recommendation.NewRecommender(log)

	srv := server.New(server.Config{
		Port:   cfg.Port,
		Log:    log,
		Config: cfg,
		Handlers: server.Handlers{
			Payoff:         payoff.NewHandler(scheduler, comparator, log),
			Allocation:     allocation.NewHandler(calculator, analyzer, cfg.DefaultDriftPct, log),
			Rebalancing:    rebalancing.NewHandler(planner, cfg.DefaultDriftPct, log),
			Recommendation: recommendation.NewHandler(recommender, log),
		},
		DevMode: cfg.DevMode,
	})

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Strategy engine started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Stopped")
}
