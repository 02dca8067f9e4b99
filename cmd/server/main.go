// Package main initializes and starts the learner progress server,
// setting up configuration, logging, the database connection, repositories,
// services, handlers and the daily rollover job.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/omsandippatil/9Lives-sub003/internal/cache"
	"github.com/omsandippatil/9Lives-sub003/internal/config"
	"github.com/omsandippatil/9Lives-sub003/internal/db"
	"github.com/omsandippatil/9Lives-sub003/internal/logger"
	"github.com/omsandippatil/9Lives-sub003/internal/repository"
	"github.com/omsandippatil/9Lives-sub003/internal/scheduler"
	"github.com/omsandippatil/9Lives-sub003/internal/server/handler/http"
	"github.com/omsandippatil/9Lives-sub003/internal/service"
)

// leaderboardTTL bounds how stale a cached leaderboard page may get between
// score writes from other server instances.
const leaderboardTTL = 30 * time.Second

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret is required")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for authentication and progress tracking.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	progressRepo := repository.NewPostgresProgressRepository(postgresDB)

	// Leaderboard pages are cached between score writes; the cache is an
	// explicit dependency so writers can clear it.
	leaderboardCache := cache.New(leaderboardTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo, options.JWTSecret)
	sequencer := service.NewSequencer(progressRepo, options.PointsPerItem, leaderboardCache, zapLogger)
	streakTracker := service.NewStreakTracker(progressRepo)
	focusReconciler := service.NewFocusReconciler(progressRepo)
	leaderboard := service.NewLeaderboardAggregator(progressRepo, leaderboardCache)
	admin := service.NewAdmin(progressRepo, leaderboardCache, zapLogger)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	advanceHandler := &http.AdvanceHandler{Sequencer: sequencer}
	streakHandler := &http.StreakHandler{Streak: streakTracker}
	focusHandler := &http.FocusHandler{Focus: focusReconciler}
	leaderboardHandler := &http.LeaderboardHandler{Leaderboard: leaderboard}
	adminHandler := &http.AdminHandler{Sequencer: sequencer, Admin: admin}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		advanceHandler,
		streakHandler,
		focusHandler,
		leaderboardHandler,
		adminHandler,
		options.JWTSecret,
		options.AdminToken,
		zapLogger,
	)

	// Start the daily focus rollover job.
	rollover := scheduler.NewRollover(progressRepo, zapLogger)
	if err := rollover.Start(options.RolloverHour); err != nil {
		zapLogger.Fatal("cannot start rollover job", zap.Error(err))
	}
	defer rollover.Stop()

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	// Shut down cleanly on SIGINT/SIGTERM.
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
