package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/gowatcharr/internal/api"
	"github.com/amaumene/gowatcharr/internal/config"
	"github.com/amaumene/gowatcharr/internal/controllers"
	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/amaumene/gowatcharr/internal/services/tmdb"
	"github.com/amaumene/gowatcharr/internal/utils"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the watchlist HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting gowatcharr")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.WithField("dialect", db.Dialect()).Info("Database initialized")

	// 4. Initialize TMDB client
	tmdbClient := tmdb.NewClient(cfg, logger)
	if tmdbClient.Configured() {
		logger.Info("TMDB client initialized")
	} else {
		logger.Warn("No TMDB API key configured, metadata enrichment disabled")
	}

	// 5. Initialize controllers
	ctrls := api.Controllers{
		Content:   controllers.NewContentController(db, tmdbClient, logger),
		Watch:     controllers.NewWatchController(db, logger),
		Platform:  controllers.NewPlatformController(db, logger),
		Stats:     controllers.NewStatsController(db, logger),
		Recommend: controllers.NewRecommendController(db, logger),
	}
	logger.Info("Controllers initialized")

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, ctrls, tmdbClient, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("gowatcharr is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("gowatcharr stopped")
	return nil
}
