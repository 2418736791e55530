package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amaumene/gowatcharr/internal/api/handlers"
	"github.com/amaumene/gowatcharr/internal/api/middleware"
	"github.com/amaumene/gowatcharr/internal/config"
	"github.com/amaumene/gowatcharr/internal/controllers"
	"github.com/amaumene/gowatcharr/internal/services/tmdb"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Controllers bundles the business logic the server dispatches to
type Controllers struct {
	Content   *controllers.ContentController
	Watch     *controllers.WatchController
	Platform  *controllers.PlatformController
	Stats     *controllers.StatsController
	Recommend *controllers.RecommendController
}

// Server represents the HTTP server
type Server struct {
	app    *fiber.App
	port   string
	logger *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, ctrls Controllers, tmdbClient *tmdb.Client, logger *logrus.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "gowatcharr",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(middleware.Logging(logger))
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	s := &Server{
		app:    app,
		port:   cfg.ServerPort,
		logger: logger,
	}
	s.setupRoutes(ctrls, tmdbClient)

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(ctrls Controllers, tmdbClient *tmdb.Client) {
	s.app.Get("/health", handlers.Health)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	contentHandler := handlers.NewContentHandler(ctrls.Content, tmdbClient, s.logger)
	watchHandler := handlers.NewWatchHandler(ctrls.Watch, s.logger)
	platformHandler := handlers.NewPlatformHandler(ctrls.Platform, s.logger)
	statsHandler := handlers.NewStatsHandler(ctrls.Stats, s.logger)
	aiHandler := handlers.NewAIHandler(ctrls.Recommend, s.logger)

	v1 := s.app.Group("/api/v1")

	// Static content routes must be registered before /content/:id
	v1.Get("/content/search", contentHandler.SearchLocal)
	v1.Post("/content/search", contentHandler.SearchTMDB)
	v1.Get("/content/trending", contentHandler.Trending)
	v1.Get("/content/popular", contentHandler.Popular)
	v1.Get("/content/statistics", contentHandler.Statistics)

	v1.Get("/content", contentHandler.List)
	v1.Post("/content", contentHandler.Create)
	v1.Get("/content/:id", contentHandler.Get)
	v1.Put("/content/:id", contentHandler.Update)
	v1.Patch("/content/:id", contentHandler.Update)
	v1.Delete("/content/:id", contentHandler.Delete)
	v1.Post("/content/:id/favorite", contentHandler.ToggleFavorite)
	v1.Get("/content/:id/similar", contentHandler.Similar)
	v1.Get("/content/:id/watch-count", watchHandler.WatchCount)
	v1.Post("/content/:id/platforms", platformHandler.LinkContent)
	v1.Get("/content/:id/platforms", platformHandler.ListForContent)
	v1.Post("/content/:id/generate-tags", aiHandler.GenerateTags)

	v1.Post("/platforms", platformHandler.Create)
	v1.Get("/platforms", platformHandler.List)

	v1.Post("/watches", watchHandler.Record)
	v1.Get("/watches", watchHandler.History)
	v1.Post("/watches/session/start", watchHandler.StartSession)
	v1.Post("/watches/session/:id/end", watchHandler.EndSession)
	v1.Get("/watches/:id", watchHandler.Get)
	v1.Delete("/watches/:id", watchHandler.Delete)

	v1.Get("/stats/overview", statsHandler.Overview)
	v1.Get("/stats/viewing-time", statsHandler.ViewingTime)
	v1.Get("/stats/genres", statsHandler.Genres)
	v1.Get("/stats/ratings", statsHandler.Ratings)
	v1.Get("/stats/completion", statsHandler.Completion)
	v1.Get("/stats/platforms", statsHandler.Platforms)
	v1.Get("/stats/trending", statsHandler.Trending)
	v1.Get("/stats/personal-records", statsHandler.PersonalRecords)
	v1.Get("/stats/monthly-summary", statsHandler.MonthlySummary)
	v1.Get("/stats/year-in-review", statsHandler.YearInReview)

	v1.Post("/ai/recommend", aiHandler.Recommend)
	v1.Post("/ai/recommendations", aiHandler.RecommendSimple)
	v1.Post("/ai/analyze", aiHandler.Analyze)
	v1.Post("/ai/insights", aiHandler.Insights)
	v1.Post("/ai/mood-suggest", aiHandler.MoodSuggest)
	v1.Post("/ai/chat", aiHandler.Chat)
	v1.Post("/ai/similar-search", aiHandler.SemanticSearch)
}

// App exposes the fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server and blocks until it stops or ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.port).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(":" + s.port); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithTimeout(10 * time.Second)
}
