package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/podcastsite/backend/internal/api"
	"github.com/podcastsite/backend/internal/cache"
	"github.com/podcastsite/backend/internal/config"
	"github.com/podcastsite/backend/internal/log"
	"github.com/podcastsite/backend/internal/repository/postgres"
	"github.com/podcastsite/backend/internal/service"
	"github.com/podcastsite/backend/internal/websocket"
	"github.com/podcastsite/backend/internal/youtube"
)

func main() {
	log.Configure(log.Config{Level: os.Getenv("LOG_LEVEL")})
	logger := log.WithComponent("server")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize video catalog
	var catalog service.VideoCatalog = youtube.NewClient(youtube.Config{
		APIKey:     cfg.YouTubeAPIKey,
		ChannelID:  cfg.YouTubeChannelID,
		PlaylistID: cfg.YouTubePlaylistID,
		BaseURL:    cfg.YouTubeAPIBase,
		Timeout:    cfg.YouTubeTimeout,
	})
	if cfg.YouTubeAPIKey == "" {
		logger.Warn().Msg("YOUTUBE_API_KEY is not set; video lookups will fail")
	}

	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("catalog cache disabled")
		} else {
			defer redisClient.Close()
			catalog = cache.NewCachedCatalog(catalog, redisClient, cfg.CatalogCacheTTL, log.WithComponent("cache"))
			logger.Info().Dur("ttl", cfg.CatalogCacheTTL).Msg("catalog cache enabled")
		}
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, catalog, hub, cfg)

	// Initialize router
	router := api.NewRouter(services, hub, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hub.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server stopped")
}
