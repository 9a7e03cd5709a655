package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/podcastsite/backend/internal/api/handlers"
	"github.com/podcastsite/backend/internal/api/middleware"
	"github.com/podcastsite/backend/internal/config"
	"github.com/podcastsite/backend/internal/service"
	"github.com/podcastsite/backend/internal/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	secureCookie := cfg.IsProduction()

	authHandler := handlers.NewAuthHandler(services.Session, secureCookie)
	carouselHandler := handlers.NewCarouselHandler(services.Carousel)
	videoHandler := handlers.NewVideoHandler(services.Video)
	wsHandler := handlers.NewWebSocketHandler(hub)
	pageHandler := handlers.NewPageHandler(cfg.StaticDir)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
		})

		r.Get("/carousel", carouselHandler.Get)
		r.Get("/carousel/ws", wsHandler.Handle)

		r.With(middleware.VideoRateLimit(cfg.VideoRateLimitPerMinute)).
			Get("/youtube", videoHandler.Get)

		// Protected admin data routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireSession(services.Session))
			r.Get("/carousel", carouselHandler.ListSlots)
			r.Put("/carousel", carouselHandler.UpdateSlots)
			r.Get("/carousel/revisions", carouselHandler.ListRevisions)
		})
	})

	// Protected admin pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePageSession(services.Session, secureCookie))
		r.Get("/admin", pageHandler.ServeHTTP)
		r.Get("/admin/*", pageHandler.ServeHTTP)
	})

	r.Get("/*", pageHandler.ServeHTTP)

	return r
}
