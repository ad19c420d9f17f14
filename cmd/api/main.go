package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/screentime/screentime-api/internal/config"
	"github.com/screentime/screentime-api/internal/domain/admin"
	"github.com/screentime/screentime-api/internal/domain/availability"
	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/domain/demand"
	"github.com/screentime/screentime-api/internal/domain/recommendation"
	"github.com/screentime/screentime-api/internal/domain/screen"
	"github.com/screentime/screentime-api/internal/middleware"
	"github.com/screentime/screentime-api/internal/pkg/database"
	"github.com/screentime/screentime-api/internal/pkg/logger"
	pkgresponse "github.com/screentime/screentime-api/internal/pkg/response"
	"github.com/screentime/screentime-api/internal/pkg/suggestion"
)

// handlers groups everything the router mounts
type handlers struct {
	admin        *admin.Handler
	screen       *screen.Handler
	booking      *booking.Handler
	availability *availability.Handler

	adminJWT     *admin.JWTService
	adminService *admin.Service
}

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("suggestions", cfg.SuggestionProvider).
		Msg("Starting Screentime API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redis == nil {
		log.Info().Msg("REDIS_URL not set, recommendation cache disabled")
	}
	defer database.CloseRedis(redis)

	// ---------- Repositories ----------
	adminRepo := admin.NewRepository(db)
	screenRepo := screen.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// ---------- Services ----------
	adminService := admin.NewService(adminRepo)
	adminJWTService := admin.NewJWTService(cfg.JWTSecret, cfg.AdminJWTTTL)
	screenService := screen.NewService(screenRepo)
	bookingService := booking.NewService(bookingRepo, cfg.Location())
	classifier := demand.NewClassifier(bookingRepo)

	var generator recommendation.Generator
	if cfg.UseLLMSuggestions() {
		generator = recommendation.NewLLMGenerator(suggestion.NewClient(suggestion.Config{
			BaseURL: cfg.SuggestionBaseURL,
			APIKey:  cfg.SuggestionAPIKey,
			Model:   cfg.SuggestionModel,
			Timeout: cfg.SuggestionTimeout,
		}))
	} else {
		generator = recommendation.NewRulesGenerator(bookingRepo)
	}
	requester := recommendation.NewRequester(
		generator,
		recommendation.NewRedisCache(redis),
		cfg.SuggestionTimeout,
		cfg.SuggestionCacheTTL,
	)
	availabilityService := availability.NewService(screenService, classifier, requester, bookingService)

	// ---------- Handlers ----------
	h := &handlers{
		admin:        admin.NewHandler(adminService, adminJWTService),
		screen:       screen.NewHandler(screenService, adminService),
		booking:      booking.NewHandler(bookingService, adminService),
		availability: availability.NewHandler(availabilityService),
		adminJWT:     adminJWTService,
		adminService: adminService,
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("generator", generator.Name()).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(cfg *config.Config, h *handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Mount("/screens", h.screen.PublicRoutes())
		r.Get("/screens/{id}/booked-slots", h.booking.BookedSlots)
		r.Get("/time-slots", h.booking.TimeSlots)

		r.Mount("/bookings", h.booking.PublicRoutes())
		r.Mount("/availability", h.availability.Routes())
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/", h.admin.Routes())
		r.Mount("/screens", h.screen.AdminRoutes(h.adminJWT, h.adminService))
		r.Mount("/bookings", h.booking.AdminRoutes(h.adminJWT, h.adminService))
	})

	return r
}
