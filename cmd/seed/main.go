package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/screentime/screentime-api/internal/config"
	"github.com/screentime/screentime-api/internal/domain/admin"
	"github.com/screentime/screentime-api/internal/domain/screen"
	"github.com/screentime/screentime-api/internal/pkg/database"
	"github.com/screentime/screentime-api/internal/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	screens, err := screen.NewService(screen.NewRepository(db)).EnsureDefaults(ctx, screen.DefaultScreens)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed screens")
	}
	for _, s := range screens {
		log.Info().Str("screen_id", s.ID.String()).Str("name", s.Name).Msg("Screen ready")
	}

	secret := adminSecret(cfg)
	if secret == "" {
		log.Warn().Msg("INITIAL_ADMIN_PASSWORD_HASH and INITIAL_ADMIN_PASSWORD are empty, skipping admin")
		return
	}

	a, created, err := admin.NewService(admin.NewRepository(db)).EnsureAdmin(ctx, cfg.InitialAdminUsername, secret)
	if err != nil {
		log.Fatal().Err(err).Str("username", cfg.InitialAdminUsername).Msg("Failed to seed admin")
	}
	log.Info().
		Str("admin_id", a.ID.String()).
		Str("username", a.Username).
		Bool("created", created).
		Msg("Admin ready")
}

// adminSecret prefers a precomputed hash over a plain password
func adminSecret(cfg *config.Config) string {
	if cfg.InitialAdminPasswordHash != "" {
		return cfg.InitialAdminPasswordHash
	}
	return cfg.InitialAdminPassword
}
