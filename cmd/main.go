package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/h-hub/secure-webapp/config"
	"github.com/h-hub/secure-webapp/db"
	"github.com/h-hub/secure-webapp/internal/auth/handler"
	repo "github.com/h-hub/secure-webapp/internal/auth/repository/postgres"
	"github.com/h-hub/secure-webapp/internal/auth/service"
	"github.com/h-hub/secure-webapp/internal/logger"
	"github.com/h-hub/secure-webapp/internal/metrics"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.Env == "development")

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer dbPool.Close()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	authRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	sessionService := service.NewSessionService(authRepo, tokenService, m, log, cfg.SessionExpiryMin)
	authHandler := handler.NewAuthHandler(sessionService, cfg)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, dbPool, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info().Str("port", cfg.Port).Msg("starting server")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
