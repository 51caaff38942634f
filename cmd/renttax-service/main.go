package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nurpe/renttax/internal/app"
	"github.com/nurpe/renttax/internal/auth"
	"github.com/nurpe/renttax/internal/config"
	httphandler "github.com/nurpe/renttax/internal/http"
	"github.com/nurpe/renttax/internal/http/middleware"
	"github.com/nurpe/renttax/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	application, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer application.Close()

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	if !tokenParser.Enabled() {
		log.Warn().Msg("JWT_ACCESS_SECRET is empty, authentication disabled")
	}
	handler := httphandler.NewHandler(application.Ledger, application.Tax, application.Reports, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.CORS.AllowedOrigins, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().
		Str("addr", addr).
		Str("driver", cfg.DB.Driver).
		Str("regime", application.Tax.Regime().String()).
		Msg("starting renttax service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		_ = application.Close()
		os.Exit(1)
	}
}
