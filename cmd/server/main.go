package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/citypulse/crimes-backend-go/internal/api"
	"github.com/citypulse/crimes-backend-go/internal/config"
	"github.com/citypulse/crimes-backend-go/internal/service"
	"github.com/citypulse/crimes-backend-go/internal/source"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "crimes-backend").Logger()
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	var src source.Source
	switch cfg.SourceBackend {
	case "sqlite":
		s, err := source.OpenSQLite(cfg.DBPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open incidents database")
		}
		defer s.Close()
		src = s
	default:
		src = source.NewCSVSource(cfg.DataDir)
	}

	store := source.NewStore(src)
	crimeService := service.NewCrimeService(store, cfg)
	router := api.SetupRouter(cfg, logger, crimeService)

	logger.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.SourceBackend).
		Ints("years", cfg.SupportedYears()).
		Msg("server starting")
	if err := router.Run(cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
