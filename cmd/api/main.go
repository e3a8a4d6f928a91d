package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"blog-api/internal/config"
	"blog-api/pkg/logger"
)

func main() {
	// .env is for local runs; deployed environments set real variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	if envErr != nil {
		logger.Debug("No .env file found, using system environment variables")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("environment", cfg.App.Environment).
		Msg("Starting blog API")

	Serve(cfg)
}
