package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"blog-api/internal/config"
	"blog-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// logs go to stderr so `export -` can stream the workbook on stdout
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	if err := newRootCmd(cfg, openStore).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
