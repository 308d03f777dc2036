package api

import (
	"log"
	"os"
	"strings"

	"Pickme/api/config"
	"Pickme/api/controllers"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var server = controllers.Server{}

func init() {
	// Load .env only outside production. In production, config comes from the environment.
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	server.Initialize(cfg, logger)

	addr := ":" + strings.TrimSpace(cfg.Port)
	err = server.Run(addr)
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
