package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"storefront-backend/internal/config"
	"storefront-backend/pkg/logger"
)

func main() {
	envFile := flag.String("env-file", ".env", "path to a .env file; missing files are ignored")
	flag.Parse()

	envErr := godotenv.Load(*envFile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		logger.Warn("No .env file loaded, using system environment variables", map[string]interface{}{
			"path": *envFile,
		})
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := startServices(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Startup health check failed")
	}

	handlers := initializeHandlers()
	srv := newAsynqServer(cfg, handlers)
	health := newHealthServer(cfg)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gCtx) })
	g.Go(func() error { return health.Run(gCtx) })

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped", nil)
}
