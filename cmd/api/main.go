package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

func main() {
	envFile := flag.String("env-file", ".env", "path to a .env file; missing files are ignored")
	flag.Parse()

	// Production uses the process environment
	envErr := godotenv.Load(*envFile)

	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		logger.Warn("No .env file loaded, using system environment variables", map[string]interface{}{
			"path": *envFile,
		})
	}

	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer appContainer.Cleanup()

	if appContainer.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := Serve(appContainer); err != nil {
		logger.Error("Server stopped with error", err)
		appContainer.Cleanup()
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
