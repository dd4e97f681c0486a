package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/pkg/logger"
)

// startServices checks the worker's dependencies before it starts consuming
func startServices(ctx context.Context, cfg *config.Config) error {
	rc := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	defer rc.Close()

	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Redis Connection", rc.Ping},
	}

	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.fn(checkCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		logger.Info("Health check passed", map[string]interface{}{"check": check.name})
	}
	return nil
}

// healthServer exposes liveness and readiness probes
type healthServer struct {
	srv *http.Server
}

func newHealthServer(cfg *config.Config) *healthServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "storefront-worker"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	return &healthServer{srv: &http.Server{
		Addr:              ":" + cfg.Worker.HealthPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func (h *healthServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Health check server starting", map[string]interface{}{"addr": h.srv.Addr})
		if err := h.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.srv.Shutdown(shutdownCtx)
}
