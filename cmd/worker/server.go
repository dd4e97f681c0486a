package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/logger"
)

// asynqServer wraps asynq.Server with its mux
type asynqServer struct {
	*asynq.Server
	mux *asynq.ServeMux
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

func newAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Queues:          shared.QueuePriorities,
		Concurrency:     cfg.Worker.Concurrency,
		ShutdownTimeout: cfg.Worker.ShutdownTimeout,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error(fmt.Sprintf("Task %s failed", task.Type()), err)
		}),
	})

	return &asynqServer{Server: srv, mux: mux}
}

// Run processes tasks until ctx is done
func (s *asynqServer) Run(ctx context.Context) error {
	logger.Info("Worker starting", map[string]interface{}{
		"queues": shared.QueuePriorities,
	})
	if err := s.Server.Start(s.mux); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}

	<-ctx.Done()

	logger.Info("Worker shutting down", nil)
	s.Server.Shutdown()
	return nil
}
