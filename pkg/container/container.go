package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"

	cartHandler "storefront-backend/internal/domains/cart/handler"
	catalogHandler "storefront-backend/internal/domains/catalog/handler"
	catalogRepo "storefront-backend/internal/domains/catalog/repository"
	catalogService "storefront-backend/internal/domains/catalog/service"
	checkoutGateway "storefront-backend/internal/domains/checkout/gateway"
	"storefront-backend/internal/domains/checkout/gateway/mock"
	checkoutHandler "storefront-backend/internal/domains/checkout/handler"
	checkoutJob "storefront-backend/internal/domains/checkout/job"
	checkoutService "storefront-backend/internal/domains/checkout/service"
	sessionHandler "storefront-backend/internal/domains/session/handler"
	sessionService "storefront-backend/internal/domains/session/service"
)

// Container holds every long-lived dependency of the API
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================
	Config      *config.Config
	Redis       *infraCache.RedisClient // nil when Redis is disabled or unreachable
	Cache       cache.Cache             // nil when Redis is disabled or unreachable
	AsynqClient *asynq.Client           // nil when Redis is disabled or unreachable

	// ========================================
	// SERVICES
	// ========================================
	CatalogService  catalogService.ServiceInterface
	Gateway         checkoutGateway.Gateway
	Tracker         *checkoutJob.SettlementTracker
	SessionRegistry *sessionService.Registry

	// ========================================
	// HANDLERS
	// ========================================
	CatalogHandler  *catalogHandler.Handler
	CartHandler     *cartHandler.Handler
	CheckoutHandler *checkoutHandler.Handler
	SessionHandler  *sessionHandler.Handler
}

// NewContainer builds the dependency graph.
// Order: config, infrastructure, services, handlers.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewContainerWithConfig(cfg), nil
}

// NewContainerWithConfig builds the graph from an already loaded config
func NewContainerWithConfig(cfg *config.Config) *Container {
	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
		"redis":       c.Redis != nil,
	})
	return c
}

func (c *Container) initInfrastructure() {
	if !c.Config.Redis.Enabled {
		logger.Warn("Redis disabled: catalog cache and settlement tracking are off", nil)
		return
	}

	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Connect(ctx); err != nil {
		// Redis is optional for the storefront
		logger.Error("Redis connection failed, continuing without it", err)
		_ = rc.Close()
		return
	}

	c.Redis = rc
	c.Cache = rc
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
}

func (c *Container) initServices() {
	c.CatalogService = catalogService.NewCatalogService(
		catalogRepo.NewSeededRepository(),
		c.Cache,
		c.Config.Catalog.CacheTTL,
	)

	c.Gateway = mock.NewSimulatedGateway(c.Config.Checkout.SettlementLatency)

	deps := sessionService.Dependencies{
		Gateway: c.Gateway,
		Checkout: checkoutService.Options{
			ResetDelay:                     c.Config.Checkout.SuccessResetDelay,
			InstantTransferDiscountPercent: c.Config.Checkout.InstantTransferDiscountPercent,
		},
	}
	if c.AsynqClient != nil {
		c.Tracker = checkoutJob.NewSettlementTracker(c.AsynqClient, c.Config.Checkout.TrackingQueue)
		deps.TrackerFor = func(sessionID string) checkoutService.Tracker {
			return c.Tracker.ForSession(sessionID)
		}
	}

	c.SessionRegistry = sessionService.NewRegistry(deps, c.Config.Session.IdleTimeout)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.CartHandler = cartHandler.NewHandler(c.CatalogService)
	c.CheckoutHandler = checkoutHandler.NewHandler()
	c.SessionHandler = sessionHandler.NewHandler(c.Config.Session.EventHeartbeat)
}

// Cleanup releases the connections opened by the container
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	logger.Info("Container cleanup completed", nil)
}
