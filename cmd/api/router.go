package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	sessionConfig := middleware.DefaultSessionMiddlewareConfig(c.SessionRegistry)
	sessionConfig.CookieSecure = c.Config.Session.CookieSecure
	sessionConfig.CookieDomain = c.Config.Session.CookieDomain

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCatalogRoutes(v1, c)

		withSession := v1.Group("")
		withSession.Use(middleware.Session(sessionConfig))
		setupCartRoutes(withSession, c)
		setupCheckoutRoutes(withSession, c)
		setupSessionRoutes(withSession, c)
	}

	return router
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.CatalogHandler.ListCategories)

	products := v1.Group("/products")
	{
		products.GET("", c.CatalogHandler.ListProducts)
		products.GET("/:id", c.CatalogHandler.GetProduct)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(rg *gin.RouterGroup, c *container.Container) {
	cart := rg.Group("/cart")
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.DELETE("/items/:product_id", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.ClearCart)
		cart.POST("/toggle", c.CartHandler.TogglePanel)
	}
}

// ========================================
// CHECKOUT ROUTES
// ========================================
func setupCheckoutRoutes(rg *gin.RouterGroup, c *container.Container) {
	checkout := rg.Group("/checkout")
	{
		checkout.GET("", c.CheckoutHandler.GetCheckout)
		checkout.POST("/next", c.CheckoutHandler.Next)
		checkout.POST("/back", c.CheckoutHandler.Back)
		checkout.PUT("/email", c.CheckoutHandler.SetEmail)
		checkout.PUT("/address", c.CheckoutHandler.SetAddress)
		checkout.PUT("/payment-method", c.CheckoutHandler.SetPaymentMethod)
		checkout.POST("/finalize", c.CheckoutHandler.Finalize)
		checkout.POST("/close", c.CheckoutHandler.Close)
	}
}

// ========================================
// SESSION ROUTES
// ========================================
func setupSessionRoutes(rg *gin.RouterGroup, c *container.Container) {
	session := rg.Group("/session")
	{
		session.GET("", c.SessionHandler.GetSession)
		session.GET("/events", c.SessionHandler.Events)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		redisStatus := "disabled"
		if c.Redis != nil {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()
			redisStatus = "up"
			if err := c.Redis.Ping(pingCtx); err != nil {
				redisStatus = "down"
			}
		}

		response.Success(ctx, http.StatusOK, "OK", gin.H{
			"status":          "ok",
			"version":         c.Config.App.Version,
			"environment":     c.Config.App.Environment,
			"redis":           redisStatus,
			"active_sessions": c.SessionRegistry.Len(),
		})
	}
}
