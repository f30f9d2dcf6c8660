package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/idxpulse/idxpulse/internal/middleware"
)

// NewRouter creates the Gin engine with all routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Health and readiness endpoints (/healthz, /readyz) are registered in
// app.InitializeApp().
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/dates", handler.GetDates)
		v1.GET("/bid-ask/:date/:stock", handler.GetBidAsk)
		v1.GET("/broker-summary/:date", handler.GetBrokerSummary)
		v1.GET("/broker-summary/:date/:emiten", handler.GetBrokerSummary)
		v1.GET("/broker-transaction/:date/:broker", handler.GetBrokerTransaction)
		v1.GET("/top-broker/:date", handler.GetTopBroker)

		v1.POST("/jobs", handler.StartJob)
		v1.GET("/jobs/:id", handler.GetJob)
	}

	return router
}
