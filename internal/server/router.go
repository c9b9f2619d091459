// internal/server/router.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"credit-scoring/internal/common/config"
	"credit-scoring/internal/ratelimit"
)

// NewRouter wires the middleware chain and routes. The limiter is optional;
// pass nil when rate limiting is disabled.
func NewRouter(cfg *config.Config, handler *PredictHandler, limiter *ratelimit.Limiter) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	predict := router.Group("/")
	if limiter != nil {
		predict.Use(RateLimitMiddleware(limiter))
	}
	predict.POST("/predict", handler.Handle)

	return router
}
