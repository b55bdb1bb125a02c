package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"keygate.backend/internal/interfaces/http/handlers"
	"keygate.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	personalKeyHandler  *handlers.PersonalKeyHandler
	usageHandler        *handlers.UsageHandler
	authMiddleware      gin.HandlerFunc
	rateLimitMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Admin routes (protected by access key auth, per-route capability
		// gates and the key's rate limit ceiling)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, d.rateLimitMiddleware)
		{
			admin.POST("", middleware.RequireCapability("key:create"), d.personalKeyHandler.Create)
			admin.GET("/:userID", middleware.RequireCapability("key:list"), d.personalKeyHandler.List)
			admin.GET("/:userID/:keyID", middleware.RequireCapability("key:list"), d.personalKeyHandler.Get)
			admin.PUT("/:userID/:keyID", middleware.RequireCapability("key:update"), d.personalKeyHandler.Update)
			admin.DELETE("/:userID/:keyID", middleware.RequireCapability("key:delete"), d.personalKeyHandler.Delete)
			admin.POST("/:userID/:keyID/reset", middleware.RequireCapability("key:reset"), d.personalKeyHandler.Reset)
			admin.GET("/:userID/:keyID/logs", middleware.RequireCapability("key:logs"), d.usageHandler.Logs)
			admin.GET("/:userID/:keyID/stats", middleware.RequireCapability("key:stats"), d.usageHandler.Stats)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "keygate-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
