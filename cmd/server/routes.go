package main

import (
	"time"

	"codeberg.org/scholargo/server/api/rest/analysis"
	"codeberg.org/scholargo/server/api/rest/chats"
	"codeberg.org/scholargo/server/api/rest/health"
	"codeberg.org/scholargo/server/api/rest/payments"
	"codeberg.org/scholargo/server/api/rest/quota"
	"codeberg.org/scholargo/server/internal/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.CORSAllowedOrigins))
	router.Use(server.metrics.Middleware())

	router.GET("/health", health.Handler(server.db))
	router.GET("/metrics", gin.WrapH(server.metrics.Handler()))

	authMW := auth.Middleware(server.verifier)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		analysis.RegisterRoutes(v1, authMW, server.limiter.Middleware(), server.services.Advisor, server.services.Ledger, server.chatRepo)
		quota.RegisterRoutes(v1, authMW, server.services.Ledger)
		chats.RegisterRoutes(v1, authMW, server.chatRepo)
		payments.RegisterRoutes(v1, authMW, server.services.Payments, server.transactionRepo)
	}
}

// allows the configured origins, or any origin when none are configured
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "x-callback-token"},
		MaxAge:       12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}
