package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/scholargo/server/internal/auth"
	"codeberg.org/scholargo/server/internal/config"
	"codeberg.org/scholargo/server/internal/database"
	"codeberg.org/scholargo/server/internal/logger"
	"codeberg.org/scholargo/server/internal/metrics"
	"codeberg.org/scholargo/server/internal/ratelimit"
	"codeberg.org/scholargo/server/scholargo/chats"
	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/transactions"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.NewPool(ctx, cfg.SupabaseConnString)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	profileRepo := profiles.NewRepository(db)
	transactionRepo := transactions.NewRepository(db)
	chatRepo := chats.NewRepository(db)

	m := metrics.New()

	services, err := InitializeServices(cfg, m, profileRepo, transactionRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	limiter, err := ratelimit.New(ctx, cfg.RateLimit, cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	logger.Info("rate limiter initialized",
		"rate", cfg.RateLimit,
		"redis", cfg.RedisURL != "",
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		db:              db,
		config:          cfg,
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		chatRepo:        chatRepo,
		services:        services,
		verifier:        auth.NewVerifier(cfg.SupabaseJWTSecret),
		limiter:         limiter,
		metrics:         m,
		router:          router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// starts background samplers that live until ctx is cancelled
func (s *Server) startBackground(ctx context.Context) {
	go s.metrics.CollectPoolStats(ctx, s.db, 15*time.Second)
}

// releases the limiter store and the database pool
func (s *Server) Close() {
	if err := s.limiter.Close(); err != nil {
		logger.WarnErr(err, "failed to close rate limiter store")
	}

	s.db.Close()
}
