package main

import (
	"codeberg.org/scholargo/server/internal/advisor"
	"codeberg.org/scholargo/server/internal/auth"
	"codeberg.org/scholargo/server/internal/config"
	"codeberg.org/scholargo/server/internal/llm"
	"codeberg.org/scholargo/server/internal/metrics"
	"codeberg.org/scholargo/server/internal/payments"
	"codeberg.org/scholargo/server/internal/ratelimit"
	"codeberg.org/scholargo/server/scholargo/chats"
	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/quota"
	"codeberg.org/scholargo/server/scholargo/transactions"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db              *pgxpool.Pool
	config          *config.Config
	profileRepo     *profiles.Repository
	transactionRepo *transactions.Repository
	chatRepo        *chats.Repository
	services        *Services
	verifier        *auth.Verifier
	limiter         *ratelimit.Limiter
	metrics         *metrics.Metrics
	router          *gin.Engine
}

// holds the domain services built on top of the repositories and external clients
type Services struct {
	LLM      *llm.Registry
	Advisor  *advisor.Service
	Ledger   *quota.Ledger
	Payments *payments.Service
}
