package ratelimit

import (
	"context"
	"fmt"
	"time"

	apierrors "codeberg.org/scholargo/server/internal/errors"
	"codeberg.org/scholargo/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const keyPrefix = "scholargo:ratelimit"

// per-IP request limiter for the AI routes
type Limiter struct {
	limiter *limiter.Limiter
	client  *redis.Client
}

// builds a limiter from a formatted rate such as "30-M"; an empty redisURL keeps counters in memory
func New(ctx context.Context, formattedRate, redisURL string) (*Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formattedRate, err)
	}

	if redisURL == "" {
		store := memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          keyPrefix,
			CleanUpInterval: time.Minute,
		})

		return &Limiter{limiter: limiter.New(store, rate)}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   keyPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		_ = client.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}

	return &Limiter{limiter: limiter.New(store, rate), client: client}, nil
}

// returns a gin middleware that rejects requests over the limit with 429
func (l *Limiter) Middleware() gin.HandlerFunc {
	return mgin.NewMiddleware(l.limiter,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			apierrors.TooManyRequests(c, "too many requests, please slow down")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// a broken store should not take the AI routes down with it
			logger.WarnErr(err, "rate limiter store failed", "ip", c.ClientIP())
			c.Next()
		}),
	)
}

// closes the redis connection when one is in use
func (l *Limiter) Close() error {
	if l.client == nil {
		return nil
	}

	return l.client.Close()
}
