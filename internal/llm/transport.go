package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRateLimit = 10
	defaultBurst     = 5
	maxErrorBody     = 4096
)

// the facade enforces request deadlines through context; this is the outer bound
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 180 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

func newLimiter(cfg ClientConfig) *rate.Limiter {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return rate.NewLimiter(rate.Limit(limit), burst)
}

// a wait that cannot finish before the deadline reports context.DeadlineExceeded
func waitTurn(ctx context.Context, limiter *rate.Limiter) error {
	err := limiter.Wait(ctx)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("rate limiter: %w", ctxErr)
	}

	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("rate limiter: %w: %v", context.DeadlineExceeded, err)
	}

	return fmt.Errorf("rate limiter: %w", err)
}

func readAPIError(provider Provider, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best effort error body
	return &APIError{Provider: provider, StatusCode: resp.StatusCode, Message: string(body)}
}
