package errors

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// error categories for classification
const (
	CategoryDatabase   = "database"
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryAuth       = "auth"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)

// analyzes an error and returns its category and sanitized message
func classifyError(err error, isProduction bool) errorInfo {
	if err == nil {
		return errorInfo{CategoryUnknown, ""}
	}

	pick := func(sanitized string) string {
		if isProduction {
			return sanitized
		}

		return err.Error()
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errorInfo{CategoryDatabase, pick("database operation failed")}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errorInfo{CategoryNotFound, pick("resource not found")}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errorInfo{CategoryTimeout, pick("request timed out")}
	}

	if errors.Is(err, context.Canceled) {
		return errorInfo{CategoryTimeout, pick("request canceled")}
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline"):
		return errorInfo{CategoryTimeout, pick("request timed out")}
	case strings.Contains(errMsg, "not found") || strings.Contains(errMsg, "no rows"):
		return errorInfo{CategoryNotFound, pick("resource not found")}
	case strings.Contains(errMsg, "database") || strings.Contains(errMsg, "sql") ||
		strings.Contains(errMsg, "postgres") || strings.Contains(errMsg, "pgx"):
		return errorInfo{CategoryDatabase, pick("database operation failed")}
	case strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "dial"):
		return errorInfo{CategoryNetwork, pick("connection error occurred")}
	case strings.Contains(errMsg, "validation") || strings.Contains(errMsg, "binding") ||
		strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "required"):
		return errorInfo{CategoryValidation, pick("validation failed")}
	case strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "forbidden") ||
		strings.Contains(errMsg, "permission") || strings.Contains(errMsg, "auth"):
		return errorInfo{CategoryAuth, pick("permission denied")}
	}

	return errorInfo{CategoryUnknown, pick("an error occurred")}
}
