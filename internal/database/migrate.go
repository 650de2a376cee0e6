package database

import (
	"context"
	"embed"
	"fmt"

	"codeberg.org/scholargo/server/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsTable = "scholargo_schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// applies embedded schema migrations through goose
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	// goose speaks database/sql, so bridge the pool
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			logger.WarnErr(err, "failed to close migration connection")
		}
	}()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
	goose.SetTableName(migrationsTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// routes goose's printf-style output through the structured logger
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...any) {
	logger.Error(fmt.Sprintf(format, v...), "component", "migrate")
}

func (gooseLogger) Printf(format string, v ...any) {
	logger.Info(fmt.Sprintf(format, v...), "component", "migrate")
}
