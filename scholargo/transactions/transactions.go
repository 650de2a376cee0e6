package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// creates a new transaction repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// persists a pending transaction
func (r *Repository) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx, err := scanTransaction(r.db.QueryRow(ctx, queryCreate,
		params.ExternalID,
		params.UserID,
		params.PlanType,
		params.Amount,
		params.Gateway,
		params.PaymentLink,
	))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, ErrDuplicateExternalID
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

func (r *Repository) FindByExternalID(ctx context.Context, externalID string) (*Transaction, error) {
	tx, err := scanTransaction(r.db.QueryRow(ctx, queryFindByExternalID, externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	return tx, nil
}

// returns the user's most recent transactions, newest first
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, queryListByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	out := []Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		out = append(out, *tx)
	}

	return out, rows.Err()
}

// updates the status unless the stored one is already final; reports whether a row changed
func (r *Repository) Transition(ctx context.Context, externalID, status string, final bool) (bool, error) {
	tag, err := r.db.Exec(ctx, queryTransition, externalID, status, final)
	if err != nil {
		return false, fmt.Errorf("failed to update transaction status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// records the plan grant once; reports whether this call was the one that set it
func (r *Repository) MarkGranted(ctx context.Context, externalID string, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, queryMarkGranted, externalID, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark transaction granted: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction

	err := row.Scan(
		&t.ID,
		&t.ExternalID,
		&t.UserID,
		&t.PlanType,
		&t.Amount,
		&t.Status,
		&t.Final,
		&t.Gateway,
		&t.PaymentLink,
		&t.GrantedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &t, nil
}
