package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new profile repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds a profile by user id
func (r *Repository) FindByID(ctx context.Context, userID string) (*Profile, error) {
	profile, err := scanProfile(r.db.QueryRow(ctx, queryFindByID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return profile, nil
}

// inserts a default free profile unless one exists, then returns the stored row
func (r *Repository) Create(ctx context.Context, userID string, now time.Time) (*Profile, error) {
	if _, err := r.db.Exec(ctx, queryCreate, userID, now); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return r.FindByID(ctx, userID)
}

// zeroes every counter when the last reset is older than periodStart
func (r *Repository) ResetUsage(ctx context.Context, userID string, now, periodStart time.Time) (*Profile, error) {
	profile, err := scanProfile(r.db.QueryRow(ctx, queryResetUsage, userID, now, periodStart))
	if errors.Is(err, pgx.ErrNoRows) {
		// someone else reset first
		return r.FindByID(ctx, userID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to reset usage: %w", err)
	}

	return profile, nil
}

// atomically adds one to a feature counter and returns the new value
func (r *Repository) IncrementUsage(ctx context.Context, userID string, feature Feature) (int, error) {
	query, ok := incrementQueries[feature]
	if !ok {
		return 0, fmt.Errorf("unknown feature: %s", feature)
	}

	var usage int

	err := r.db.QueryRow(ctx, query, userID).Scan(&usage)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrProfileNotFound
	}

	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}

	return usage, nil
}

// sets the plan and its expiry, creating the profile when missing
func (r *Repository) GrantPlan(ctx context.Context, userID, planType string, validUntil time.Time) error {
	if _, err := r.db.Exec(ctx, queryGrantPlan, userID, planType, validUntil); err != nil {
		return fmt.Errorf("failed to grant plan: %w", err)
	}

	return nil
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile

	err := row.Scan(
		&p.ID,
		&p.PlanType,
		&p.UsagePDFAnalysis,
		&p.UsageChat,
		&p.UsageDeepReview,
		&p.LastResetDate,
		&p.ValidUntil,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &p, nil
}
