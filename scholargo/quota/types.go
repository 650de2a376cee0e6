package quota

import (
	"context"
	"time"

	"codeberg.org/scholargo/server/scholargo/profiles"
)

// persistence the ledger needs; implemented by profiles.Repository
type Store interface {
	FindByID(ctx context.Context, userID string) (*profiles.Profile, error)
	Create(ctx context.Context, userID string, now time.Time) (*profiles.Profile, error)
	ResetUsage(ctx context.Context, userID string, now, periodStart time.Time) (*profiles.Profile, error)
	IncrementUsage(ctx context.Context, userID string, feature profiles.Feature) (int, error)
}

// receives one observation per quota check
type Recorder interface {
	ObserveQuotaCheck(feature string, allowed bool)
}

// result of a quota check
type Decision struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	Limit     int    `json:"limit"`
	Used      int    `json:"used"`
	Plan      string `json:"plan"`
}

type FeatureUsage struct {
	Feature   profiles.Feature `json:"feature"`
	Used      int              `json:"used"`
	Limit     int              `json:"limit"`
	Remaining int              `json:"remaining"`
}

// plan state and usage across every feature
type Summary struct {
	Plan          string         `json:"plan"`
	StoredPlan    string         `json:"stored_plan"`
	ValidUntil    *time.Time     `json:"valid_until,omitempty"`
	LastResetDate time.Time      `json:"last_reset_date"`
	Features      []FeatureUsage `json:"features"`
}
