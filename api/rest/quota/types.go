package quota

import (
	"context"

	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/quota"
)

// implemented by quota.Ledger
type Ledger interface {
	Usage(ctx context.Context, userID string) (*quota.Summary, error)
	CheckQuota(ctx context.Context, userID string, feature profiles.Feature) (*quota.Decision, error)
}

type CheckResponse struct {
	Feature profiles.Feature `json:"feature"`
	*quota.Decision
}
