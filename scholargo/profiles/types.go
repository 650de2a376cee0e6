package profiles

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProfileNotFound = errors.New("profile not found")

// handles profile database operations
type Repository struct {
	db *pgxpool.Pool
}

const (
	PlanFree = "free"
	PlanPlus = "plus"
)

// a metered feature
type Feature string

const (
	FeaturePDFAnalysis Feature = "pdf_analysis"
	FeatureChat        Feature = "chat"
	FeatureDeepReview  Feature = "deep_review"
)

// lists every metered feature in display order
var Features = []Feature{FeaturePDFAnalysis, FeatureChat, FeatureDeepReview}

func ParseFeature(s string) (Feature, bool) {
	for _, f := range Features {
		if string(f) == s {
			return f, true
		}
	}

	return "", false
}

// plan and usage counters for one user
type Profile struct {
	ID               string     `json:"id"`
	PlanType         string     `json:"plan_type"`
	UsagePDFAnalysis int        `json:"usage_pdf_analysis"`
	UsageChat        int        `json:"usage_chat"`
	UsageDeepReview  int        `json:"usage_deep_review"`
	LastResetDate    time.Time  `json:"last_reset_date"`
	ValidUntil       *time.Time `json:"valid_until,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// returns the counter for a feature
func (p *Profile) Usage(f Feature) int {
	switch f {
	case FeaturePDFAnalysis:
		return p.UsagePDFAnalysis
	case FeatureChat:
		return p.UsageChat
	case FeatureDeepReview:
		return p.UsageDeepReview
	}

	return 0
}

// sets the counter for a feature
func (p *Profile) SetUsage(f Feature, n int) {
	switch f {
	case FeaturePDFAnalysis:
		p.UsagePDFAnalysis = n
	case FeatureChat:
		p.UsageChat = n
	case FeatureDeepReview:
		p.UsageDeepReview = n
	}
}
