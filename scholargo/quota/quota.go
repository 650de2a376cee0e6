package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/scholargo/server/internal/logger"
	"codeberg.org/scholargo/server/scholargo/profiles"
)

var ErrUnknownFeature = errors.New("unknown feature")

// gates feature usage by plan with lazy monthly resets
type Ledger struct {
	store    Store
	recorder Recorder
	now      func() time.Time
}

type Option func(*Ledger)

// overrides the clock, used by tests
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithRecorder(r Recorder) Option {
	return func(l *Ledger) {
		l.recorder = r
	}
}

func NewLedger(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// loads the profile, inserting a default free one on first sight
func (l *Ledger) GetOrCreateProfile(ctx context.Context, userID string) (*profiles.Profile, error) {
	profile, err := l.store.FindByID(ctx, userID)
	if err == nil {
		return profile, nil
	}

	if !errors.Is(err, profiles.ErrProfileNotFound) {
		return nil, err
	}

	profile, err = l.store.Create(ctx, userID, l.now())
	if err != nil {
		return nil, err
	}

	logger.Info("created profile", "user_id", userID)
	return profile, nil
}

// applies the monthly reset, then compares usage against the effective plan's limit
func (l *Ledger) CheckQuota(ctx context.Context, userID string, feature profiles.Feature) (*Decision, error) {
	if Limit(profiles.PlanFree, feature) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	}

	profile, err := l.current(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan := l.EffectivePlan(profile)
	limit := Limit(plan, feature)
	used := profile.Usage(feature)

	decision := &Decision{
		Allowed:   used < limit,
		Remaining: max(0, limit-used),
		Limit:     limit,
		Used:      used,
		Plan:      plan,
	}

	if l.recorder != nil {
		l.recorder.ObserveQuotaCheck(string(feature), decision.Allowed)
	}

	return decision, nil
}

// adds one use of a feature and returns the new count
func (l *Ledger) IncrementUsage(ctx context.Context, userID string, feature profiles.Feature) (int, error) {
	if Limit(profiles.PlanFree, feature) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	}

	used, err := l.store.IncrementUsage(ctx, userID, feature)
	if errors.Is(err, profiles.ErrProfileNotFound) {
		if _, err := l.GetOrCreateProfile(ctx, userID); err != nil {
			return 0, err
		}

		used, err = l.store.IncrementUsage(ctx, userID, feature)
	}

	if err != nil {
		return 0, err
	}

	return used, nil
}

// reports plan state and usage for every feature
func (l *Ledger) Usage(ctx context.Context, userID string) (*Summary, error) {
	profile, err := l.current(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan := l.EffectivePlan(profile)
	summary := &Summary{
		Plan:          plan,
		StoredPlan:    profile.PlanType,
		ValidUntil:    profile.ValidUntil,
		LastResetDate: profile.LastResetDate,
		Features:      make([]FeatureUsage, 0, len(profiles.Features)),
	}

	for _, f := range profiles.Features {
		limit := Limit(plan, f)
		used := profile.Usage(f)

		summary.Features = append(summary.Features, FeatureUsage{
			Feature:   f,
			Used:      used,
			Limit:     limit,
			Remaining: max(0, limit-used),
		})
	}

	return summary, nil
}

// plus only counts while its validity window is open
func (l *Ledger) EffectivePlan(p *profiles.Profile) string {
	if p.PlanType != profiles.PlanPlus {
		return profiles.PlanFree
	}

	if p.ValidUntil != nil && !p.ValidUntil.After(l.now()) {
		return profiles.PlanFree
	}

	return profiles.PlanPlus
}

// loads the profile with the monthly reset applied and persisted
func (l *Ledger) current(ctx context.Context, userID string) (*profiles.Profile, error) {
	profile, err := l.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := l.now().UTC()
	if sameMonth(profile.LastResetDate.UTC(), now) {
		return profile, nil
	}

	profile, err = l.store.ResetUsage(ctx, userID, now, monthStart(now))
	if err != nil {
		return nil, err
	}

	logger.Debug("monthly usage reset", "user_id", userID)
	return profile, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
