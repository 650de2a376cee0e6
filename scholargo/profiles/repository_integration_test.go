//go:build integration

package profiles

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/scholargo/server/internal/database/dbtest"
)

const testUser = "11111111-2222-3333-4444-555555555555"

func TestRepository(t *testing.T) {
	pool := dbtest.NewPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	march := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("create is idempotent", func(t *testing.T) {
		dbtest.Truncate(t, pool, "profiles")

		p, err := repo.Create(ctx, testUser, march)
		require.NoError(t, err)
		assert.Equal(t, PlanFree, p.PlanType)
		assert.True(t, march.Equal(p.LastResetDate))

		_, err = repo.IncrementUsage(ctx, testUser, FeatureChat)
		require.NoError(t, err)

		again, err := repo.Create(ctx, testUser, march.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, again.UsageChat)
		assert.True(t, march.Equal(again.LastResetDate))
	})

	t.Run("missing profile", func(t *testing.T) {
		dbtest.Truncate(t, pool, "profiles")

		_, err := repo.FindByID(ctx, testUser)
		assert.ErrorIs(t, err, ErrProfileNotFound)

		_, err = repo.IncrementUsage(ctx, testUser, FeatureChat)
		assert.ErrorIs(t, err, ErrProfileNotFound)

		_, err = repo.IncrementUsage(ctx, testUser, Feature("video_review"))
		assert.Error(t, err)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		dbtest.Truncate(t, pool, "profiles")

		_, err := repo.Create(ctx, testUser, march)
		require.NoError(t, err)

		const n = 20

		var wg sync.WaitGroup
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.IncrementUsage(ctx, testUser, FeatureDeepReview)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		p, err := repo.FindByID(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, n, p.UsageDeepReview)
		assert.Zero(t, p.UsageChat)
	})

	t.Run("reset only when the last reset predates the period", func(t *testing.T) {
		dbtest.Truncate(t, pool, "profiles")

		february := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
		_, err := repo.Create(ctx, testUser, february)
		require.NoError(t, err)

		for _, f := range Features {
			_, err := repo.IncrementUsage(ctx, testUser, f)
			require.NoError(t, err)
		}

		periodStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		p, err := repo.ResetUsage(ctx, testUser, march, periodStart)
		require.NoError(t, err)
		for _, f := range Features {
			assert.Zero(t, p.Usage(f), f)
		}
		assert.True(t, march.Equal(p.LastResetDate))

		_, err = repo.IncrementUsage(ctx, testUser, FeatureChat)
		require.NoError(t, err)

		// a second check in the same period returns the stored row untouched
		p, err = repo.ResetUsage(ctx, testUser, march.Add(time.Minute), periodStart)
		require.NoError(t, err)
		assert.Equal(t, 1, p.UsageChat)
		assert.True(t, march.Equal(p.LastResetDate))
	})

	t.Run("grant plan upserts", func(t *testing.T) {
		dbtest.Truncate(t, pool, "profiles")

		until := march.AddDate(0, 1, 0)
		require.NoError(t, repo.GrantPlan(ctx, testUser, PlanPlus, until))

		p, err := repo.FindByID(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, PlanPlus, p.PlanType)
		require.NotNil(t, p.ValidUntil)
		assert.True(t, until.Equal(*p.ValidUntil))

		_, err = repo.IncrementUsage(ctx, testUser, FeaturePDFAnalysis)
		require.NoError(t, err)

		later := until.AddDate(0, 1, 0)
		require.NoError(t, repo.GrantPlan(ctx, testUser, PlanPlus, later))

		p, err = repo.FindByID(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, 1, p.UsagePDFAnalysis)
		assert.True(t, later.Equal(*p.ValidUntil))
	})
}
