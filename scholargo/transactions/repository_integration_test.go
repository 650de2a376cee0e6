//go:build integration

package transactions

import (
	"context"
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

	create := func(t *testing.T, externalID string) *Transaction {
		t.Helper()

		tx, err := repo.Create(ctx, CreateParams{
			ExternalID:  externalID,
			UserID:      testUser,
			PlanType:    "plus",
			Amount:      49000,
			Gateway:     "midtrans",
			PaymentLink: "https://pay.example/" + externalID,
		})
		require.NoError(t, err)

		return tx
	}

	t.Run("create starts pending", func(t *testing.T) {
		dbtest.Truncate(t, pool, "transactions")

		tx := create(t, "ORDER-11111111-1")

		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, StatusPending, tx.Status)
		assert.False(t, tx.Final)
		assert.Nil(t, tx.GrantedAt)
		assert.Equal(t, int64(49000), tx.Amount)
	})

	t.Run("duplicate external id", func(t *testing.T) {
		dbtest.Truncate(t, pool, "transactions")

		create(t, "ORDER-11111111-2")

		_, err := repo.Create(ctx, CreateParams{
			ExternalID: "ORDER-11111111-2",
			UserID:     testUser,
			PlanType:   "plus",
			Amount:     49000,
			Gateway:    "midtrans",
		})
		assert.ErrorIs(t, err, ErrDuplicateExternalID)
	})

	t.Run("final rows never move", func(t *testing.T) {
		dbtest.Truncate(t, pool, "transactions")

		create(t, "ORDER-11111111-3")

		applied, err := repo.Transition(ctx, "ORDER-11111111-3", "pending", false)
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = repo.Transition(ctx, "ORDER-11111111-3", "settlement", true)
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = repo.Transition(ctx, "ORDER-11111111-3", "expire", true)
		require.NoError(t, err)
		assert.False(t, applied)

		tx, err := repo.FindByExternalID(ctx, "ORDER-11111111-3")
		require.NoError(t, err)
		assert.Equal(t, "settlement", tx.Status)
		assert.True(t, tx.Final)
	})

	t.Run("transition on unknown id changes nothing", func(t *testing.T) {
		dbtest.Truncate(t, pool, "transactions")

		applied, err := repo.Transition(ctx, "ORDER-missing", "settlement", true)
		require.NoError(t, err)
		assert.False(t, applied)

		_, err = repo.FindByExternalID(ctx, "ORDER-missing")
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("grant is recorded once", func(t *testing.T) {
		dbtest.Truncate(t, pool, "transactions")

		create(t, "ORDER-11111111-4")
		first := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

		marked, err := repo.MarkGranted(ctx, "ORDER-11111111-4", first)
		require.NoError(t, err)
		assert.True(t, marked)

		marked, err = repo.MarkGranted(ctx, "ORDER-11111111-4", first.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, marked)

		tx, err := repo.FindByExternalID(ctx, "ORDER-11111111-4")
		require.NoError(t, err)
		require.NotNil(t, tx.GrantedAt)
		assert.True(t, first.Equal(*tx.GrantedAt))
	})

	t.Run("history is newest first and scoped to the user", func(t *testing.T) {
		dbtest.Truncate(t, pool, "transactions")

		create(t, "ORDER-11111111-5")
		create(t, "ORDER-11111111-6")

		_, err := repo.Create(ctx, CreateParams{
			ExternalID: "ORDER-99999999-1",
			UserID:     "99999999-2222-3333-4444-555555555555",
			PlanType:   "plus",
			Amount:     49000,
			Gateway:    "xendit",
		})
		require.NoError(t, err)

		list, err := repo.ListByUser(ctx, testUser)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "ORDER-11111111-6", list[0].ExternalID)
		assert.Equal(t, "ORDER-11111111-5", list[1].ExternalID)
	})
}
