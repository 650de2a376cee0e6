package quota

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/quota"
)

// in-memory profile store so the real ledger runs behind the handlers
type memoryStore struct {
	profiles map[string]*profiles.Profile
}

func (m *memoryStore) FindByID(_ context.Context, id string) (*profiles.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, profiles.ErrProfileNotFound
	}

	copied := *p
	return &copied, nil
}

func (m *memoryStore) Create(ctx context.Context, id string, now time.Time) (*profiles.Profile, error) {
	if _, ok := m.profiles[id]; !ok {
		m.profiles[id] = &profiles.Profile{ID: id, PlanType: profiles.PlanFree, LastResetDate: now}
	}

	return m.FindByID(ctx, id)
}

func (m *memoryStore) ResetUsage(ctx context.Context, id string, now, _ time.Time) (*profiles.Profile, error) {
	p := m.profiles[id]
	p.UsagePDFAnalysis, p.UsageChat, p.UsageDeepReview = 0, 0, 0
	p.LastResetDate = now

	return m.FindByID(ctx, id)
}

func (m *memoryStore) IncrementUsage(_ context.Context, id string, f profiles.Feature) (int, error) {
	p := m.profiles[id]
	p.SetUsage(f, p.Usage(f)+1)

	return p.Usage(f), nil
}

func newRouter(t *testing.T, store *memoryStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)
	ledger := quota.NewLedger(store, quota.WithClock(func() time.Time { return now }))

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	}, ledger)

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetUsage(t *testing.T) {
	store := &memoryStore{profiles: map[string]*profiles.Profile{
		"user-1": {
			ID:            "user-1",
			PlanType:      profiles.PlanFree,
			UsageChat:     5,
			LastResetDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		},
	}}

	w := get(newRouter(t, store), "/api/v1/quota")
	require.Equal(t, http.StatusOK, w.Code)

	var summary quota.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))

	assert.Equal(t, profiles.PlanFree, summary.Plan)
	require.Len(t, summary.Features, 3)
	assert.Equal(t, profiles.FeatureChat, summary.Features[1].Feature)
	assert.Equal(t, 5, summary.Features[1].Used)
	assert.Equal(t, 15, summary.Features[1].Remaining)
}

func TestGetUsage_CreatesProfile(t *testing.T) {
	store := &memoryStore{profiles: map[string]*profiles.Profile{}}

	w := get(newRouter(t, store), "/api/v1/quota")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, store.profiles, "user-1")
}

func TestCheckQuota(t *testing.T) {
	store := &memoryStore{profiles: map[string]*profiles.Profile{
		"user-1": {
			ID:               "user-1",
			PlanType:         profiles.PlanFree,
			UsagePDFAnalysis: 3,
			LastResetDate:    time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		},
	}}
	router := newRouter(t, store)

	w := get(router, "/api/v1/quota/pdf_analysis")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Feature   string `json:"feature"`
		Allowed   bool   `json:"allowed"`
		Remaining int    `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pdf_analysis", resp.Feature)
	assert.False(t, resp.Allowed)
	assert.Zero(t, resp.Remaining)

	w = get(router, "/api/v1/quota/essays")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
