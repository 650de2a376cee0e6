package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHelpers_StatusAndCode(t *testing.T) {
	testCases := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		code   string
	}{
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized, CodeUnauthorized},
		{"quota", func(c *gin.Context) { QuotaExceeded(c, "") }, http.StatusPaymentRequired, CodeQuotaExceeded},
		{"timeout", func(c *gin.Context) { Timeout(c, "") }, http.StatusGatewayTimeout, CodeTimeout},
		{"cancelled", Cancelled, StatusClientClosedRequest, CodeRequestCancelled},
		{"signature", InvalidSignature, http.StatusUnauthorized, CodeInvalidSignature},
		{"not found", func(c *gin.Context) { NotFound(c, "transaction") }, http.StatusNotFound, CodeNotFound},
		{"upstream keeps status", func(c *gin.Context) { Upstream(c, 429, "", fmt.Errorf("rate limited")) }, 429, CodeUpstreamError},
		{"upstream defaults to 502", func(c *gin.Context) { Upstream(c, 0, "", fmt.Errorf("boom")) }, http.StatusBadGateway, CodeUpstreamError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext()
			tc.call(c)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decode(t, w).Error)
		})
	}
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, CategoryNotFound, classifyError(pgx.ErrNoRows, false).category)
	assert.Equal(t, CategoryTimeout, classifyError(context.DeadlineExceeded, false).category)
	assert.Equal(t, CategoryNetwork, classifyError(fmt.Errorf("dial tcp: refused"), false).category)

	info := classifyError(fmt.Errorf("postgres exploded at row 7"), true)
	assert.Equal(t, CategoryDatabase, info.category)
	assert.Equal(t, "database operation failed", info.sanitized)

	info = classifyError(fmt.Errorf("postgres exploded at row 7"), false)
	assert.Equal(t, "postgres exploded at row 7", info.sanitized)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3f1c2a9e-8d7b-4c6a-9e5f-1a2b3c4d5e6f"))
	assert.True(t, IsValidUUID("3F1C2A9E-8D7B-4C6A-9E5F-1A2B3C4D5E6F"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
}
