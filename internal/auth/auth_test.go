package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestVerify_ValidToken(t *testing.T) {
	v := NewVerifier(testSecret)

	token, err := v.Sign("user-123", "test@example.com", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")

	identity, err := v.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", identity.UserID)
	assert.Equal(t, "test@example.com", identity.Email)
}

func TestVerify_ExpiredToken(t *testing.T) {
	v := NewVerifier(testSecret)

	token, err := v.Sign("user-123", "test@example.com", -time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.Error(t, err, "expired token should be rejected")
}

func TestVerify_MissingExpiry(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).Verify(token)
	assert.Error(t, err)
}

func TestVerify_MissingSubject(t *testing.T) {
	v := NewVerifier(testSecret)

	token, err := v.Sign("", "test@example.com", time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewVerifier(testSecret).Sign("user-123", "test@example.com", time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("different-secret-key").Verify(token)
	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestVerify_AlgorithmConfusionAttack(t *testing.T) {
	claims := Claims{
		Email: "attacker@evil.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "attacker",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType) //nolint:errcheck // test code

	_, err := NewVerifier(testSecret).Verify(tokenString)
	assert.Error(t, err, "token with 'none' algorithm should be rejected")
}

func TestVerify_MalformedToken(t *testing.T) {
	v := NewVerifier(testSecret)

	malformedTokens := []string{
		"",
		"not.a.jwt",
		"only.two",
		"too.many.parts.in.this.token",
		"<script>alert('xss')</script>",
	}

	for _, token := range malformedTokens {
		_, err := v.Verify(token)
		assert.Error(t, err, "malformed token '%s' should be rejected", token)
	}
}

func TestVerify_EmptySecret(t *testing.T) {
	_, err := NewVerifier("").Sign("user-123", "", time.Hour)
	assert.Error(t, err)

	_, err = NewVerifier("").Verify("a.b.c")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := NewVerifier(testSecret)

	router := gin.New()
	router.GET("/me", Middleware(v), func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		require.True(t, ok)
		c.String(http.StatusOK, identity.UserID+"|"+identity.Email)
	})

	token, err := v.Sign("user-123", "test@example.com", time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "user-123|test@example.com", w.Body.String())
			}
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)
}
