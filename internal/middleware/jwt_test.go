package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub-app/backend/internal/config"
	"github.com/eventhub-app/backend/internal/middleware"
	"github.com/eventhub-app/backend/internal/store/memory"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := middleware.GenerateToken(userID, "alice@example.com", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := middleware.ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = -time.Minute

	token, err := middleware.GenerateToken(uuid.New(), "alice@example.com", cfg)
	require.NoError(t, err)

	_, err = middleware.ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := middleware.GenerateToken(uuid.New(), "alice@example.com", cfg)
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "other-secret"
	_, err = middleware.ValidateToken(token, other)
	assert.Error(t, err)
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"bearer abc123", "abc123", true},
		{"Bearer  abc123", "abc123", true},
		{"abc123", "", false},
		{"", "", false},
		{"Basic abc123", "", false},
		{"Bearer", "", false},
		{"Bearer a b", "", false},
	}

	for _, tt := range tests {
		token, ok := middleware.TokenFromHeader(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.token, token, "header %q", tt.header)
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	st := memory.New()
	userID := uuid.New()

	var gotClaims *middleware.JWTClaims
	next := func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = middleware.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
	handler := middleware.AuthMiddleware(next, cfg, st.Tokens())

	// No Authorization header.
	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Malformed header.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "garbage")
	rr = httptest.NewRecorder()
	handler(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Bad token.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr = httptest.NewRecorder()
	handler(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Valid token reaches the handler with claims in context.
	token, err := middleware.GenerateToken(userID, "alice@example.com", cfg)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	handler(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, userID, gotClaims.UserID)

	// Revoking the jti locks the same token out.
	require.NoError(t, st.Tokens().Block(context.Background(), gotClaims.ID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	handler(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := middleware.UserIDFromContext(context.Background())
	assert.False(t, ok)
}
