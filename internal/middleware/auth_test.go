package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lost-and-found/internal/model"
)

type stubValidator map[string]*model.AuthClaims

func (s stubValidator) ValidateToken(token string, expectedType string) (*model.AuthClaims, error) {
	if expectedType != "access" {
		return nil, errors.New("wrong type")
	}
	claims, ok := s[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func newTestAuth() *AuthMiddleware {
	return NewAuthMiddleware(stubValidator{
		"user-token":  {UserID: "u1", Role: model.RoleUser},
		"admin-token": {UserID: "a1", Role: model.RoleAdmin},
	})
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		_, _ = w.Write([]byte("anonymous"))
		return
	}
	_, _ = w.Write([]byte(claims.UserID))
}

func TestRequireAuth(t *testing.T) {
	handler := newTestAuth().RequireAuth(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid token", "Bearer user-token", http.StatusOK, "u1"},
		{"case-insensitive scheme", "bearer admin-token", http.StatusOK, "a1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/mine", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"UNAUTHORIZED"`)
			}
		})
	}
}

func TestRequireAuth_WebsocketQueryToken(t *testing.T) {
	handler := newTestAuth().RequireAuth(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?access_token=admin-token", nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "a1", rec.Body.String())

	// ordinary requests may not use the query parameter
	req = httptest.NewRequest(http.MethodGet, "/api/v1/items?access_token=admin-token", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	handler := newTestAuth().RequireAdmin(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/pending", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"FORBIDDEN"`)

	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1", rec.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	handler := newTestAuth().OptionalAuth(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "anonymous", rec.Body.String())

	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "anonymous", rec.Body.String())

	req.Header.Set("Authorization", "Bearer user-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "u1", rec.Body.String())
}
