package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lost-and-found/internal/model"
	"lost-and-found/internal/repository/memory"
	"lost-and-found/pkg/apierror"
)

type authFixture struct {
	*fixture
	users  *memory.UserStore
	tokens *memory.TokenStore
	guard  *LoginGuard
	auth   *AuthService
}

func newAuthFixture() *authFixture {
	f := newFixture()
	af := &authFixture{
		fixture: f,
		users:   memory.NewUserStore(),
		tokens:  memory.NewTokenStore(),
	}
	af.guard = NewLoginGuard(f.attempts, f.bus, "lostfound@uni.edu")
	af.auth = NewAuthService(af.users, af.tokens, af.guard, AuthConfig{
		JWTSecret:   "test-secret",
		AccessTTL:   15 * time.Minute,
		RefreshTTL:  time.Hour,
		AdminEmails: []string{"Admin@Uni.edu"},
		BcryptCost:  bcrypt.MinCost,
	})
	return af
}

func (af *authFixture) register(t *testing.T, email, password, name string) model.TokenPair {
	t.Helper()
	pair, err := af.auth.Register(context.Background(), model.RegisterRequest{Email: email, Password: password, DisplayName: name})
	require.NoError(t, err)
	return pair
}

func requireAPIError(t *testing.T, err error, code string, status int) *apierror.APIError {
	t.Helper()
	apiErr, ok := apierror.As(err)
	require.True(t, ok, "expected APIError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
	assert.Equal(t, status, apiErr.HTTPStatus)
	return apiErr
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("issues tokens and assigns role", func(t *testing.T) {
		af := newAuthFixture()
		pair := af.register(t, "maria@uni.edu", "secret1", "Maria")
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, model.RoleUser, pair.User.Role)

		admin := af.register(t, "admin@uni.edu", "secret1", "Admin")
		assert.Equal(t, model.RoleAdmin, admin.User.Role)

		claims, err := af.auth.ValidateToken(pair.AccessToken, "access")
		require.NoError(t, err)
		assert.Equal(t, pair.User.ID, claims.UserID)
		assert.Equal(t, "Maria", claims.Name)
	})

	tests := []struct {
		name    string
		req     model.RegisterRequest
		code    string
		status  int
		message string
	}{
		{"missing name", model.RegisterRequest{Email: "a@uni.edu", Password: "secret1"}, "NAME_REQUIRED", http.StatusBadRequest, "Please enter your name"},
		{"invalid email", model.RegisterRequest{Email: "not-an-email", Password: "secret1", DisplayName: "A"}, "INVALID_EMAIL", http.StatusBadRequest, "Please enter a valid email address."},
		{"weak password", model.RegisterRequest{Email: "a@uni.edu", Password: "12345", DisplayName: "A"}, "WEAK_PASSWORD", http.StatusBadRequest, "Password should be at least 6 characters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			af := newAuthFixture()
			_, err := af.auth.Register(ctx, tt.req)
			apiErr := requireAPIError(t, err, tt.code, tt.status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}

	t.Run("duplicate email does not count as an attempt", func(t *testing.T) {
		af := newAuthFixture()
		af.register(t, "maria@uni.edu", "secret1", "Maria")

		_, err := af.auth.Register(ctx, model.RegisterRequest{Email: "MARIA@uni.edu", Password: "secret2", DisplayName: "M"})
		apiErr := requireAPIError(t, err, "EMAIL_IN_USE", http.StatusConflict)
		assert.Equal(t, "This email is already registered.", apiErr.Message)
		assert.Equal(t, model.MaxLoginAttempts, af.guard.Status(ctx, "maria@uni.edu").RemainingAttempts)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success resets attempts", func(t *testing.T) {
		af := newAuthFixture()
		af.register(t, "maria@uni.edu", "secret1", "Maria")

		_, err := af.auth.Login(ctx, "maria@uni.edu", "wrong")
		require.Error(t, err)
		assert.Equal(t, model.MaxLoginAttempts-1, af.guard.Status(ctx, "maria@uni.edu").RemainingAttempts)

		pair, err := af.auth.Login(ctx, " Maria@Uni.edu ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "maria@uni.edu", pair.User.Email)
		assert.Equal(t, model.MaxLoginAttempts, af.guard.Status(ctx, "maria@uni.edu").RemainingAttempts)
	})

	t.Run("failure messages count down then deactivate", func(t *testing.T) {
		af := newAuthFixture()
		af.register(t, "maria@uni.edu", "secret1", "Maria")

		_, err := af.auth.Login(ctx, "maria@uni.edu", "wrong")
		apiErr := requireAPIError(t, err, "INVALID_CREDENTIALS", http.StatusUnauthorized)
		assert.Equal(t, "Invalid email or password. (2 attempts remaining)", apiErr.Message)

		_, err = af.auth.Login(ctx, "maria@uni.edu", "wrong")
		apiErr = requireAPIError(t, err, "INVALID_CREDENTIALS", http.StatusUnauthorized)
		assert.Equal(t, "Invalid email or password. (1 attempt remaining)", apiErr.Message)

		_, err = af.auth.Login(ctx, "maria@uni.edu", "wrong")
		apiErr = requireAPIError(t, err, "ACCOUNT_DEACTIVATED", http.StatusForbidden)
		assert.Equal(t, af.guard.DeactivationMessage(), apiErr.Message)
		assert.Equal(t, "lostfound@uni.edu", apiErr.Details)

		// the right password no longer helps
		_, err = af.auth.Login(ctx, "maria@uni.edu", "secret1")
		requireAPIError(t, err, "ACCOUNT_DEACTIVATED", http.StatusForbidden)

		require.NoError(t, af.guard.Reactivate(ctx, adminActor, "maria@uni.edu"))
		_, err = af.auth.Login(ctx, "maria@uni.edu", "secret1")
		require.NoError(t, err)
	})

	t.Run("unknown user counts as failure", func(t *testing.T) {
		af := newAuthFixture()
		_, err := af.auth.Login(ctx, "ghost@uni.edu", "whatever")
		requireAPIError(t, err, "INVALID_CREDENTIALS", http.StatusUnauthorized)
		assert.Equal(t, model.MaxLoginAttempts-1, af.guard.Status(ctx, "ghost@uni.edu").RemainingAttempts)
	})

	t.Run("invalid email", func(t *testing.T) {
		af := newAuthFixture()
		_, err := af.auth.Login(ctx, "ghost", "whatever")
		requireAPIError(t, err, "INVALID_EMAIL", http.StatusBadRequest)
	})
}

func TestAuthService_RefreshRotation(t *testing.T) {
	ctx := context.Background()
	af := newAuthFixture()
	pair := af.register(t, "maria@uni.edu", "secret1", "Maria")

	_, err := af.auth.Refresh(ctx, pair.AccessToken)
	requireAPIError(t, err, "UNAUTHORIZED", http.StatusUnauthorized)

	next, err := af.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = af.auth.Refresh(ctx, pair.RefreshToken)
	requireAPIError(t, err, "UNAUTHORIZED", http.StatusUnauthorized)

	require.NoError(t, af.auth.Logout(ctx, next.RefreshToken))
	_, err = af.auth.Refresh(ctx, next.RefreshToken)
	requireAPIError(t, err, "UNAUTHORIZED", http.StatusUnauthorized)
}

func TestAuthService_ValidateToken(t *testing.T) {
	af := newAuthFixture()
	pair := af.register(t, "maria@uni.edu", "secret1", "Maria")

	_, err := af.auth.ValidateToken(pair.RefreshToken, "access")
	assert.Error(t, err)

	_, err = af.auth.ValidateToken("garbage", "access")
	assert.Error(t, err)

	other := NewAuthService(af.users, af.tokens, af.guard, AuthConfig{JWTSecret: "different", AccessTTL: time.Minute, RefreshTTL: time.Minute})
	_, err = other.ValidateToken(pair.AccessToken, "access")
	assert.Error(t, err)

	me, err := af.auth.Me(context.Background(), pair.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", me.DisplayName)
}

func TestLoginMessage(t *testing.T) {
	assert.Equal(t, "Invalid email or password.", LoginMessage(KindWrongPassword, 0))
	assert.Equal(t, "Invalid email or password. (2 attempts remaining)", LoginMessage(KindUserNotFound, 2))
	assert.Equal(t, "Please enter a valid email address. (1 attempt remaining)", LoginMessage(KindInvalidEmail, 1))
	assert.Equal(t, "Something went wrong. Please try again.", LoginMessage(KindInternal, 0))
	assert.Equal(t, "Something went wrong. Please try again.", RegisterMessage("unexpected"))
}
