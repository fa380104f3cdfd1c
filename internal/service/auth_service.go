package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lost-and-found/internal/model"
	"lost-and-found/pkg/apierror"
)

const minPasswordLength = 6

// AuthErrorKind classifies credential failures the way the sign-in form reports them.
type AuthErrorKind string

const (
	KindInvalidCredential AuthErrorKind = "invalid-credential"
	KindUserNotFound      AuthErrorKind = "user-not-found"
	KindWrongPassword     AuthErrorKind = "wrong-password"
	KindWeakPassword      AuthErrorKind = "weak-password"
	KindInvalidEmail      AuthErrorKind = "invalid-email"
	KindEmailInUse        AuthErrorKind = "email-already-in-use"
	KindMissingName       AuthErrorKind = "missing-display-name"
	KindInternal          AuthErrorKind = "internal"
)

type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %v", e.Kind, e.Err)
	}
	return "auth " + string(e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

func authKind(err error) AuthErrorKind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return KindInternal
}

// LoginMessage renders a sign-in failure, with the remaining attempts appended when
// any are left.
func LoginMessage(kind AuthErrorKind, remaining int) string {
	var msg string
	switch kind {
	case KindUserNotFound, KindWrongPassword, KindInvalidCredential:
		msg = "Invalid email or password."
	case KindInvalidEmail:
		msg = "Please enter a valid email address."
	default:
		msg = "Something went wrong. Please try again."
	}

	if remaining > 0 {
		plural := "s"
		if remaining == 1 {
			plural = ""
		}
		msg += fmt.Sprintf(" (%d attempt%s remaining)", remaining, plural)
	}
	return msg
}

func RegisterMessage(kind AuthErrorKind) string {
	switch kind {
	case KindEmailInUse:
		return "This email is already registered."
	case KindWeakPassword:
		return "Password should be at least 6 characters."
	case KindInvalidEmail:
		return "Please enter a valid email address."
	case KindMissingName:
		return "Please enter your name"
	default:
		return "Something went wrong. Please try again."
	}
}

type AuthConfig struct {
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	AdminEmails []string
	BcryptCost  int
}

type AuthService struct {
	users      UserStore
	tokens     TokenStore
	guard      *LoginGuard
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	admins     map[string]struct{}
	cost       int
	now        func() time.Time
}

func NewAuthService(users UserStore, tokens TokenStore, guard *LoginGuard, cfg AuthConfig) *AuthService {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[model.NormalizeEmail(email)] = struct{}{}
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = 12
	}

	return &AuthService{
		users:      users,
		tokens:     tokens,
		guard:      guard,
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		admins:     admins,
		cost:       cost,
		now:        time.Now,
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email, ".")
}

// Authenticate checks credentials only. It does not touch the attempt counter.
func (s *AuthService) Authenticate(ctx context.Context, email string, password string) (model.User, error) {
	email = model.NormalizeEmail(email)
	if !validEmail(email) {
		return model.User{}, &AuthError{Kind: KindInvalidEmail}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, &AuthError{Kind: KindUserNotFound}
	}
	if err != nil {
		return model.User{}, &AuthError{Kind: KindInternal, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, &AuthError{Kind: KindWrongPassword}
	}
	return user, nil
}

// Login runs the guarded sign-in: deactivated emails are refused up front, failures
// are counted, and a success clears the counter.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	email = model.NormalizeEmail(email)

	if s.guard.IsDeactivated(ctx, email) {
		return model.TokenPair{}, s.deactivatedError()
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		kind := authKind(err)
		if kind == KindInternal {
			slog.Error("sign-in failed", "email", email, "error", err)
		}

		remaining, deactivated := s.guard.RecordFailure(ctx, email)
		if deactivated {
			return model.TokenPair{}, s.deactivatedError()
		}

		status := http.StatusUnauthorized
		code := "INVALID_CREDENTIALS"
		switch kind {
		case KindInvalidEmail:
			status, code = http.StatusBadRequest, "INVALID_EMAIL"
		case KindInternal:
			status, code = http.StatusInternalServerError, "AUTH_FAILED"
		}
		return model.TokenPair{}, apierror.Wrap(err, code, LoginMessage(kind, remaining), status)
	}

	s.guard.RecordSuccess(ctx, email)
	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) deactivatedError() error {
	return apierror.New("ACCOUNT_DEACTIVATED", s.guard.DeactivationMessage(), s.guard.ContactEmail(), http.StatusForbidden)
}

// Register creates a user. Registration failures never count as sign-in attempts.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.TokenPair, error) {
	email := model.NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.DisplayName)

	fail := func(kind AuthErrorKind, status int, code string, cause error) (model.TokenPair, error) {
		return model.TokenPair{}, apierror.Wrap(&AuthError{Kind: kind, Err: cause}, code, RegisterMessage(kind), status)
	}

	if name == "" {
		return fail(KindMissingName, http.StatusBadRequest, "NAME_REQUIRED", nil)
	}
	if !validEmail(email) {
		return fail(KindInvalidEmail, http.StatusBadRequest, "INVALID_EMAIL", nil)
	}
	if len(req.Password) < minPasswordLength {
		return fail(KindWeakPassword, http.StatusBadRequest, "WEAK_PASSWORD", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return fail(KindInternal, http.StatusInternalServerError, "AUTH_FAILED", err)
	}

	role := model.RoleUser
	if _, ok := s.admins[email]; ok {
		role = model.RoleAdmin
	}

	now := s.now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return fail(KindEmailInUse, http.StatusConflict, "EMAIL_IN_USE", err)
		}
		return fail(KindInternal, http.StatusInternalServerError, "AUTH_FAILED", err)
	}

	slog.Info("user registered", "user_id", user.ID, "role", role)
	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, "refresh")
	if err != nil {
		return model.TokenPair{}, err
	}

	hash := hashToken(refreshToken)
	ownerID, err := s.tokens.Validate(ctx, hash)
	if err != nil || ownerID != claims.UserID {
		return model.TokenPair{}, apierror.New("UNAUTHORIZED", "refresh token is invalid", "", http.StatusUnauthorized)
	}
	if err := s.tokens.Revoke(ctx, hash); err != nil {
		return model.TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return model.TokenPair{}, apierror.New("UNAUTHORIZED", "user not found", "", http.StatusUnauthorized)
	}

	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, hashToken(refreshToken))
}

func (s *AuthService) ValidateToken(tokenString string, expectedType string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.New("UNAUTHORIZED", "invalid token signing method", "", http.StatusUnauthorized)
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.New("UNAUTHORIZED", "invalid token", "", http.StatusUnauthorized)
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.New("UNAUTHORIZED", "invalid token claims", "", http.StatusUnauthorized)
	}

	typ, _ := claimsMap["typ"].(string)
	if expectedType != "" && typ != expectedType {
		return nil, apierror.New("UNAUTHORIZED", "invalid token type", "", http.StatusUnauthorized)
	}

	claims := &model.AuthClaims{Type: typ}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.Name, _ = claimsMap["name"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.UserID == "" {
		return nil, apierror.New("UNAUTHORIZED", "invalid token subject", "", http.StatusUnauthorized)
	}

	return claims, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("load user %s: %w", userID, err)
	}
	return user.AuthUser(), nil
}

// CleanExpiredTokens is run by the housekeeping scheduler.
func (s *AuthService) CleanExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.CleanExpired(ctx)
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User) (model.TokenPair, error) {
	now := s.now().UTC()
	base := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name(),
		"role":  user.Role,
		"iat":   now.Unix(),
	}

	access := cloneClaims(base)
	access["typ"] = "access"
	access["jti"] = uuid.NewString()
	access["exp"] = now.Add(s.accessTTL).Unix()
	accessToken, err := s.signToken(access)
	if err != nil {
		return model.TokenPair{}, err
	}

	refresh := cloneClaims(base)
	refresh["typ"] = "refresh"
	refresh["jti"] = uuid.NewString()
	refresh["exp"] = now.Add(s.refreshTTL).Unix()
	refreshToken, err := s.signToken(refresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.tokens.Store(ctx, hashToken(refreshToken), user.ID, now.Add(s.refreshTTL)); err != nil {
		return model.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         user.AuthUser(),
	}, nil
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func cloneClaims(in jwt.MapClaims) jwt.MapClaims {
	out := make(jwt.MapClaims, len(in)+3)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
