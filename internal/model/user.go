package model

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Name resolves the name shown in claims and the activity log.
func (u User) Name() string {
	return DisplayNameFor(u.DisplayName, u.Email, "User")
}

// DisplayNameFor prefers the display name, then the email local part, then fallback.
func DisplayNameFor(displayName string, email string, fallback string) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(email), "@"); ok && local != "" {
		return local
	}
	return fallback
}

type AuthClaims struct {
	UserID  string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Type    string `json:"typ"`
	TokenID string `json:"jti"`
}

func (c *AuthClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

func (c *AuthClaims) Actor() Actor {
	if c == nil {
		return Actor{UserID: "unknown", UserName: "Unknown User"}
	}
	return Actor{UserID: c.UserID, UserName: c.Name, Role: c.Role}
}

type AuthUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (u User) AuthUser() AuthUser {
	return AuthUser{ID: u.ID, Email: u.Email, DisplayName: u.Name(), Role: u.Role}
}

type TokenPair struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	User         AuthUser `json:"user"`
}
