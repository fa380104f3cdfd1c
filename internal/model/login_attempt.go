package model

import (
	"strings"
	"time"
)

// MaxLoginAttempts is the number of consecutive failures that deactivates an email.
const MaxLoginAttempts = 3

type LoginAttemptRecord struct {
	Email         string     `json:"email"`
	Attempts      int        `json:"attempts"`
	IsDeactivated bool       `json:"is_deactivated"`
	LastAttempt   *time.Time `json:"last_attempt,omitempty"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
	ReactivatedAt *time.Time `json:"reactivated_at,omitempty"`
}

// RemainingAttempts never goes below zero.
func (r LoginAttemptRecord) RemainingAttempts() int {
	remaining := MaxLoginAttempts - r.Attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AccountStatus struct {
	Email             string `json:"email"`
	IsDeactivated     bool   `json:"is_deactivated"`
	RemainingAttempts int    `json:"remaining_attempts"`
	Message           string `json:"message,omitempty"`
	ContactEmail      string `json:"contact_email,omitempty"`
}
