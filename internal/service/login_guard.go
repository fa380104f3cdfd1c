package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"lost-and-found/internal/event"
	"lost-and-found/internal/model"
)

const DeactivatedMessage = "This account has been deactivated due to multiple failed login attempts."

// LoginGuard counts consecutive failed sign-ins per email and deactivates the email
// at model.MaxLoginAttempts. Store errors fail open: the user is treated as active
// with zero attempts, so an outage never locks anyone out.
type LoginGuard struct {
	store        LoginAttemptStore
	bus          event.Bus
	contactEmail string
	now          func() time.Time
	warn         rate.Sometimes
}

func NewLoginGuard(store LoginAttemptStore, bus event.Bus, contactEmail string) *LoginGuard {
	if bus == nil {
		bus = event.Nop{}
	}
	return &LoginGuard{
		store:        store,
		bus:          bus,
		contactEmail: contactEmail,
		now:          time.Now,
		warn:         rate.Sometimes{First: 3, Interval: 30 * time.Second},
	}
}

func (g *LoginGuard) failOpen(op string, email string, err error) {
	guardStoreErrors.WithLabelValues(op).Inc()
	g.warn.Do(func() {
		slog.Warn("login guard store error, failing open", "op", op, "email", email, "error", err)
	})
}

func (g *LoginGuard) record(ctx context.Context, email string) model.LoginAttemptRecord {
	rec, err := g.store.Get(ctx, email)
	if err != nil {
		g.failOpen("get", email, err)
		return model.LoginAttemptRecord{Email: model.NormalizeEmail(email)}
	}
	return rec
}

func (g *LoginGuard) IsDeactivated(ctx context.Context, email string) bool {
	return g.record(ctx, email).IsDeactivated
}

// Status is the pre-flight answer for the sign-in form.
func (g *LoginGuard) Status(ctx context.Context, email string) model.AccountStatus {
	rec := g.record(ctx, email)
	status := model.AccountStatus{
		Email:             model.NormalizeEmail(email),
		IsDeactivated:     rec.IsDeactivated,
		RemainingAttempts: rec.RemainingAttempts(),
	}
	if rec.IsDeactivated {
		status.RemainingAttempts = 0
		status.Message = g.DeactivationMessage()
		status.ContactEmail = g.ContactEmail()
	}
	return status
}

// RecordFailure counts one failed sign-in. It returns the attempts left and whether
// the email is now deactivated.
func (g *LoginGuard) RecordFailure(ctx context.Context, email string) (int, bool) {
	loginFailures.Inc()

	rec, err := g.store.Increment(ctx, email, model.MaxLoginAttempts, g.now().UTC())
	if err != nil {
		g.failOpen("increment", email, err)
		return model.MaxLoginAttempts, false
	}

	if rec.IsDeactivated && rec.Attempts == model.MaxLoginAttempts {
		accountDeactivations.Inc()
		slog.Warn("account deactivated after failed sign-ins", "email", rec.Email, "attempts", rec.Attempts)
		g.bus.Publish(event.New(event.TypeAccountLocked, "", map[string]any{"email": rec.Email}))
	}

	return rec.RemainingAttempts(), rec.IsDeactivated
}

func (g *LoginGuard) RecordSuccess(ctx context.Context, email string) {
	if err := g.store.Reset(ctx, email, g.now().UTC()); err != nil {
		g.failOpen("reset", email, err)
	}
}

// Reactivate clears the counter and deactivation flag. It is an admin action, so
// store errors are returned rather than absorbed.
func (g *LoginGuard) Reactivate(ctx context.Context, actor model.Actor, email string) error {
	email = model.NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", model.ErrInvalidInput)
	}

	if err := g.store.Reactivate(ctx, email, g.now().UTC()); err != nil {
		return fmt.Errorf("reactivate %s: %w", email, err)
	}

	slog.Info("account reactivated", "email", email, "by", actor.UserID)
	g.bus.Publish(event.New(event.TypeAccountReopen, actor.UserID, map[string]any{"email": email}))
	return nil
}

func (g *LoginGuard) ListDeactivated(ctx context.Context) ([]model.LoginAttemptRecord, error) {
	records, err := g.store.ListDeactivated(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deactivated accounts: %w", err)
	}
	return records, nil
}

func (g *LoginGuard) DeactivatedCount(ctx context.Context) (int, error) {
	count, err := g.store.CountDeactivated(ctx)
	if err != nil {
		return 0, fmt.Errorf("count deactivated accounts: %w", err)
	}
	return count, nil
}

func (g *LoginGuard) ContactEmail() string {
	return g.contactEmail
}

// DeactivationMessage is the fixed contact-admin notice.
func (g *LoginGuard) DeactivationMessage() string {
	if g.contactEmail == "" {
		return DeactivatedMessage + " Please contact an administrator to reactivate it."
	}
	return fmt.Sprintf("%s Please contact %s to reactivate it.", DeactivatedMessage, g.contactEmail)
}
