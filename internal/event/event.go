package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeItemCreated   Type = "item.created"
	TypeItemUpdated   Type = "item.updated"
	TypeItemDeleted   Type = "item.deleted"
	TypeItemsClaimed  Type = "items.bulk_claimed"
	TypeItemsDeleted  Type = "items.bulk_deleted"
	TypeItemsSeeded   Type = "items.seeded"
	TypeClaimSubmit   Type = "claim.submitted"
	TypeClaimApprove  Type = "claim.approved"
	TypeClaimReject   Type = "claim.rejected"
	TypeClaimDelete   Type = "claim.deleted"
	TypeAccountLocked Type = "account.deactivated"
	TypeAccountReopen Type = "account.reactivated"

	// TypeCatalogRefresh is emitted by the notification hub after a burst of item events.
	TypeCatalogRefresh Type = "catalog.refresh"
)

// AffectsCatalog reports whether listeners should re-fetch the item list.
func (t Type) AffectsCatalog() bool {
	switch t {
	case TypeItemCreated, TypeItemUpdated, TypeItemDeleted,
		TypeItemsClaimed, TypeItemsDeleted, TypeItemsSeeded, TypeClaimApprove:
		return true
	default:
		return false
	}
}

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id,omitempty"`
}

func New(t Type, actorID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		ActorID:   actorID,
	}
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // channel + unsubscribe
}

// Nop discards events. Services use it when no bus is wired.
type Nop struct{}

func (Nop) Publish(Event) {}

func (Nop) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event)
	return ch, func() {}
}
