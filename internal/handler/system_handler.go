package handler

import (
	"context"
	"net/http"

	"lost-and-found/internal/middleware"
	"lost-and-found/internal/websocket"
	"lost-and-found/pkg/apierror"
)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db      pinger
	backend string
}

// NewHealthHandler takes a nil db for the in-memory backend.
func NewHealthHandler(db pinger, backend string) *HealthHandler {
	return &HealthHandler{db: db, backend: backend}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Health(r.Context()); err != nil {
			writeError(w, apierror.Wrap(err, "UNAVAILABLE", "database unreachable", http.StatusServiceUnavailable))
			return
		}
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok", "backend": h.backend}, nil)
}

type EventsHandler struct {
	hub      *websocket.Hub
	upgrader *websocket.Upgrader
}

func NewEventsHandler(hub *websocket.Hub, upgrader *websocket.Upgrader) *EventsHandler {
	return &EventsHandler{hub: hub, upgrader: upgrader}
}

// Serve upgrades the admin dashboard connection and streams domain events to it.
func (h *EventsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	websocket.ServeWS(h.hub, h.upgrader, w, r, claims.Actor().UserID)
}
