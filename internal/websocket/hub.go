// Package websocket pushes domain events to connected admin dashboards.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"lost-and-found/internal/event"
	"lost-and-found/internal/query"
)

type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// refresh fires once after a burst of catalog events settles.
	refresh chan struct{}

	bus      event.Bus
	debounce time.Duration
	done     chan struct{}
	count    atomic.Int64
}

func NewHub(bus event.Bus, debounce time.Duration) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		refresh:    make(chan struct{}, 1),
		clients:    make(map[*Client]bool),
		bus:        bus,
		debounce:   debounce,
		done:       make(chan struct{}),
	}
}

// Run forwards bus events until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	debouncer := query.NewDebouncer(h.debounce, func() {
		select {
		case h.refresh <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.count.Store(0)
			return
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			slog.Debug("notification client connected", "user_id", client.userID, "clients", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.count.Store(int64(len(h.clients)))
			}
		case e, ok := <-events:
			if !ok {
				return
			}
			h.broadcast(e)
			if e.Type.AffectsCatalog() {
				debouncer.Trigger()
			}
		case <-h.refresh:
			h.broadcast(event.New(event.TypeCatalogRefresh, "", nil))
		}
	}
}

func (h *Hub) broadcast(e event.Event) {
	message, err := json.Marshal(e)
	if err != nil {
		slog.Error("failed to marshal event", "type", e.Type, "error", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// drop clients that stopped reading
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.count.Store(int64(len(h.clients)))
}

// ClientCount is the number of connected dashboards.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Register is used by ServeWS; it blocks until the hub accepts the client or ctx ends.
func (h *Hub) Register(ctx context.Context, c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-ctx.Done():
		return false
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
