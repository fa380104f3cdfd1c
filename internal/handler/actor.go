package handler

import (
	"net"
	"net/http"
	"strings"

	"lost-and-found/internal/middleware"
	"lost-and-found/internal/model"
)

// actorFromRequest identifies the caller for activity-log entries and ownership checks.
func actorFromRequest(r *http.Request) model.Actor {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	actor := claims.Actor()
	actor.IP = clientIP(r)
	return actor
}

func clientIP(r *http.Request) string {
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	xri := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}

	return strings.TrimSpace(r.RemoteAddr)
}
