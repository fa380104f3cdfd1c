package handler

import (
	"net/http"
	"strings"

	"lost-and-found/internal/model"
	"lost-and-found/internal/service"
)

type ActivityHandler struct {
	service *service.ActivityService
}

func NewActivityHandler(service *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), service.DefaultActivityLimit)

	entries, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.ActivityListData{Entries: entries}, &model.Meta{Total: len(entries)})
}

// Purge deletes entries older than the retention window.
func (h *ActivityHandler) Purge(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Purge(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Old activity cleared", model.PurgeResult{
		Deleted:       deleted,
		RetentionDays: h.service.RetentionDays(),
	})
}

type LoginAttemptHandler struct {
	guard *service.LoginGuard
}

func NewLoginAttemptHandler(guard *service.LoginGuard) *LoginAttemptHandler {
	return &LoginAttemptHandler{guard: guard}
}

func (h *LoginAttemptHandler) Deactivated(w http.ResponseWriter, r *http.Request) {
	records, err := h.guard.ListDeactivated(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, records, &model.Meta{Total: len(records)})
}

func (h *LoginAttemptHandler) DeactivatedCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.guard.DeactivatedCount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.CountData{Count: count}, nil)
}

func (h *LoginAttemptHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	var payload model.ReactivateRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	email := strings.TrimSpace(payload.Email)
	if err := h.guard.Reactivate(r.Context(), actorFromRequest(r), email); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Account reactivated", map[string]string{"email": model.NormalizeEmail(email)})
}
