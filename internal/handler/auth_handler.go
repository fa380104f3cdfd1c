package handler

import (
	"net/http"
	"strings"

	"lost-and-found/internal/middleware"
	"lost-and-found/internal/model"
	"lost-and-found/internal/service"
	"lost-and-found/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
	guard   *service.LoginGuard
}

func NewAuthHandler(service *service.AuthService, guard *service.LoginGuard) *AuthHandler {
	return &AuthHandler{service: service, guard: guard}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	tokens, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tokens, nil)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	tokens, err := h.service.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Account created", tokens)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload model.RefreshRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	payload.RefreshToken = strings.TrimSpace(payload.RefreshToken)
	if payload.RefreshToken == "" {
		badRequest(w, "refresh_token is required", "refresh_token")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tokens, nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var payload model.RefreshRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if err := h.service.Logout(r.Context(), strings.TrimSpace(payload.RefreshToken)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true}, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	user, err := h.service.Me(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}

// Status is the pre-flight check the sign-in form runs while the email is typed.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		badRequest(w, "query parameter 'email' is required", "email")
		return
	}

	writeSuccess(w, http.StatusOK, h.guard.Status(r.Context(), email), nil)
}
