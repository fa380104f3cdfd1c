package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lost-and-found/internal/model"
	"lost-and-found/internal/service"
)

type ClaimHandler struct {
	service *service.ClaimService
}

func NewClaimHandler(service *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

func claimViews(claims []model.ClaimRequest) model.ClaimListData {
	views := make([]model.ClaimView, 0, len(claims))
	for _, c := range claims {
		views = append(views, model.NewClaimView(c))
	}
	return model.ClaimListData{Claims: views}
}

func (h *ClaimHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload model.SubmitClaimRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	claim, err := h.service.Submit(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Claim request submitted! An admin will review it soon.", model.NewClaimView(claim))
}

func (h *ClaimHandler) Mine(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.ListByUser(r.Context(), actorFromRequest(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, claimViews(claims), &model.Meta{Total: len(claims)})
}

func (h *ClaimHandler) MineApproved(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.ListApprovedByUser(r.Context(), actorFromRequest(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, claimViews(claims), &model.Meta{Total: len(claims)})
}

func (h *ClaimHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Claim request deleted", nil)
}

func (h *ClaimHandler) Pending(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, claimViews(claims), &model.Meta{Total: len(claims)})
}

func (h *ClaimHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.PendingCount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.CountData{Count: count}, nil)
}

// Users is the admin roster of everyone who filed a claim, optionally filtered by name.
func (h *ClaimHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsersWithClaims(r.Context(), strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, users, &model.Meta{Total: len(users)})
}

func (h *ClaimHandler) Get(w http.ResponseWriter, r *http.Request) {
	claim, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.NewClaimView(claim), nil)
}

func (h *ClaimHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var payload model.ReviewClaimRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	claim, err := h.service.Approve(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Claim approved and item marked as claimed", model.NewClaimView(claim))
}

func (h *ClaimHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var payload model.ReviewClaimRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	claim, err := h.service.Reject(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Claim rejected", model.NewClaimView(claim))
}
