package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lost-and-found/internal/middleware"
	"lost-and-found/internal/model"
	"lost-and-found/internal/service"
)

type ItemHandler struct {
	items  *service.ItemService
	claims *service.ClaimService
	export *service.ExportService
}

func NewItemHandler(items *service.ItemService, claims *service.ClaimService, export *service.ExportService) *ItemHandler {
	return &ItemHandler{items: items, claims: claims, export: export}
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context(), itemQueryOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.ItemListData{Items: items}, &model.Meta{Total: len(items)})
}

func (h *ItemHandler) Recent(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.Recent(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.ItemListData{Items: items}, &model.Meta{Total: len(items)})
}

func (h *ItemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.items.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, stats, nil)
}

// Categories feeds the item form select and the filter chips.
func (h *ItemHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string][]string{"categories": model.Categories}, nil)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, item, nil)
}

// ClaimStatus tells the caller whether they already have a pending claim on the item.
func (h *ItemHandler) ClaimStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	pending, err := h.claims.HasPendingFor(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]bool{"has_pending_claim": pending}, nil)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.ItemRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	item, err := h.items.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Item added successfully", item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ItemPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	item, err := h.items.Update(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Item updated successfully", item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !queryConfirmed(r) {
		writeError(w, model.ErrConfirmationRequired)
		return
	}

	if err := h.items.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Item deleted successfully", nil)
}

func (h *ItemHandler) BulkClaim(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.items.BulkClaim, "%d items marked as claimed")
}

func (h *ItemHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.items.BulkDelete, "%d items deleted")
}

func (h *ItemHandler) bulk(w http.ResponseWriter, r *http.Request, op func(context.Context, model.Actor, []string) (int, error), message string) {
	var payload model.BulkRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if !payload.Confirm && !queryConfirmed(r) {
		writeError(w, model.ErrConfirmationRequired)
		return
	}

	count, err := op(r.Context(), actorFromRequest(r), payload.IDs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf(message, count), model.BulkResult{Count: count})
}

func (h *ItemHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var payload model.ConfirmRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if !payload.Confirm && !queryConfirmed(r) {
		writeError(w, model.ErrConfirmationRequired)
		return
	}

	items, err := h.items.Seed(r.Context(), actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Database seeded successfully", model.ItemListData{Items: items})
}

// Export renders the filtered catalog as a CSV or PDF download.
func (h *ItemHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, ok := service.ParseExportFormat(r.URL.Query().Get("format"))
	if !ok {
		badRequest(w, "format must be csv or pdf", "format")
		return
	}

	report, err := h.export.Render(r.Context(), format, itemQueryOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.Data)
}
