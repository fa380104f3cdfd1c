package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lost-and-found/internal/event"
	"lost-and-found/internal/middleware"
	"lost-and-found/internal/model"
	"lost-and-found/internal/repository/memory"
	"lost-and-found/internal/service"
)

func TestClaimHandler_ApproveItemGone(t *testing.T) {
	ctx := context.Background()
	items := memory.NewItemStore(model.Item{
		ID:        "item-1",
		Name:      "Black Backpack",
		Status:    model.ItemStatusUnclaimed,
		CreatedAt: time.Now().UTC(),
	})
	claims := memory.NewClaimStore()
	activity := service.NewActivityService(memory.NewActivityStore(), 24*time.Hour)
	claimService := service.NewClaimService(claims, items, activity, event.Nop{})

	student := model.Actor{UserID: "student-1", UserName: "Student"}
	claim, err := claimService.Submit(ctx, student, model.SubmitClaimRequest{
		ItemID:           "item-1",
		ProofDescription: "Red zipper, notebooks inside",
	})
	require.NoError(t, err)

	// The item disappears between submission and review.
	require.NoError(t, items.Delete(ctx, "item-1"))

	r := chi.NewRouter()
	r.Post("/claims/{id}/approve", NewClaimHandler(claimService).Approve)

	req := httptest.NewRequest(http.MethodPost, "/claims/"+claim.ID+"/approve", strings.NewReader(`{"notes":"ok"}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithClaims(req.Context(), &model.AuthClaims{
		UserID: "admin-1",
		Name:   "Admin",
		Role:   model.RoleAdmin,
	}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "PARTIAL_FAILURE", body.Error.Code)

	stored, err := claims.Get(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusApproved, stored.Status)
}
