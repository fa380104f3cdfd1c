package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"lost-and-found/internal/event"
	"lost-and-found/internal/model"
)

// ClaimService runs the claim workflow: users submit proof for an unclaimed item,
// admins approve or reject pending claims.
type ClaimService struct {
	claims   ClaimStore
	items    ItemStore
	activity *ActivityService
	bus      event.Bus
	now      func() time.Time
}

func NewClaimService(claims ClaimStore, items ItemStore, activity *ActivityService, bus event.Bus) *ClaimService {
	if bus == nil {
		bus = event.Nop{}
	}
	return &ClaimService{claims: claims, items: items, activity: activity, bus: bus, now: time.Now}
}

func (s *ClaimService) Submit(ctx context.Context, actor model.Actor, req model.SubmitClaimRequest) (model.ClaimRequest, error) {
	if actor.UserID == "" {
		return model.ClaimRequest{}, model.ErrUnauthorized
	}
	proof := strings.TrimSpace(req.ProofDescription)
	if proof == "" {
		return model.ClaimRequest{}, fmt.Errorf("%w: proof description is required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(req.ItemID) == "" {
		return model.ClaimRequest{}, fmt.Errorf("%w: item id is required", model.ErrInvalidInput)
	}

	item, err := s.items.Get(ctx, req.ItemID)
	if err != nil {
		return model.ClaimRequest{}, fmt.Errorf("submit claim: %w", err)
	}
	if item.Status != model.ItemStatusUnclaimed {
		return model.ClaimRequest{}, model.ErrItemAlreadyClaimed
	}

	pending, err := s.claims.ExistsPendingFor(ctx, item.ID, actor.UserID)
	if err != nil {
		return model.ClaimRequest{}, fmt.Errorf("submit claim: %w", err)
	}
	if pending {
		return model.ClaimRequest{}, model.ErrDuplicateClaim
	}

	now := s.now().UTC()
	userName := actor.UserName
	if userName == "" {
		userName = "User"
	}
	claim, err := s.claims.Create(ctx, model.ClaimRequest{
		ID:               uuid.NewString(),
		ItemID:           item.ID,
		ItemName:         item.Name,
		UserID:           actor.UserID,
		UserName:         userName,
		ProofDescription: proof,
		ProofImage:       strings.TrimSpace(req.ProofImage),
		Status:           model.ClaimStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return model.ClaimRequest{}, fmt.Errorf("submit claim: %w", err)
	}

	claimTransitions.WithLabelValues(string(model.ClaimStatusPending)).Inc()
	s.activity.Record(ctx, actor, model.ActionClaimRequest, &model.ItemRef{ID: item.ID, Name: item.Name}, "")
	s.bus.Publish(event.New(event.TypeClaimSubmit, actor.UserID, claim))
	return claim, nil
}

// Approve moves a pending claim to approved, then marks the item Claimed as a
// separate write. If that second write fails the claim stays approved and the
// error wraps model.ErrPartialFailure.
func (s *ClaimService) Approve(ctx context.Context, actor model.Actor, claimID string, notes string) (model.ClaimRequest, error) {
	claim, err := s.review(ctx, claimID, model.ClaimStatusApproved, notes)
	if err != nil {
		return model.ClaimRequest{}, err
	}

	if _, err := s.items.Update(ctx, claim.ItemID, model.StatusPatch(model.ItemStatusClaimed)); err != nil {
		slog.Error("claim approved but item status update failed", "claim_id", claim.ID, "item_id", claim.ItemID, "error", err)
		return claim, fmt.Errorf("%w: claim %s approved, item %s not updated: %w", model.ErrPartialFailure, claim.ID, claim.ItemID, err)
	}

	s.activity.Record(ctx, actor, model.ActionClaimApprove,
		&model.ItemRef{ID: claim.ItemID, Name: claim.ItemName}, "Approved for "+claim.UserName)
	s.bus.Publish(event.New(event.TypeClaimApprove, actor.UserID, claim))
	return claim, nil
}

func (s *ClaimService) Reject(ctx context.Context, actor model.Actor, claimID string, notes string) (model.ClaimRequest, error) {
	claim, err := s.review(ctx, claimID, model.ClaimStatusRejected, notes)
	if err != nil {
		return model.ClaimRequest{}, err
	}

	s.activity.Record(ctx, actor, model.ActionClaimReject,
		&model.ItemRef{ID: claim.ItemID, Name: claim.ItemName}, "Rejected for "+claim.UserName)
	s.bus.Publish(event.New(event.TypeClaimReject, actor.UserID, claim))
	return claim, nil
}

func (s *ClaimService) review(ctx context.Context, claimID string, to model.ClaimStatus, notes string) (model.ClaimRequest, error) {
	claim, err := s.claims.SetStatus(ctx, claimID, model.ClaimStatusPending, to, strings.TrimSpace(notes), s.now().UTC())
	if err != nil {
		return model.ClaimRequest{}, fmt.Errorf("%s claim %s: %w", to, claimID, err)
	}
	claimTransitions.WithLabelValues(string(to)).Inc()
	return claim, nil
}

// Delete removes a claim. Only its owner may do so.
func (s *ClaimService) Delete(ctx context.Context, actor model.Actor, claimID string) error {
	claim, err := s.claims.Get(ctx, claimID)
	if err != nil {
		return fmt.Errorf("delete claim %s: %w", claimID, err)
	}
	if claim.UserID != actor.UserID {
		return fmt.Errorf("%w: cannot delete another user's claim", model.ErrForbidden)
	}

	if err := s.claims.Delete(ctx, claimID); err != nil {
		return fmt.Errorf("delete claim %s: %w", claimID, err)
	}

	s.bus.Publish(event.New(event.TypeClaimDelete, actor.UserID, map[string]string{"id": claimID, "item_id": claim.ItemID}))
	return nil
}

func (s *ClaimService) Get(ctx context.Context, claimID string) (model.ClaimRequest, error) {
	claim, err := s.claims.Get(ctx, claimID)
	if err != nil {
		return model.ClaimRequest{}, fmt.Errorf("get claim %s: %w", claimID, err)
	}
	return claim, nil
}

func (s *ClaimService) ListPending(ctx context.Context) ([]model.ClaimRequest, error) {
	return s.claims.ListPending(ctx)
}

func (s *ClaimService) ListByUser(ctx context.Context, userID string) ([]model.ClaimRequest, error) {
	return s.claims.ListByUser(ctx, userID)
}

func (s *ClaimService) ListApprovedByUser(ctx context.Context, userID string) ([]model.ClaimRequest, error) {
	return s.claims.ListApprovedByUser(ctx, userID)
}

func (s *ClaimService) HasPendingFor(ctx context.Context, itemID string, userID string) (bool, error) {
	return s.claims.ExistsPendingFor(ctx, itemID, userID)
}

func (s *ClaimService) PendingCount(ctx context.Context) (int, error) {
	return s.claims.CountPending(ctx)
}

// ListUsersWithClaims groups every claim by user. Users are ordered by their most
// recent claim; search filters by user name, case-insensitively.
func (s *ClaimService) ListUsersWithClaims(ctx context.Context, search string) ([]model.UserClaimSummary, error) {
	claims, err := s.claims.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}

	byUser := make(map[string]*model.UserClaimSummary)
	order := make([]string, 0)
	for _, c := range claims {
		summary, ok := byUser[c.UserID]
		if !ok {
			summary = &model.UserClaimSummary{UserID: c.UserID, UserName: c.UserName, Claims: []model.ClaimRequest{}}
			byUser[c.UserID] = summary
			order = append(order, c.UserID)
		}

		summary.Claims = append(summary.Claims, c)
		switch c.Status {
		case model.ClaimStatusPending:
			summary.PendingCount++
		case model.ClaimStatusApproved:
			summary.ApprovedCount++
		case model.ClaimStatusRejected:
			summary.RejectedCount++
		}
		if c.CreatedAt.After(summary.LastActivity) {
			summary.LastActivity = c.CreatedAt
		}
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]model.UserClaimSummary, 0, len(order))
	for _, id := range order {
		summary := byUser[id]
		if needle != "" && !strings.Contains(strings.ToLower(summary.UserName), needle) {
			continue
		}
		sort.SliceStable(summary.Claims, func(i, j int) bool {
			return summary.Claims[i].CreatedAt.After(summary.Claims[j].CreatedAt)
		})
		out = append(out, *summary)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].LastActivity.After(out[j].LastActivity) })
	return out, nil
}
