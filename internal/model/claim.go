package model

import "time"

// ClaimStatus is the review state of a claim request. Approved and rejected are terminal.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

func (s ClaimStatus) Terminal() bool {
	return s == ClaimStatusApproved || s == ClaimStatusRejected
}

// StatusInfo is the display metadata the UI renders for a claim status badge.
type StatusInfo struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

var claimStatusInfo = map[ClaimStatus]StatusInfo{
	ClaimStatusPending:  {Label: "Pending", Tone: "amber"},
	ClaimStatusApproved: {Label: "Approved", Tone: "emerald"},
	ClaimStatusRejected: {Label: "Rejected", Tone: "red"},
}

// Info falls back to the pending badge for unknown values.
func (s ClaimStatus) Info() StatusInfo {
	if info, ok := claimStatusInfo[s]; ok {
		return info
	}
	return claimStatusInfo[ClaimStatusPending]
}

type ClaimRequest struct {
	ID               string      `json:"id"`
	ItemID           string      `json:"item_id"`
	ItemName         string      `json:"item_name"`
	UserID           string      `json:"user_id"`
	UserName         string      `json:"user_name"`
	ProofDescription string      `json:"proof_description"`
	ProofImage       string      `json:"proof_image,omitempty"`
	Status           ClaimStatus `json:"status"`
	AdminNotes       string      `json:"admin_notes"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type ClaimView struct {
	ClaimRequest
	StatusInfo StatusInfo `json:"status_info"`
}

func NewClaimView(c ClaimRequest) ClaimView {
	return ClaimView{ClaimRequest: c, StatusInfo: c.Status.Info()}
}

// UserClaimSummary is one row of the admin roster: every claim a user filed plus tallies.
type UserClaimSummary struct {
	UserID        string         `json:"user_id"`
	UserName      string         `json:"user_name"`
	Claims        []ClaimRequest `json:"claims"`
	PendingCount  int            `json:"pending_count"`
	ApprovedCount int            `json:"approved_count"`
	RejectedCount int            `json:"rejected_count"`
	LastActivity  time.Time      `json:"last_activity"`
}
