package model

import "time"

type ActivityAction string

const (
	ActionAdd          ActivityAction = "add"
	ActionEdit         ActivityAction = "edit"
	ActionDelete       ActivityAction = "delete"
	ActionClaim        ActivityAction = "claim"
	ActionClaimRequest ActivityAction = "claim_request"
	ActionClaimApprove ActivityAction = "claim_approve"
	ActionClaimReject  ActivityAction = "claim_reject"
	ActionBulkClaim    ActivityAction = "bulk_claim"
	ActionBulkDelete   ActivityAction = "bulk_delete"
	ActionSeedData     ActivityAction = "seed_data"
)

var activityActionInfo = map[ActivityAction]StatusInfo{
	ActionAdd:          {Label: "Added item", Tone: "emerald"},
	ActionEdit:         {Label: "Edited item", Tone: "blue"},
	ActionDelete:       {Label: "Deleted item", Tone: "red"},
	ActionClaim:        {Label: "Marked as claimed", Tone: "purple"},
	ActionClaimRequest: {Label: "Claim request submitted", Tone: "amber"},
	ActionClaimApprove: {Label: "Approved claim", Tone: "emerald"},
	ActionClaimReject:  {Label: "Rejected claim", Tone: "red"},
	ActionBulkClaim:    {Label: "Bulk marked as claimed", Tone: "purple"},
	ActionBulkDelete:   {Label: "Bulk deleted items", Tone: "red"},
	ActionSeedData:     {Label: "Seeded sample data", Tone: "slate"},
}

func (a ActivityAction) Valid() bool {
	_, ok := activityActionInfo[a]
	return ok
}

// Info returns the display metadata; unknown actions render their raw code.
func (a ActivityAction) Info() StatusInfo {
	if info, ok := activityActionInfo[a]; ok {
		return info
	}
	return StatusInfo{Label: string(a), Tone: "slate"}
}

type ActivityLogEntry struct {
	ID        string         `json:"id"`
	Action    ActivityAction `json:"action"`
	UserID    string         `json:"user_id"`
	UserName  string         `json:"user_name"`
	ItemID    string         `json:"item_id,omitempty"`
	ItemName  string         `json:"item_name"`
	Details   string         `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type ActivityLogView struct {
	ActivityLogEntry
	ActionInfo StatusInfo `json:"action_info"`
}

// Actor identifies who performed a logged action.
type Actor struct {
	UserID   string
	UserName string
	Role     string
	IP       string
}

// ItemRef is the minimal item identity recorded in the activity log.
type ItemRef struct {
	ID   string
	Name string
}
