package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ItemRequest struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Status        ItemStatus `json:"status"`
	DateFound     string     `json:"date_found"`
	LocationFound string     `json:"location_found"`
	ClaimLocation string     `json:"claim_location"`
	Image         string     `json:"image"`
}

func (r ItemRequest) Item() Item {
	return Item{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		Status:        r.Status,
		DateFound:     r.DateFound,
		LocationFound: r.LocationFound,
		ClaimLocation: r.ClaimLocation,
		Image:         r.Image,
	}
}

type BulkRequest struct {
	IDs     []string `json:"ids"`
	Confirm bool     `json:"confirm"`
}

type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

type BulkResult struct {
	Count int `json:"count"`
}

type SubmitClaimRequest struct {
	ItemID           string `json:"item_id"`
	ProofDescription string `json:"proof_description"`
	ProofImage       string `json:"proof_image"`
}

type ReviewClaimRequest struct {
	Notes string `json:"notes"`
}

type ReactivateRequest struct {
	Email string `json:"email"`
}

type PurgeResult struct {
	Deleted       int `json:"deleted"`
	RetentionDays int `json:"retention_days"`
}
