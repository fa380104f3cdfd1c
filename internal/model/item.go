package model

import "time"

// ItemStatus is the lifecycle state of a found item.
type ItemStatus string

const (
	ItemStatusUnclaimed ItemStatus = "Unclaimed"
	ItemStatusClaimed   ItemStatus = "Claimed"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusUnclaimed, ItemStatusClaimed:
		return true
	default:
		return false
	}
}

// Categories offered by the item form and the category filter chips.
var Categories = []string{"Electronics", "Bags", "Books", "Clothing", "Personal Items"}

type Item struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Status        ItemStatus `json:"status"`
	DateFound     string     `json:"date_found"`
	LocationFound string     `json:"location_found"`
	ClaimLocation string     `json:"claim_location"`
	Image         string     `json:"image,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ItemPatch carries the fields of a partial update. Nil fields are left unchanged.
type ItemPatch struct {
	Name          *string     `json:"name,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Category      *string     `json:"category,omitempty"`
	Status        *ItemStatus `json:"status,omitempty"`
	DateFound     *string     `json:"date_found,omitempty"`
	LocationFound *string     `json:"location_found,omitempty"`
	ClaimLocation *string     `json:"claim_location,omitempty"`
	Image         *string     `json:"image,omitempty"`
}

// Apply returns a copy of item with the non-nil patch fields written over it.
func (p ItemPatch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.DateFound != nil {
		item.DateFound = *p.DateFound
	}
	if p.LocationFound != nil {
		item.LocationFound = *p.LocationFound
	}
	if p.ClaimLocation != nil {
		item.ClaimLocation = *p.ClaimLocation
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	return item
}

func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.Status == nil &&
		p.DateFound == nil && p.LocationFound == nil && p.ClaimLocation == nil && p.Image == nil
}

// StatusPatch is the patch used by bulk-claim and claim approval.
func StatusPatch(status ItemStatus) ItemPatch {
	return ItemPatch{Status: &status}
}

type ItemStats struct {
	Total     int `json:"total"`
	Claimed   int `json:"claimed"`
	Unclaimed int `json:"unclaimed"`
}

func CountItems(items []Item) ItemStats {
	stats := ItemStats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case ItemStatusClaimed:
			stats.Claimed++
		case ItemStatusUnclaimed:
			stats.Unclaimed++
		}
	}
	return stats
}
