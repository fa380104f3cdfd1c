package query

import (
	"sort"
	"time"

	"lost-and-found/internal/model"
)

const (
	RecentWindow = 7 * 24 * time.Hour
	RecentLimit  = 10
)

// Recent returns up to RecentLimit items created within RecentWindow of now, newest first.
func Recent(items []model.Item, now time.Time) []model.Item {
	cutoff := now.Add(-RecentWindow)

	result := make([]model.Item, 0, RecentLimit)
	for _, item := range items {
		if item.CreatedAt.IsZero() || !item.CreatedAt.After(cutoff) {
			continue
		}
		result = append(result, item)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > RecentLimit {
		result = result[:RecentLimit]
	}

	return result
}
