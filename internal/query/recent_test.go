package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lost-and-found/internal/model"
)

func TestRecent(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 12, 10, 12, 0, 0, 0, time.UTC)

	items := []model.Item{
		{ID: "old", CreatedAt: now.Add(-8 * 24 * time.Hour)},
		{ID: "edge", CreatedAt: now.Add(-RecentWindow)},
		{ID: "zero"},
		{ID: "two-days", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "hour", CreatedAt: now.Add(-time.Hour)},
	}

	assert.Equal(t, []string{"hour", "two-days"}, ids(Recent(items, now)))
}

func TestRecent_Limit(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := make([]model.Item, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, model.Item{ID: fmt.Sprint(i), CreatedAt: now.Add(-time.Duration(i) * time.Minute)})
	}

	recent := Recent(items, now)
	assert.Len(t, recent, RecentLimit)
	assert.Equal(t, "0", recent[0].ID)
}
