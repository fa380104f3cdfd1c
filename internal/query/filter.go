// Package query filters and orders an already-fetched item collection.
// Everything here is pure: no I/O, no shared state.
package query

import (
	"strings"
	"time"

	"lost-and-found/internal/model"
)

// All is the sentinel value that disables the status and location filters.
const All = "All"

type Options struct {
	Search   string
	Status   string
	Location string
	Category string
	DateFrom string
	DateTo   string
	Sort     SortOrder
	// Locale drives az/za collation. Empty means English.
	Locale string
}

// Active reports whether any predicate would exclude items.
func (o Options) Active() bool {
	return strings.TrimSpace(o.Search) != "" ||
		!isAll(o.Status) || !isAll(o.Location) ||
		strings.TrimSpace(o.Category) != "" ||
		strings.TrimSpace(o.DateFrom) != "" || strings.TrimSpace(o.DateTo) != ""
}

// Apply returns the items that satisfy every active predicate, ordered by opts.Sort.
// The input slice is not modified.
func Apply(items []model.Item, opts Options) []model.Item {
	if !opts.Active() {
		result := append(make([]model.Item, 0, len(items)), items...)
		Sort(result, opts.Sort, opts.Locale)
		return result
	}

	f := newFilter(opts)

	result := make([]model.Item, 0, len(items))
	for _, item := range items {
		if f.match(item) {
			result = append(result, item)
		}
	}

	Sort(result, opts.Sort, opts.Locale)
	return result
}

type filter struct {
	search   string
	status   string
	location string
	category string

	hasRange  bool
	badRange  bool
	from      time.Time
	to        time.Time
	fromIsSet bool
	toIsSet   bool
}

func newFilter(opts Options) filter {
	f := filter{
		search:   strings.ToLower(strings.TrimSpace(opts.Search)),
		category: strings.ToLower(strings.TrimSpace(opts.Category)),
	}

	if !isAll(opts.Status) {
		f.status = strings.TrimSpace(opts.Status)
	}
	if !isAll(opts.Location) {
		f.location = strings.TrimSpace(opts.Location)
	}

	if raw := strings.TrimSpace(opts.DateFrom); raw != "" {
		f.hasRange = true
		f.from, f.fromIsSet = ParseDate(raw)
		if !f.fromIsSet {
			f.badRange = true
		}
	}
	if raw := strings.TrimSpace(opts.DateTo); raw != "" {
		f.hasRange = true
		f.to, f.toIsSet = ParseDate(raw)
		if !f.toIsSet {
			f.badRange = true
		}
	}

	return f
}

func (f filter) match(item model.Item) bool {
	return f.matchSearch(item) &&
		f.matchStatus(item) &&
		f.matchLocation(item) &&
		f.matchCategory(item) &&
		f.matchDate(item)
}

func (f filter) matchSearch(item model.Item) bool {
	if f.search == "" {
		return true
	}

	return strings.Contains(strings.ToLower(item.Name), f.search) ||
		strings.Contains(strings.ToLower(item.Description), f.search) ||
		strings.Contains(strings.ToLower(item.LocationFound), f.search)
}

func (f filter) matchStatus(item model.Item) bool {
	return f.status == "" || string(item.Status) == f.status
}

// Location matching is case-sensitive.
func (f filter) matchLocation(item model.Item) bool {
	return f.location == "" || strings.Contains(item.LocationFound, f.location)
}

func (f filter) matchCategory(item model.Item) bool {
	return f.category == "" || strings.ToLower(strings.TrimSpace(item.Category)) == f.category
}

func (f filter) matchDate(item model.Item) bool {
	if !f.hasRange {
		return true
	}
	if f.badRange {
		return false
	}

	found, ok := ParseDate(item.DateFound)
	if !ok {
		return false
	}

	if f.fromIsSet && found.Before(f.from) {
		return false
	}
	if f.toIsSet && found.After(f.to) {
		return false
	}

	return true
}

func isAll(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, All)
}
