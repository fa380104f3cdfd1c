package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lost-and-found/internal/model"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortAZ     SortOrder = "az"
	SortZA     SortOrder = "za"
)

// ParseSort maps a request value onto a SortOrder, defaulting to newest.
func ParseSort(raw string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case SortOldest:
		return SortOldest
	case SortAZ:
		return SortAZ
	case SortZA:
		return SortZA
	default:
		return SortNewest
	}
}

// Sort orders items in place. The sort is stable: items with equal keys keep their
// input order. Undated items go last for both date orders.
func Sort(items []model.Item, order SortOrder, locale string) {
	switch order {
	case SortAZ, SortZA:
		collator := collate.New(parseLocale(locale))
		sign := 1
		if order == SortZA {
			sign = -1
		}
		sort.SliceStable(items, func(i, j int) bool {
			return sign*collator.CompareString(items[i].Name, items[j].Name) < 0
		})
	case SortOldest:
		sortByDate(items, false)
	default:
		sortByDate(items, true)
	}
}

func sortByDate(items []model.Item, descending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		left, leftOK := ParseDate(items[i].DateFound)
		right, rightOK := ParseDate(items[j].DateFound)

		switch {
		case leftOK && rightOK:
			if descending {
				return left.After(right)
			}
			return left.Before(right)
		case leftOK:
			return true
		default:
			return false
		}
	})
}

func parseLocale(raw string) language.Tag {
	if strings.TrimSpace(raw) == "" {
		return language.English
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return language.English
	}

	return tag
}
