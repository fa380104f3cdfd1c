package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"lost-and-found/internal/query"
)

const maxJSONBody = 1 << 20

func parseIntOrDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

// decodeJSON reads a bounded JSON body. An empty body decodes to the zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body", "")
		return false
	}
	return true
}

// itemQueryOptions maps list query parameters onto query.Options. Unknown sort values
// fall back to newest; malformed dates are passed through and match nothing.
func itemQueryOptions(r *http.Request) query.Options {
	q := r.URL.Query()
	return query.Options{
		Search:   strings.TrimSpace(q.Get("search")),
		Status:   strings.TrimSpace(q.Get("status")),
		Location: strings.TrimSpace(q.Get("location")),
		Category: strings.TrimSpace(q.Get("category")),
		DateFrom: strings.TrimSpace(q.Get("date_from")),
		DateTo:   strings.TrimSpace(q.Get("date_to")),
		Sort:     query.ParseSort(q.Get("sort")),
	}
}

func queryConfirmed(r *http.Request) bool {
	confirmed, _ := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get("confirm")))
	return confirmed
}
