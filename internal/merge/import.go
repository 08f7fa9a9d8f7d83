package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/models"
	"github.com/dmitrijs2005/promptkeeper/internal/normalize"
	"github.com/google/uuid"
)

// newID is a test seam for id generation.
var newID = uuid.NewString

// kind of a JSON field checked in import payloads.
type kind int

const (
	kindString kind = iota
	kindNumber
)

// typedFields lists the fields whose JSON type is enforced on import.
var typedFields = map[string]kind{
	"id":        kindString,
	"title":     kindString,
	"content":   kindString,
	"createdAt": kindNumber,
}

// ParseImport decodes an import payload: a JSON array of record objects.
// Any shape violation rejects the whole payload with common.ErrImport.
// Entries with empty title or content are kept here and dropped by Sanitize.
func ParseImport(data []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: payload must be a JSON array", common.ErrImport)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrImport, err)
	}

	recs := make([]models.Record, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: entry %d is not an object", common.ErrImport, i)
		}
		for name, want := range typedFields {
			if raw, ok := fields[name]; ok && !hasKind(raw, want) {
				return nil, fmt.Errorf("%w: entry %d: field %q has the wrong type", common.ErrImport, i, name)
			}
		}

		r, err := normalize.Decode(item)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", common.ErrImport, i, err)
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// hasKind reports whether raw holds a JSON value of kind k. null counts as
// absent and always passes.
func hasKind(raw json.RawMessage, k kind) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return true
	}
	switch k {
	case kindString:
		return raw[0] == '"'
	case kindNumber:
		return raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')
	}
	return false
}

// Sanitize makes incoming records safe to merge. Entries without a
// non-empty title or content are dropped; missing or oversized ids are
// replaced with fresh ones; later duplicates of an id are dropped; titles are
// capped; createdAt defaults to now and updatedAt is stamped now.
func Sanitize(incoming []models.Record, now time.Time) []models.Record {
	ts := models.Millis(now)
	seen := make(map[string]struct{}, len(incoming))
	out := make([]models.Record, 0, len(incoming))

	for _, in := range incoming {
		r := normalize.Normalize(in.Clone())

		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" || strings.TrimSpace(r.Content) == "" {
			continue
		}
		r.Title = truncate(r.Title, models.MaxTitleLength)

		if r.ID == "" || len(r.ID) > models.MaxIDLength {
			r.ID = newID()
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}

		if r.CreatedAt <= 0 {
			r.CreatedAt = ts
		}
		r.UpdatedAt = ts
		out = append(out, r)
	}
	return out
}

// MergeByID adds every sanitized incoming record whose id is not already in
// existing. Existing records win on collision. The result is ordered
// newest-first by createdAt; ties keep their relative order.
func MergeByID(existing, incoming []models.Record, now time.Time) []models.Record {
	out := models.CloneAll(existing)

	ids := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		ids[r.ID] = struct{}{}
	}
	for _, r := range Sanitize(incoming, now) {
		if _, ok := ids[r.ID]; ok {
			continue
		}
		out = append(out, r)
	}

	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders recs by createdAt, newest first, in place.
func SortNewestFirst(recs []models.Record) {
	slices.SortStableFunc(recs, func(a, b models.Record) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	})
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
