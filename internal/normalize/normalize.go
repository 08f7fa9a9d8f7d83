// Package normalize upgrades records of any stored vintage to the current
// shape. Older versions of the tool wrote records without a rating, without
// notes, with ISO timestamps instead of epoch millis, or with notes lacking
// ids; all of them decode into a complete models.Record here.
//
// Normalization is idempotent and never writes anything back. The upgraded
// shape reaches storage with the next regular save.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/models"
	"github.com/google/uuid"
)

type rawRecord struct {
	ID         json.RawMessage `json:"id"`
	Title      json.RawMessage `json:"title"`
	Content    json.RawMessage `json:"content"`
	UserRating json.RawMessage `json:"userRating"`
	Notes      json.RawMessage `json:"notes"`
	Metadata   json.RawMessage `json:"metadata"`
	CreatedAt  json.RawMessage `json:"createdAt"`
	UpdatedAt  json.RawMessage `json:"updatedAt"`
}

type rawNote struct {
	ID        json.RawMessage `json:"id"`
	Text      json.RawMessage `json:"text"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

// Decode parses one stored record object and normalizes it. Optional fields
// of the wrong type fall back to their defaults; only a non-object payload or
// an unreadable title, content or id is an error. A missing id stays empty.
func Decode(data []byte) (models.Record, error) {
	r, err := decode(data)
	if err != nil {
		return models.Record{}, err
	}
	return Normalize(r), nil
}

func decode(data []byte) (models.Record, error) {
	if !isObject(data) {
		return models.Record{}, fmt.Errorf("decode record: not an object")
	}
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Record{}, fmt.Errorf("decode record: %w", err)
	}

	id, ok := text(raw.ID)
	if !ok {
		return models.Record{}, fmt.Errorf("decode record: id is not a string")
	}
	title, ok := text(raw.Title)
	if !ok {
		return models.Record{}, fmt.Errorf("decode record: title is not a string")
	}
	content, ok := text(raw.Content)
	if !ok {
		return models.Record{}, fmt.Errorf("decode record: content is not a string")
	}

	return models.Record{
		ID:         id,
		Title:      title,
		Content:    content,
		UserRating: rating(raw.UserRating),
		Notes:      notes(raw.Notes),
		Metadata:   metadata(raw.Metadata),
		CreatedAt:  instant(raw.CreatedAt),
		UpdatedAt:  instant(raw.UpdatedAt),
	}, nil
}

// Collection decodes a stored JSON array of records. Elements that cannot be
// decoded are skipped and counted; a payload that is not an array at all is
// an error. Records stored without an id get one derived from their position
// and contents.
func Collection(data []byte) (recs []models.Record, skipped int, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, fmt.Errorf("decode collection: %w", err)
	}

	recs = make([]models.Record, 0, len(items))
	for i, item := range items {
		r, err := decode(item)
		if err != nil {
			skipped++
			continue
		}
		if r.ID == "" {
			r.ID = recordID(i, r)
		}
		recs = append(recs, Normalize(r))
	}
	return recs, skipped, nil
}

// Normalize fills defaults on an already-typed record: out-of-range ratings
// become 0, a nil notes list becomes empty, and notes without an id get a
// deterministic one. Metadata is left as is.
func Normalize(r models.Record) models.Record {
	if r.UserRating < models.RatingUnrated || r.UserRating > models.RatingMax {
		r.UserRating = models.RatingUnrated
	}
	if r.Notes == nil {
		r.Notes = []models.Note{}
	}
	for i := range r.Notes {
		if r.Notes[i].ID == "" {
			r.Notes[i].ID = noteID(r.ID, i, r.Notes[i])
		}
	}
	return r
}

// All normalizes every record of a collection in place and returns it.
func All(recs []models.Record) []models.Record {
	for i := range recs {
		recs[i] = Normalize(recs[i])
	}
	return recs
}

func recordID(pos int, r models.Record) string {
	seed := strconv.Itoa(pos) + "\x00" + r.Title + "\x00" + r.Content + "\x00" + strconv.FormatInt(r.CreatedAt, 10)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

// noteID includes the note's position so identical legacy notes stay
// distinguishable.
func noteID(rid string, pos int, n models.Note) string {
	seed := rid + "\x00" + strconv.Itoa(pos) + "\x00" + n.Text + "\x00" + strconv.FormatInt(n.UpdatedAt, 10)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

// text reads a string field. Numbers are kept in their literal form; an
// absent or null field is empty. Any other type is not recoverable.
func text(data json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, true
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err == nil {
		return num.String(), true
	}
	return "", false
}

// rating accepts a number or a numeric string. Anything else is unrated.
func rating(data json.RawMessage) int {
	if len(data) == 0 {
		return models.RatingUnrated
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return models.RatingUnrated
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return models.RatingUnrated
		}
		v = f
	}
	return ratingValue(v)
}

// notes keeps the object elements of a notes array. Elements that are not
// objects or whose text is unreadable are dropped; a non-array is empty.
func notes(data json.RawMessage) []models.Note {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return []models.Note{}
	}

	out := make([]models.Note, 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var n rawNote
		if err := json.Unmarshal(item, &n); err != nil {
			continue
		}
		body, ok := text(n.Text)
		if !ok {
			continue
		}
		id, _ := text(n.ID)
		out = append(out, models.Note{ID: id, Text: body, UpdatedAt: instant(n.UpdatedAt)})
	}
	return out
}

// metadata is nil unless data is an object that decodes cleanly.
func metadata(data json.RawMessage) *models.Metadata {
	if !isObject(data) {
		return nil
	}
	var m models.Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return &m
}

func ratingValue(v float64) int {
	if v != math.Trunc(v) || v < models.RatingUnrated || v > models.RatingMax {
		return models.RatingUnrated
	}
	return int(v)
}

func isObject(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// instant accepts epoch millis (number or numeric string) and RFC 3339
// strings. Anything else yields 0.
func instant(data json.RawMessage) int64 {
	if len(data) == 0 {
		return 0
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		return int64(num)
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UnixMilli()
	}
	return 0
}
