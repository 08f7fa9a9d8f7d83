// Package models defines the prompt record, its notes and metadata, as they
// are persisted and exported.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds. Zero means "unrated".
const (
	RatingUnrated = 0
	RatingMin     = 1
	RatingMax     = 5
)

// Field limits enforced by the core.
const (
	MaxNoteLength  = 300
	MaxModelLength = 100
	MaxTitleLength = 200
	MaxIDLength    = 64
)

// Record is a user-created prompt. Times are epoch milliseconds.
type Record struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Content    string    `json:"content" yaml:"content"`
	UserRating int       `json:"userRating" yaml:"userRating"`
	Notes      []Note    `json:"notes" yaml:"notes"`
	Metadata   *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt  int64     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  int64     `json:"updatedAt" yaml:"updatedAt"`
}

// Note is a short annotation owned by exactly one Record.
type Note struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	UpdatedAt int64  `json:"updatedAt" yaml:"updatedAt"`
}

// Metadata tracks the target model and a token estimate. CreatedAt and
// UpdatedAt are RFC 3339 strings; UpdatedAt is never before CreatedAt.
type Metadata struct {
	Model         string        `json:"model" yaml:"model"`
	CreatedAt     string        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     string        `json:"updatedAt" yaml:"updatedAt"`
	TokenEstimate TokenEstimate `json:"tokenEstimate" yaml:"tokenEstimate"`
}

// Confidence labels for a TokenEstimate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// TokenEstimate is an approximate token-count range for a text.
type TokenEstimate struct {
	Min        int        `json:"min" yaml:"min"`
	Max        int        `json:"max" yaml:"max"`
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// ISOTime formats t the way Metadata stores instants.
func ISOTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Clone returns a deep copy of r so callers can mutate it freely.
func (r Record) Clone() Record {
	out := r
	out.Notes = append(make([]Note, 0, len(r.Notes)), r.Notes...)
	if r.Metadata != nil {
		md := *r.Metadata
		out.Metadata = &md
	}
	return out
}

// CloneAll deep-copies a collection. The result is never nil.
func CloneAll(recs []Record) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Clone())
	}
	return out
}

// IndexByID returns the position of the record with the given id, or -1.
func IndexByID(recs []Record, id string) int {
	for i := range recs {
		if recs[i].ID == id {
			return i
		}
	}
	return -1
}

// NoteIndex returns the position of the note with the given id, or -1.
func (r Record) NoteIndex(noteID string) int {
	for i := range r.Notes {
		if r.Notes[i].ID == noteID {
			return i
		}
	}
	return -1
}

// ViewOverview is the one-line listing form of a Record.
type ViewOverview struct {
	Id     string
	Title  string
	Rating int
	Notes  int
	Model  string
}

// Overview builds the listing form of r.
func (r Record) Overview() ViewOverview {
	v := ViewOverview{Id: r.ID, Title: r.Title, Rating: r.UserRating, Notes: len(r.Notes)}
	if r.Metadata != nil {
		v.Model = r.Metadata.Model
	}
	return v
}

// String renders the overview as a single listing line, e.g.
//
//	3f2a…  ★★★★☆  Outline  [2 notes, gpt-4o]
func (v ViewOverview) String() string {
	n := min(max(v.Rating, RatingUnrated), RatingMax)
	stars := strings.Repeat("★", n) + strings.Repeat("☆", RatingMax-n)
	tags := []string{fmt.Sprintf("%d notes", v.Notes)}
	if v.Model != "" {
		tags = append(tags, v.Model)
	}
	return fmt.Sprintf("%s  %s  %s  [%s]", v.Id, stars, v.Title, strings.Join(tags, ", "))
}
