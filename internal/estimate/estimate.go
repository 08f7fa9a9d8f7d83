// Package estimate computes heuristic token-count ranges for prompt text and
// stamps record metadata.
//
// The estimate is an approximation, not a tokenizer: the lower bound assumes
// roughly 0.75 tokens per word, the upper bound roughly one token per four
// characters. Code is denser, so both bounds grow by 30% when the text is
// flagged as code.
package estimate

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/models"
)

const (
	tokensPerWord  = 0.75
	tokensPerChar  = 0.25
	codeMultiplier = 1.3

	highConfidenceBelow  = 1000
	mediumConfidenceUpTo = 5000
)

// Tokens estimates the token range of text. It fails with common.ErrValidation
// when text is not valid UTF-8.
func Tokens(text string, isCode bool) (models.TokenEstimate, error) {
	if !utf8.ValidString(text) {
		return models.TokenEstimate{}, fmt.Errorf("%w: text is not valid UTF-8", common.ErrValidation)
	}

	lo := math.Round(tokensPerWord * float64(len(strings.Fields(text))))
	hi := math.Round(tokensPerChar * float64(utf8.RuneCountInString(text)))
	if isCode {
		lo = math.Round(lo * codeMultiplier)
		hi = math.Round(hi * codeMultiplier)
	}

	est := models.TokenEstimate{Min: int(lo), Max: int(hi)}
	est.Confidence = confidence(est)
	return est, nil
}

// TokensOf is Tokens for values of unknown type. Strings, byte slices and
// fmt.Stringer values are accepted; anything else is not text and fails with
// common.ErrValidation.
func TokensOf(v any, isCode bool) (models.TokenEstimate, error) {
	switch x := v.(type) {
	case string:
		return Tokens(x, isCode)
	case []byte:
		return Tokens(string(x), isCode)
	case fmt.Stringer:
		return Tokens(x.String(), isCode)
	default:
		return models.TokenEstimate{}, fmt.Errorf("%w: cannot estimate tokens of %T", common.ErrValidation, v)
	}
}

func confidence(e models.TokenEstimate) models.Confidence {
	avg := float64(e.Min+e.Max) / 2
	switch {
	case avg < highConfidenceBelow:
		return models.ConfidenceHigh
	case avg <= mediumConfidenceUpTo:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// LooksLikeCode reports whether text contains a fenced code block.
func LooksLikeCode(text string) bool {
	return strings.Contains(text, "```")
}

// NewMetadata validates the model name and builds metadata for content
// created at now.
func NewMetadata(model, content string, now time.Time) (*models.Metadata, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, fmt.Errorf("%w: model name is required", common.ErrValidation)
	}
	if utf8.RuneCountInString(model) > models.MaxModelLength {
		return nil, fmt.Errorf("%w: model name exceeds %d characters", common.ErrValidation, models.MaxModelLength)
	}

	est, err := Tokens(content, LooksLikeCode(content))
	if err != nil {
		return nil, err
	}

	ts := models.ISOTime(now)
	return &models.Metadata{
		Model:         model,
		CreatedAt:     ts,
		UpdatedAt:     ts,
		TokenEstimate: est,
	}, nil
}

// Touch stamps md.UpdatedAt with now, filling CreatedAt when it is missing.
// If now precedes CreatedAt (clock skew, imported data) UpdatedAt is pinned
// to CreatedAt so the ordering invariant holds.
func Touch(md *models.Metadata, now time.Time) {
	if md == nil {
		return
	}
	ts := models.ISOTime(now)
	if md.CreatedAt == "" {
		md.CreatedAt = ts
	}
	created, err := time.Parse(time.RFC3339Nano, md.CreatedAt)
	if err == nil && now.Before(created) {
		md.UpdatedAt = md.CreatedAt
		return
	}
	md.UpdatedAt = ts
}
