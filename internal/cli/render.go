package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/models"
)

func (a *App) render(recs []models.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No prompts yet. Type 'add' to create one.")
		return
	}
	for _, r := range recs {
		fmt.Fprintln(a.out, r.Overview())
	}
}

func (a *App) renderRecord(r models.Record) {
	fmt.Fprintf(a.out, "%s\n", r.Title)
	fmt.Fprintf(a.out, "id: %s\n", r.ID)
	fmt.Fprintf(a.out, "rating: %s\n", stars(r.UserRating))
	fmt.Fprintf(a.out, "created: %s\n", formatMillis(r.CreatedAt))
	fmt.Fprintf(a.out, "updated: %s\n", formatMillis(r.UpdatedAt))
	if md := r.Metadata; md != nil {
		fmt.Fprintf(a.out, "model: %s (tokens %d-%d, %s confidence)\n",
			md.Model, md.TokenEstimate.Min, md.TokenEstimate.Max, md.TokenEstimate.Confidence)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, r.Content)

	if len(r.Notes) == 0 {
		return
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "notes (%d):\n", len(r.Notes))
	for _, n := range r.Notes {
		fmt.Fprintf(a.out, "  [%s] %s  %s\n", n.ID, formatMillis(n.UpdatedAt), n.Text)
	}
}

func stars(rating int) string {
	if rating < models.RatingMin || rating > models.RatingMax {
		return "unrated"
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", models.RatingMax-rating)
}

func formatMillis(ms int64) string {
	if ms <= 0 {
		return "unknown"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
