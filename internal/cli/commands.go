package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/merge"
)

// arg returns args[i], or prompts for it when missing.
func (a *App) arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	v, err := GetSimpleText(a.reader, prompt, a.promptOut())
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%w: no value entered", common.ErrValidation)
	}
	return v, nil
}

// text joins args[from:], or reads multi-line text when there is none.
func (a *App) text(args []string, from int, prompt string) (string, error) {
	if from < len(args) {
		return strings.Join(args[from:], " "), nil
	}
	return GetMultiline(a.reader, prompt, a.promptOut())
}

// List prints one line per prompt, newest first.
func (a *App) List(ctx context.Context) error {
	a.render(a.records.Load(ctx))
	return nil
}

// Search prints the prompts whose title or content contains the query.
func (a *App) Search(ctx context.Context, args []string) error {
	q := strings.Join(args, " ")
	if q == "" {
		var err error
		if q, err = GetSimpleText(a.reader, "Search for", a.promptOut()); err != nil {
			return err
		}
	}
	recs := a.records.Search(ctx, q)
	if len(recs) == 0 {
		fmt.Fprintf(a.out, "No prompts match %q\n", q)
		return nil
	}
	a.render(recs)
	return nil
}

// Show prints a single prompt with its notes.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter prompt id")
	if err != nil {
		return err
	}
	r, err := a.records.Find(ctx, id)
	if err != nil {
		return err
	}
	a.renderRecord(r)
	return nil
}

// Add prompts for title, content and (with tracking) the target model, then
// creates the prompt.
func (a *App) Add(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = GetSimpleText(a.reader, "Enter title", a.promptOut()); err != nil {
			return err
		}
	}
	content, err := GetMultiline(a.reader, "Enter prompt text", a.promptOut())
	if err != nil {
		return err
	}

	model := ""
	if a.config.TrackMetadata {
		model, err = GetSimpleText(a.reader, fmt.Sprintf("Target model [%s]", a.config.DefaultModel), a.promptOut())
		if err != nil {
			return err
		}
		if model == "" {
			model = a.config.DefaultModel
		}
	}

	recs, err := a.records.AddRecord(ctx, title, content, model)
	if err != nil {
		return err
	}
	a.render(recs)
	return nil
}

// Delete removes a prompt and its notes.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter prompt id to delete")
	if err != nil {
		return err
	}
	recs, err := a.records.DeleteRecord(ctx, id)
	if err != nil {
		return err
	}
	a.render(recs)
	return nil
}

// Rate sets a 1-5 star rating. Out-of-range values are ignored by the
// record service.
func (a *App) Rate(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter prompt id to rate")
	if err != nil {
		return err
	}
	raw, err := a.arg(args, 1, "Enter rating (1-5)")
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: rating must be a number, got %q", common.ErrValidation, raw)
	}

	recs, err := a.records.SetRating(ctx, id, v)
	if err != nil {
		return err
	}
	a.render(recs)
	return nil
}

// Note adds a note to a prompt.
func (a *App) Note(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter prompt id")
	if err != nil {
		return err
	}
	text, err := a.text(args, 1, "Enter note text")
	if err != nil {
		return err
	}
	recs, err := a.records.AddNote(ctx, id, text)
	if err != nil {
		return err
	}
	a.render(recs)
	return nil
}

// EditNote replaces the text of a note.
func (a *App) EditNote(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter prompt id")
	if err != nil {
		return err
	}
	noteID, err := a.arg(args, 1, "Enter note id")
	if err != nil {
		return err
	}
	text, err := a.text(args, 2, "Enter new note text")
	if err != nil {
		return err
	}
	recs, err := a.records.UpdateNote(ctx, id, noteID, text)
	if err != nil {
		return err
	}
	a.render(recs)
	return nil
}

// DeleteNote removes a note from a prompt.
func (a *App) DeleteNote(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter prompt id")
	if err != nil {
		return err
	}
	noteID, err := a.arg(args, 1, "Enter note id")
	if err != nil {
		return err
	}
	recs, err := a.records.DeleteNote(ctx, id, noteID)
	if err != nil {
		return err
	}
	a.render(recs)
	return nil
}

// Import merges prompts from a JSON export file. The path is remembered
// so a repeated "import" re-reads the same file; a malformed file clears
// it so the next attempt asks again.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) > 0 {
		a.importPath = strings.Join(args, " ")
	}
	if a.importPath == "" {
		p, err := a.arg(nil, 0, "Enter path to import file")
		if err != nil {
			return err
		}
		a.importPath = p
	}

	data, err := os.ReadFile(a.importPath)
	if err != nil {
		a.importPath = ""
		return fmt.Errorf("read import file: %w", err)
	}

	recs, err := a.records.MergeFromImport(ctx, data)
	if err != nil {
		if errors.Is(err, common.ErrImport) {
			a.importPath = ""
		}
		return err
	}
	a.render(recs)
	return nil
}

// Export writes the whole collection through the configured sink.
func (a *App) Export(ctx context.Context, args []string) error {
	format := merge.ParseFormat(a.config.ExportFormat)
	if len(args) > 0 {
		format = merge.ParseFormat(args[0])
	}

	var (
		data []byte
		err  error
	)
	if format == merge.FormatJSON {
		data, err = a.records.ExportSnapshot(ctx)
	} else {
		data, err = merge.Render(a.records.Load(ctx), format)
	}
	if err != nil {
		return err
	}

	loc, err := a.sink.Put(ctx, merge.Filename(a.now(), format), data)
	if err != nil {
		a.logger.Error(ctx, "export failed", "err", err)
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n", loc)
	return nil
}

// Status prints where the collection lives and whether it is saved.
func (a *App) Status(ctx context.Context) error {
	recs := a.records.Load(ctx)
	st, err := a.store.Stat(ctx)
	if err != nil {
		return err
	}

	saved := "never"
	if !st.SavedAt.IsZero() {
		saved = st.SavedAt.Format("2006-01-02 15:04:05")
	}
	state := "ok"
	if a.records.Degraded() {
		state = "unavailable, changes kept in memory"
	}

	fmt.Fprintf(a.out, "key: %s\n", st.Key)
	fmt.Fprintf(a.out, "prompts: %d\n", len(recs))
	fmt.Fprintf(a.out, "stored bytes: %d\n", st.Bytes)
	fmt.Fprintf(a.out, "last saved: %s\n", saved)
	fmt.Fprintf(a.out, "storage: %s\n", state)
	return nil
}

var _ execIface = (*App)(nil)
