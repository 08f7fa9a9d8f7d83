package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/estimate"
	"github.com/dmitrijs2005/promptkeeper/internal/logging"
	"github.com/dmitrijs2005/promptkeeper/internal/merge"
	"github.com/dmitrijs2005/promptkeeper/internal/models"
	"github.com/google/uuid"
)

// Persister loads and saves the whole collection. *store.Store implements it.
type Persister interface {
	Load(ctx context.Context) []models.Record
	Save(ctx context.Context, recs []models.Record) error
}

// RecordService defines the operations the presentation layer calls.
//
// Contract:
//   - Every method returns the refreshed collection (or a filtered view).
//   - Lookups that miss are silent no-ops, except Find.
//   - Validation failures wrap common.ErrValidation, malformed imports wrap
//     common.ErrImport. Storage failures are never returned: they are logged
//     and announced, and the in-memory snapshot serves later reads.
type RecordService interface {
	Load(ctx context.Context) []models.Record
	Search(ctx context.Context, query string) []models.Record
	Find(ctx context.Context, id string) (models.Record, error)
	AddRecord(ctx context.Context, title, content, model string) ([]models.Record, error)
	DeleteRecord(ctx context.Context, id string) ([]models.Record, error)
	SetRating(ctx context.Context, id string, value int) ([]models.Record, error)
	AddNote(ctx context.Context, id, text string) ([]models.Record, error)
	UpdateNote(ctx context.Context, id, noteID, text string) ([]models.Record, error)
	DeleteNote(ctx context.Context, id, noteID string) ([]models.Record, error)
	MergeFromImport(ctx context.Context, data []byte) ([]models.Record, error)
	ExportSnapshot(ctx context.Context) ([]byte, error)
	Degraded() bool
}

// Option configures a record service.
type Option func(*recordService)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *recordService) { s.now = now }
}

// WithIDGenerator overrides uuid.NewString for new records and notes.
func WithIDGenerator(gen func() string) Option {
	return func(s *recordService) { s.newID = gen }
}

// WithMetadataTracking enables model name validation and token estimates
// on new records.
func WithMetadataTracking(on bool) Option {
	return func(s *recordService) { s.tracking = on }
}

// WithAnnouncer sets where status messages go. The default drops them.
func WithAnnouncer(a Announcer) Option {
	return func(s *recordService) { s.announcer = a }
}

// WithLogger sets the logger for save failures and recovery.
func WithLogger(l logging.Logger) Option {
	return func(s *recordService) { s.logger = l }
}

type recordService struct {
	mu    sync.Mutex
	store Persister

	// snapshot replaces the store as the source of reads after a failed save,
	// until a save succeeds again.
	snapshot []models.Record
	degraded bool

	now       func() time.Time
	newID     func() string
	tracking  bool
	announcer Announcer
	logger    logging.Logger
}

// NewRecordService constructs a RecordService over store.
func NewRecordService(store Persister, opts ...Option) RecordService {
	s := &recordService{
		store:     store,
		now:       time.Now,
		newID:     uuid.NewString,
		announcer: silent{},
		logger:    logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *recordService) read(ctx context.Context) []models.Record {
	if s.degraded {
		return models.CloneAll(s.snapshot)
	}
	return s.store.Load(ctx)
}

// commit saves recs, announces msg, and returns a copy for the caller.
func (s *recordService) commit(ctx context.Context, recs []models.Record, msg string) []models.Record {
	if err := s.store.Save(ctx, recs); err != nil {
		s.logger.Warn(ctx, "save failed, keeping changes in memory", "err", err)
		s.snapshot = models.CloneAll(recs)
		if !s.degraded {
			s.announcer.Announce("Storage unavailable: changes are kept for this session only")
		}
		s.degraded = true
	} else if s.degraded {
		s.logger.Info(ctx, "storage recovered")
		s.snapshot = nil
		s.degraded = false
	}
	if msg != "" {
		s.announcer.Announce(msg)
	}
	return models.CloneAll(recs)
}

// Degraded reports whether the last save failed.
func (s *recordService) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *recordService) Load(ctx context.Context) []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

// Search returns records whose title or content contains query,
// case-insensitively. Only an empty query returns everything; whitespace is
// matched literally.
func (s *recordService) Search(ctx context.Context, query string) []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.read(ctx)
	q := strings.ToLower(query)
	if q == "" {
		return recs
	}

	out := make([]models.Record, 0, len(recs))
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Title), q) || strings.Contains(strings.ToLower(r.Content), q) {
			out = append(out, r)
		}
	}
	return out
}

func (s *recordService) Find(ctx context.Context, id string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.read(ctx)
	i := models.IndexByID(recs, id)
	if i < 0 {
		return models.Record{}, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}
	return recs[i], nil
}

func (s *recordService) AddRecord(ctx context.Context, title, content, model string) ([]models.Record, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrValidation)
	}

	now := s.now()
	r := models.Record{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		Notes:     []models.Note{},
		CreatedAt: models.Millis(now),
		UpdatedAt: models.Millis(now),
	}
	if s.tracking {
		md, err := estimate.NewMetadata(model, content, now)
		if err != nil {
			return nil, err
		}
		r.Metadata = md
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recs := append([]models.Record{r}, s.read(ctx)...)
	return s.commit(ctx, recs, "Prompt added"), nil
}

func (s *recordService) DeleteRecord(ctx context.Context, id string) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.read(ctx)
	i := models.IndexByID(recs, id)
	if i < 0 {
		return recs, nil
	}
	recs = append(recs[:i], recs[i+1:]...)
	return s.commit(ctx, recs, "Prompt deleted"), nil
}

// SetRating overwrites the rating of record id. Values outside 1..5 and
// unknown ids are ignored.
func (s *recordService) SetRating(ctx context.Context, id string, value int) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.read(ctx)
	i := models.IndexByID(recs, id)
	if i < 0 || value < models.RatingMin || value > models.RatingMax {
		return recs, nil
	}

	recs[i].UserRating = value
	s.touch(&recs[i])
	return s.commit(ctx, recs, ratingMessage(value)), nil
}

func ratingMessage(v int) string {
	if v == 1 {
		return "Rating set to 1 star"
	}
	return fmt.Sprintf("Rating set to %d stars", v)
}

func (s *recordService) AddNote(ctx context.Context, id, text string) ([]models.Record, error) {
	text, err := noteText(text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.read(ctx)
	i := models.IndexByID(recs, id)
	if i < 0 {
		return recs, nil
	}

	n := models.Note{ID: s.newID(), Text: text, UpdatedAt: models.Millis(s.now())}
	recs[i].Notes = append([]models.Note{n}, recs[i].Notes...)
	s.touch(&recs[i])
	return s.commit(ctx, recs, "Note added"), nil
}

func (s *recordService) UpdateNote(ctx context.Context, id, noteID, text string) ([]models.Record, error) {
	text, err := noteText(text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.read(ctx)
	i := models.IndexByID(recs, id)
	if i < 0 {
		return recs, nil
	}
	j := recs[i].NoteIndex(noteID)
	if j < 0 {
		return recs, nil
	}

	recs[i].Notes[j].Text = text
	recs[i].Notes[j].UpdatedAt = models.Millis(s.now())
	s.touch(&recs[i])
	return s.commit(ctx, recs, "Note updated"), nil
}

func (s *recordService) DeleteNote(ctx context.Context, id, noteID string) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.read(ctx)
	i := models.IndexByID(recs, id)
	if i < 0 {
		return recs, nil
	}
	j := recs[i].NoteIndex(noteID)
	if j < 0 {
		return recs, nil
	}

	notes := recs[i].Notes
	recs[i].Notes = append(notes[:j:j], notes[j+1:]...)
	s.touch(&recs[i])
	return s.commit(ctx, recs, "Note deleted"), nil
}

// MergeFromImport adds the records of an import payload that are not already
// present. A malformed payload merges nothing.
func (s *recordService) MergeFromImport(ctx context.Context, data []byte) ([]models.Record, error) {
	incoming, err := merge.ParseImport(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.read(ctx)
	merged := merge.MergeByID(recs, incoming, s.now())
	added := len(merged) - len(recs)
	return s.commit(ctx, merged, importMessage(added)), nil
}

func importMessage(n int) string {
	switch n {
	case 0:
		return "Nothing new to import"
	case 1:
		return "Imported 1 prompt"
	default:
		return fmt.Sprintf("Imported %d prompts", n)
	}
}

func (s *recordService) ExportSnapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return merge.Export(s.read(ctx))
}

func (s *recordService) touch(r *models.Record) {
	now := s.now()
	r.UpdatedAt = models.Millis(now)
	estimate.Touch(r.Metadata, now)
}

func noteText(text string) (string, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return "", fmt.Errorf("%w: note text is required", common.ErrValidation)
	case utf8.RuneCountInString(text) > models.MaxNoteLength:
		return "", fmt.Errorf("%w: note exceeds %d characters", common.ErrValidation, models.MaxNoteLength)
	}
	return text, nil
}

// IsUserError reports whether err should be shown to the user as is.
func IsUserError(err error) bool {
	return errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrImport) || errors.Is(err, common.ErrNotFound)
}
