// Package store persists the whole prompt collection as one JSON blob under
// a single key of a storage.KV. Reads never fail: a missing, corrupt or
// partially unreadable blob degrades to whatever could be recovered.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/logging"
	"github.com/dmitrijs2005/promptkeeper/internal/models"
	"github.com/dmitrijs2005/promptkeeper/internal/normalize"
	"github.com/dmitrijs2005/promptkeeper/internal/storage"
)

// savedAtSuffix names the companion row holding the last save time.
const savedAtSuffix = ".savedAt"

// Stat describes the persisted blob.
type Stat struct {
	Key     string
	Bytes   int
	SavedAt time.Time // zero if never saved
}

// Store is the sole writer of its key.
type Store struct {
	kv     storage.KV
	key    string
	logger logging.Logger
	now    func() time.Time
}

// New returns a Store over kv writing under key.
func New(kv storage.KV, key string, logger logging.Logger) *Store {
	return &Store{kv: kv, key: key, logger: logger.With("key", key), now: time.Now}
}

// Key returns the storage key the collection lives under.
func (s *Store) Key() string { return s.key }

// Load returns the persisted collection, normalized. It returns an empty
// collection when the key is absent or its value cannot be parsed; storage
// read errors are logged, not returned.
func (s *Store) Load(ctx context.Context) []models.Record {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn(ctx, "read failed, starting empty", "err", err)
		return []models.Record{}
	}
	if len(data) == 0 {
		return []models.Record{}
	}

	recs, skipped, err := normalize.Collection(data)
	if err != nil {
		s.logger.Warn(ctx, "stored collection is malformed, starting empty", "bytes", len(data), "err", err)
		return []models.Record{}
	}
	if skipped > 0 {
		s.logger.Warn(ctx, "skipped unreadable records", "skipped", skipped, "kept", len(recs))
	}
	s.logger.Debug(ctx, "collection loaded", "records", len(recs), "bytes", len(data))
	return recs
}

// Save overwrites the whole collection. The returned error wraps
// common.ErrStorage; callers treat it as a warning.
func (s *Store) Save(ctx context.Context, recs []models.Record) error {
	if recs == nil {
		recs = []models.Record{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %w", common.ErrStorage, err)
	}

	savedAt := strconv.FormatInt(models.Millis(s.now()), 10)
	err = s.kv.SetMany(ctx, map[string][]byte{
		s.key:                 data,
		s.key + savedAtSuffix: []byte(savedAt),
	})
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", common.ErrStorage, s.key, err)
	}

	s.logger.Debug(ctx, "collection saved", "records", len(recs), "bytes", len(data))
	return nil
}

// Stat reports the size and last save time of the stored blob.
func (s *Store) Stat(ctx context.Context) (Stat, error) {
	st := Stat{Key: s.key}

	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return st, fmt.Errorf("%w: read %s: %w", common.ErrStorage, s.key, err)
	}
	st.Bytes = len(data)

	raw, err := s.kv.Get(ctx, s.key+savedAtSuffix)
	if err != nil {
		return st, fmt.Errorf("%w: read %s: %w", common.ErrStorage, s.key+savedAtSuffix, err)
	}
	if ms, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		st.SavedAt = time.UnixMilli(ms)
	}
	return st, nil
}
