// Package journal holds the ordered, one-entry-per-day collection of journal
// entries and keeps it in sync with a durable key-value provider.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

// Warner surfaces a message to the person using the app
type Warner func(message string)

// Option configures a Store
type Option func(*Store)

// WithLocation sets the timezone used to compute calendar days
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithWarner sets where user-facing persistence warnings go
func WithWarner(w Warner) Option {
	return func(s *Store) {
		if w != nil {
			s.warn = w
		}
	}
}

// WithLocale sets the language of user-facing warnings
func WithLocale(locale constants.Locale) Option {
	return func(s *Store) {
		s.locale = locale
	}
}

// WithKey overrides the record key the journal is persisted under
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Store is the single owner of the entry sequence. It is not safe for
// concurrent use; callers drive it from one goroutine.
type Store struct {
	provider storage.Provider
	key      string
	loc      *time.Location
	warn     Warner
	locale   constants.Locale

	entries     []models.JournalEntry
	quotaWarned bool
}

// New creates a store backed by provider. A nil provider keeps everything in
// memory.
func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		key:      constants.StorageKey,
		loc:      time.Local,
		warn:     func(msg string) { logger.Warn(msg) },
		locale:   constants.LocaleZH,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the timezone calendar days are computed in
func (s *Store) Location() *time.Location {
	return s.loc
}

// DayOf returns the canonical day key of an entry
func (s *Store) DayOf(e models.JournalEntry) string {
	return utils.DayKey(e.OccursOn, s.loc)
}

// Load replaces the in-memory sequence with the persisted one. A missing
// record is an empty journal; an undecodable record is logged, set aside
// under "<key>.corrupt" and also treated as empty.
func (s *Store) Load(ctx context.Context) error {
	s.entries = nil
	if s.provider == nil {
		return nil
	}

	data, err := s.provider.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Debug("No saved journal found, starting empty", "key", s.key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	entries, err := Decode(data)
	if err != nil {
		logger.Error("Saved journal is corrupt, starting empty", "key", s.key, "error", err)
		if perr := s.provider.Put(ctx, s.key+".corrupt", data); perr != nil {
			logger.Warn("Could not keep a copy of the corrupt journal", "error", perr)
		}
		return nil
	}

	s.entries = entries
	s.sort()
	logger.Debug("Journal loaded", "entries", len(s.entries))
	return nil
}

// Save writes the full ordered sequence to the provider
func (s *Store) Save(ctx context.Context) error {
	if s.provider == nil {
		return nil
	}
	data, err := Encode(s.entries)
	if err != nil {
		return err
	}
	return s.provider.Put(ctx, s.key, data)
}

// autosave persists after a mutation. A full store is reported once through
// the warner; every other failure is only logged.
func (s *Store) autosave(ctx context.Context) {
	err := s.Save(ctx)
	switch {
	case err == nil:
		s.quotaWarned = false
	case errors.Is(err, storage.ErrQuotaExceeded):
		logger.Warn("Journal not saved, storage quota exceeded", "entries", len(s.entries))
		if !s.quotaWarned {
			s.quotaWarned = true
			s.warn(constants.Msg(s.locale, constants.MsgStorageFull))
		}
	default:
		logger.Error("Journal not saved", "error", err)
	}
}

// UpsertByDay stores entry in the slot of its calendar day, replacing any
// entry already there, and re-sorts the sequence newest first. The replace is
// a plain overwrite; merging text is up to the caller.
func (s *Store) UpsertByDay(ctx context.Context, entry models.JournalEntry) {
	s.upsert(entry)
	s.autosave(ctx)
}

func (s *Store) upsert(entry models.JournalEntry) {
	day := s.DayOf(entry)
	entry = entry.Clone()

	replaced := false
	for i := range s.entries {
		if s.DayOf(s.entries[i]) == day {
			s.entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.entries = append(s.entries, entry)
	}
	s.sort()
}

// ReplaceByID overwrites the entry with the same id as entry and re-sorts.
// Edits go through here so that entries sharing a day key, such as several
// with unreadable dates, are never mistaken for one another. It reports
// false and changes nothing when the id is not present.
func (s *Store) ReplaceByID(ctx context.Context, entry models.JournalEntry) bool {
	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries[i] = entry.Clone()
			s.sort()
			s.autosave(ctx)
			return true
		}
	}
	return false
}

// RemoveByID deletes the entry with id. Removing an id that is not present
// is a no-op and reports false.
func (s *Store) RemoveByID(ctx context.Context, id string) bool {
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.autosave(ctx)
			return true
		}
	}
	return false
}

// FindByDay returns a copy of the entry for the given day key
func (s *Store) FindByDay(key string) (models.JournalEntry, bool) {
	for _, e := range s.entries {
		if s.DayOf(e) == key {
			return e.Clone(), true
		}
	}
	return models.JournalEntry{}, false
}

// FindByID returns a copy of the entry with the given id
func (s *Store) FindByID(id string) (models.JournalEntry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.JournalEntry{}, false
}

// Entries returns a snapshot of the sequence, newest first
func (s *Store) Entries() []models.JournalEntry {
	out := make([]models.JournalEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// Import upserts every entry by day and saves once. Later entries for the
// same day win. It returns how many entries were applied.
func (s *Store) Import(ctx context.Context, entries []models.JournalEntry) int {
	for _, e := range entries {
		s.upsert(e)
	}
	if len(entries) > 0 {
		s.autosave(ctx)
	}
	return len(entries)
}

// Export encodes the sequence in the exchange format
func (s *Store) Export() ([]byte, error) {
	return Encode(s.entries)
}

func (s *Store) sort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].SortValue() > s.entries[j].SortValue()
	})
}

// Encode serializes entries as the JSON exchange format
func Encode(entries []models.JournalEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal: %w", err)
	}
	return data, nil
}

// Decode parses the JSON exchange format
func Decode(data []byte) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}
	return entries, nil
}
