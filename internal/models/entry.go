package models

import (
	"encoding/json"
	"time"
)

// JournalEntry is one day's accumulated journal record
type JournalEntry struct {
	ID         string
	OccursOn   time.Time
	RawText    string
	Caption    string
	ImageURL   string
	Keywords   []string
	Highlights []string

	// rawDate keeps a stored date that did not parse so that saving the
	// entry again writes it back unchanged
	rawDate string
}

// entryRecord is the persisted shape of a JournalEntry. Date stays a string
// so that a malformed timestamp survives a load/save cycle untouched.
type entryRecord struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	RawText    string    `json:"rawText"`
	Caption    string    `json:"poeticQuote"`
	ImageURL   string    `json:"imageUrl"`
	Keywords   []string  `json:"keywords"`
	Highlights *[]string `json:"highlights,omitempty"`
}

// MarshalJSON writes the entry in the exchange format with an RFC 3339 date
func (e JournalEntry) MarshalJSON() ([]byte, error) {
	highlights := e.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	keywords := e.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	date := e.rawDate
	if !e.OccursOn.IsZero() {
		date = e.OccursOn.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(entryRecord{
		ID:         e.ID,
		Date:       date,
		RawText:    e.RawText,
		Caption:    e.Caption,
		ImageURL:   e.ImageURL,
		Keywords:   keywords,
		Highlights: &highlights,
	})
}

// UnmarshalJSON reads the exchange format. A missing highlights field becomes
// an empty list and an unparseable date leaves OccursOn at the zero time
// while the original text is kept for the next save.
func (e *JournalEntry) UnmarshalJSON(data []byte) error {
	var rec entryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	*e = JournalEntry{
		ID:         rec.ID,
		RawText:    rec.RawText,
		Caption:    rec.Caption,
		ImageURL:   rec.ImageURL,
		Keywords:   rec.Keywords,
		Highlights: []string{},
	}
	if e.Keywords == nil {
		e.Keywords = []string{}
	}
	if rec.Highlights != nil && *rec.Highlights != nil {
		e.Highlights = *rec.Highlights
	}
	if t, err := ParseInstant(rec.Date); err == nil {
		e.OccursOn = t
	} else {
		e.rawDate = rec.Date
	}
	return nil
}

// SortValue is the numeric ordering value of the entry's timestamp; entries
// without a valid timestamp sort as zero.
func (e JournalEntry) SortValue() int64 {
	if e.OccursOn.IsZero() {
		return 0
	}
	return e.OccursOn.UnixMilli()
}

// Clone returns a deep copy so callers never share slices with the store
func (e JournalEntry) Clone() JournalEntry {
	c := e
	c.Keywords = append([]string{}, e.Keywords...)
	c.Highlights = append([]string{}, e.Highlights...)
	return c
}

// ParseInstant parses the ISO-8601 forms found in stored data: RFC 3339 with
// or without fractional seconds, or a bare date.
func ParseInstant(s string) (time.Time, error) {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z07:00", "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
