// Package compose turns raw text into a finished, illustrated journal entry.
//
// The workflow is an explicit state machine:
//
//	Idle → Enriching → Illustrating → Committing → Idle
//	           ↘            ↘
//	            Failed → Idle
//
// Begin and BeginEdit leave Idle and return the first Step. The driver
// performs that step and feeds the completion back through Advance until a
// Committed step or an error comes out. Run and RunEdit drive it against an
// ai.Backend synchronously; the TUI drives it one tea.Cmd at a time.
package compose

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

// EntryStore is the part of the journal the workflow needs
type EntryStore interface {
	FindByDay(key string) (models.JournalEntry, bool)
	FindByID(id string) (models.JournalEntry, bool)
	UpsertByDay(ctx context.Context, entry models.JournalEntry)
	ReplaceByID(ctx context.Context, entry models.JournalEntry) bool
	Location() *time.Location
}

// IDGenerator mints ids for new entries
type IDGenerator func() string

// NewUUID is the default IDGenerator
func NewUUID() string {
	return uuid.NewString()
}

// Option configures a Workflow
type Option func(*Workflow)

// WithIDGenerator replaces the id generator
func WithIDGenerator(gen IDGenerator) Option {
	return func(w *Workflow) {
		if gen != nil {
			w.newID = gen
		}
	}
}

// WithProgress registers a callback for every state transition
func WithProgress(fn func(constants.ComposeState)) Option {
	return func(w *Workflow) {
		w.progress = fn
	}
}

// WithLocale sets the language of user-facing failure messages
func WithLocale(locale constants.Locale) Option {
	return func(w *Workflow) {
		w.locale = locale
	}
}

// draft is the in-flight state of one composition
type draft struct {
	day        string
	id         string
	occursOn   time.Time
	text       string
	edit       bool
	base       models.JournalEntry
	enrichment models.Enrichment
}

// Workflow is not safe for concurrent use; one composition runs at a time
type Workflow struct {
	store    EntryStore
	newID    IDGenerator
	progress func(constants.ComposeState)
	locale   constants.Locale

	state   constants.ComposeState
	pending *draft
}

// New creates an idle workflow that commits into store
func New(store EntryStore, opts ...Option) *Workflow {
	w := &Workflow{
		store:  store,
		newID:  NewUUID,
		locale: constants.LocaleZH,
		state:  constants.ComposeIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current state
func (w *Workflow) State() constants.ComposeState {
	return w.state
}

// Busy reports whether a composition is in flight
func (w *Workflow) Busy() bool {
	return w.state != constants.ComposeIdle
}

// Cancel abandons the composition UI. It succeeds only while idle: once a
// backend call is in flight the workflow runs to completion or failure.
func (w *Workflow) Cancel() bool {
	return !w.Busy()
}

func (w *Workflow) setState(s constants.ComposeState) {
	if w.state == s {
		return
	}
	logger.Debug("Compose state", "from", w.state, "to", s)
	w.state = s
	if w.progress != nil {
		w.progress(s)
	}
}

// Begin starts a composition for day (YYYY-MM-DD). When the day already has
// an entry the new text is appended to it and its id is kept.
func (w *Workflow) Begin(day, text string) (Step, error) {
	if w.Busy() {
		return nil, ErrBusy
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	occursOn, err := utils.NoonOf(day, w.store.Location())
	if err != nil {
		return nil, err
	}

	d := &draft{day: day, occursOn: occursOn, text: text}
	if existing, ok := w.store.FindByDay(day); ok {
		d.id = existing.ID
		d.text = existing.RawText + constants.TextSeparator + text
	}
	return w.start(d), nil
}

// BeginEdit starts a re-composition of an existing entry with its full new
// text. The id and day are kept; nothing is merged. Text equal to the stored
// text needs no backend call: the stored entry comes back as Committed and
// the workflow stays idle.
func (w *Workflow) BeginEdit(id, fullText string) (Step, error) {
	if w.Busy() {
		return nil, ErrBusy
	}
	if strings.TrimSpace(fullText) == "" {
		return nil, ErrEmptyInput
	}
	existing, ok := w.store.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if fullText == existing.RawText {
		return Committed{Entry: existing}, nil
	}

	d := &draft{
		day:      utils.DayKey(existing.OccursOn, w.store.Location()),
		id:       existing.ID,
		occursOn: existing.OccursOn,
		text:     fullText,
		edit:     true,
		base:     existing,
	}
	return w.start(d), nil
}

func (w *Workflow) start(d *draft) Step {
	w.pending = d
	w.setState(constants.ComposeEnriching)
	return Enrich{Text: d.text}
}

// Advance feeds the completion of the last step into the workflow
func (w *Workflow) Advance(ctx context.Context, ev Event) (Step, error) {
	if f, ok := ev.(Failure); ok && (w.state == constants.ComposeEnriching || w.state == constants.ComposeIllustrating) {
		return nil, w.fail(f.Err)
	}

	switch w.state {
	case constants.ComposeEnriching:
		done, ok := ev.(EnrichDone)
		if !ok {
			return nil, w.fail(fmt.Errorf("%w: %T while %s", ErrUnexpectedEvent, ev, w.state))
		}
		w.pending.enrichment = done.Result.Normalize()
		w.setState(constants.ComposeIllustrating)
		return Illustrate{Prompt: w.pending.enrichment.ImagePrompt}, nil

	case constants.ComposeIllustrating:
		done, ok := ev.(IllustrateDone)
		if !ok {
			return nil, w.fail(fmt.Errorf("%w: %T while %s", ErrUnexpectedEvent, ev, w.state))
		}
		w.setState(constants.ComposeCommitting)
		entry := w.build(done.ImageURL)
		if !w.pending.edit || !w.store.ReplaceByID(ctx, entry) {
			w.store.UpsertByDay(ctx, entry)
		}
		w.pending = nil
		w.setState(constants.ComposeIdle)
		logger.Info("Entry committed", "id", entry.ID, "day", utils.DayKey(entry.OccursOn, w.store.Location()))
		return Committed{Entry: entry}, nil

	default:
		return nil, fmt.Errorf("%w: %T while %s", ErrUnexpectedEvent, ev, w.state)
	}
}

func (w *Workflow) build(imageURL string) models.JournalEntry {
	d := w.pending
	id := d.id
	if id == "" {
		id = w.newID()
	}
	// an edit starts from the stored entry so an unreadable date is kept
	entry := d.base
	entry.ID = id
	entry.OccursOn = d.occursOn
	entry.RawText = d.text
	entry.Caption = d.enrichment.Caption
	entry.ImageURL = imageURL
	entry.Keywords = d.enrichment.Keywords
	entry.Highlights = d.enrichment.Highlights
	return entry
}

func (w *Workflow) fail(err error) error {
	gerr := &GenerationError{Stage: w.state, Edit: w.pending != nil && w.pending.edit, Locale: w.locale, Err: err}
	logger.Warn("Composition failed", "stage", w.state, "error", err)
	w.setState(constants.ComposeFailed)
	w.pending = nil
	w.setState(constants.ComposeIdle)
	return gerr
}

// Run composes text into day against backend and returns the committed entry
func (w *Workflow) Run(ctx context.Context, backend ai.Backend, day, text string) (models.JournalEntry, error) {
	step, err := w.Begin(day, text)
	if err != nil {
		return models.JournalEntry{}, err
	}
	return w.drive(ctx, backend, step)
}

// RunEdit re-composes entry id with fullText against backend
func (w *Workflow) RunEdit(ctx context.Context, backend ai.Backend, id, fullText string) (models.JournalEntry, error) {
	step, err := w.BeginEdit(id, fullText)
	if err != nil {
		return models.JournalEntry{}, err
	}
	return w.drive(ctx, backend, step)
}

func (w *Workflow) drive(ctx context.Context, backend ai.Backend, step Step) (models.JournalEntry, error) {
	for {
		var (
			next Step
			err  error
		)
		switch s := step.(type) {
		case Enrich, Illustrate:
			next, err = w.Advance(ctx, Perform(ctx, backend, s))
		case Committed:
			return s.Entry, nil
		default:
			return models.JournalEntry{}, fmt.Errorf("unknown step %T", step)
		}
		if err != nil {
			return models.JournalEntry{}, err
		}
		step = next
	}
}

// Perform executes a backend step and wraps the outcome as an Event
func Perform(ctx context.Context, backend ai.Backend, step Step) Event {
	switch s := step.(type) {
	case Enrich:
		res, err := backend.EnrichText(ctx, s.Text)
		if err != nil {
			return Failure{Err: err}
		}
		return EnrichDone{Result: res}
	case Illustrate:
		url, err := backend.SynthesizeImage(ctx, s.Prompt)
		if err != nil {
			return Failure{Err: err}
		}
		if url == "" {
			return Failure{Err: ai.ErrNoImage}
		}
		return IllustrateDone{ImageURL: url}
	default:
		return Failure{Err: fmt.Errorf("step %T needs no backend call", step)}
	}
}
