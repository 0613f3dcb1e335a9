// Package report builds phase reports: an AI-written summary of a date
// range with statistics computed locally from the entries in it.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

var (
	// ErrNothingToSummarize is returned when no entry falls in the range
	ErrNothingToSummarize = errors.New("nothing to summarize in this range")
	// ErrReportFailed wraps every report synthesis failure
	ErrReportFailed = errors.New("report generation failed")
)

// Error attaches a user-facing message to a report failure
type Error struct {
	Err    error
	Locale constants.Locale
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// UserMessage is the text shown to the user
func (e *Error) UserMessage() string {
	if errors.Is(e.Err, ErrNothingToSummarize) {
		return constants.Msg(e.Locale, constants.MsgNothingToSummarize)
	}
	return constants.Msg(e.Locale, constants.MsgReportFailed)
}

// Option configures a Requester
type Option func(*Requester)

// WithLocation sets the timezone calendar days are computed in
func WithLocation(loc *time.Location) Option {
	return func(r *Requester) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithLocale sets the language of user-facing failure messages
func WithLocale(locale constants.Locale) Option {
	return func(r *Requester) {
		r.locale = locale
	}
}

// Requester filters entries to a range and asks the backend for a report.
// It never mutates the entries it is given.
type Requester struct {
	backend ai.Backend
	loc     *time.Location
	locale  constants.Locale
}

// New creates a Requester that delegates synthesis to backend
func New(backend ai.Backend, opts ...Option) *Requester {
	r := &Requester{
		backend: backend,
		loc:     time.Local,
		locale:  constants.LocaleZH,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InRange returns the entries whose calendar day lies within [start, end]
// (order-insensitive), oldest first
func InRange(entries []models.JournalEntry, start, end time.Time, loc *time.Location) []models.JournalEntry {
	start, end = utils.OrderRange(start, end)
	from := utils.DayKey(start, loc)
	to := utils.DayKey(end, loc)

	var out []models.JournalEntry
	for _, e := range entries {
		day := utils.DayKey(e.OccursOn, loc)
		if day == constants.UnknownDay || day < from || day > to {
			continue
		}
		out = append(out, e.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortValue() < out[j].SortValue()
	})
	return out
}

// Stats computes the local statistics. TotalDays mirrors RecordedDays: it
// counts entries, not calendar days in the span.
func Stats(entries []models.JournalEntry) models.ReportStats {
	highlights := 0
	for _, e := range entries {
		highlights += len(e.Highlights)
	}
	return models.ReportStats{
		TotalDays:      len(entries),
		RecordedDays:   len(entries),
		HighlightCount: highlights,
	}
}

// Build produces the phase report for [start, end]. An empty range fails
// with ErrNothingToSummarize before any backend call.
func (r *Requester) Build(ctx context.Context, entries []models.JournalEntry, start, end time.Time, instruction string) (models.PhaseReport, error) {
	inRange := InRange(entries, start, end, r.loc)
	if len(inRange) == 0 {
		return models.PhaseReport{}, &Error{Err: ErrNothingToSummarize, Locale: r.locale}
	}

	start, end = utils.OrderRange(start, end)
	req := ai.ReportRequest{
		Start:       utils.DayKey(start, r.loc),
		End:         utils.DayKey(end, r.loc),
		Instruction: strings.TrimSpace(instruction),
	}
	if req.Instruction == "" {
		req.Instruction = constants.DefaultInstruction
	}
	for _, e := range inRange {
		req.Entries = append(req.Entries, ai.DayText{Day: utils.DayKey(e.OccursOn, r.loc), Text: e.RawText})
	}

	logger.Info("Requesting phase report", "from", req.Start, "to", req.End, "entries", len(req.Entries))
	narrative, err := r.backend.SynthesizeReport(ctx, req)
	if err != nil {
		logger.Warn("Phase report failed", "error", err)
		return models.PhaseReport{}, &Error{Err: fmt.Errorf("%w: %w", ErrReportFailed, err), Locale: r.locale}
	}

	return models.PhaseReport{
		ReportNarrative: narrative,
		Stats:           Stats(inRange),
	}, nil
}
