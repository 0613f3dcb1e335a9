package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/compose"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/report"
)

// stepMsg carries the completion of one backend call back to the workflow
type stepMsg struct {
	event compose.Event
}

type reportMsg struct {
	report models.PhaseReport
	start  time.Time
	end    time.Time
	err    error
}

// performStep runs step off the UI goroutine. The workflow is only touched
// again when the resulting stepMsg reaches Update.
func performStep(backend ai.Backend, step compose.Step) tea.Cmd {
	return func() tea.Msg {
		return stepMsg{event: compose.Perform(context.Background(), backend, step)}
	}
}

// buildReport runs the requester over a snapshot of the entries
func buildReport(r *report.Requester, entries []models.JournalEntry, start, end time.Time, instruction string) tea.Cmd {
	return func() tea.Msg {
		res, err := r.Build(context.Background(), entries, start, end, instruction)
		return reportMsg{report: res, start: start, end: end, err: err}
	}
}
