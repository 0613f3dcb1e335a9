package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/compose"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/report"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/tui/components/calendar"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/tui/components/entrylist"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Completions arrive whatever screen is showing
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		// tabs, status line and help take roughly five lines
		bodyHeight := msg.Height - 5
		m.calendar.SetSize(msg.Width-h, bodyHeight-v)
		m.collection.SetSize(msg.Width-h, bodyHeight-v)
		m.archive.SetSize(msg.Width-h, bodyHeight-v)
		m.reader.SetSize(msg.Width-h, bodyHeight-v)
		m.help.Width = msg.Width
		return m, nil
	case stepMsg:
		return m.handleStep(msg)
	case reportMsg:
		return m.handleReport(msg)
	case spinner.TickMsg:
		if !m.workflow.Busy() && !m.reporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case constants.StateWriting, constants.StateEditing:
		return m.updateWriteForm(msg)
	case constants.StateReportInstruction:
		return m.updateReportForm(msg)
	case constants.StateCollectionRange:
		return m.updateRangeForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case constants.StateReading, constants.StateReport:
		return m.updateReader(msg)
	}

	switch msg := msg.(type) {
	case calendar.ChangeMonthMsg:
		m.showMonth(msg.Year, msg.Month, msg.Day)
		return m, nil
	case entrylist.WriteMsg:
		return m.startWrite(msg.Day)
	case entrylist.EditMsg:
		return m.startEdit(msg.Entry.ID)
	case entrylist.DeleteMsg:
		e := msg.Entry
		m.deleting = &e
		m.confirmForm = &ConfirmFormModel{}
		m.form = NewConfirmDeleteForm(m.confirmForm, m.ctx.Journal.DayOf(e), m.ctx.Locale())
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, m.form.Init()
	case entrylist.OpenMsg:
		m.reader.SetEntry(m.ctx.Journal.DayOf(msg.Entry), msg.Entry)
		m.previousState = m.state
		m.state = constants.StateReading
		return m, nil
	case tea.KeyMsg:
		if m.filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			if msg.String() != "ctrl+c" && (m.workflow.Busy() || m.reporting) {
				m.setStatus(constants.Msg(m.ctx.Locale(), constants.MsgBusy), true)
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Report):
			return m.startReport()
		case key.Matches(msg, m.keys.Range) && m.state == constants.StateCollection:
			return m.startRange()
		case key.Matches(msg, m.keys.Today):
			now := m.ctx.Clock().In(m.ctx.Location())
			m.showMonth(now.Year(), now.Month(), now.Day())
			m.state = constants.StateCalendar
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
	case constants.StateCollection:
		m.collection, cmd = m.collection.Update(msg)
	case constants.StateArchive:
		m.archive, cmd = m.archive.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.state {
	case constants.StateCollection:
		return m.collection.Filtering()
	case constants.StateArchive:
		return m.archive.Filtering()
	}
	return false
}

func (m Model) startWrite(day string) (tea.Model, tea.Cmd) {
	if m.workflow.Busy() {
		m.setStatus(constants.Msg(m.ctx.Locale(), constants.MsgBusy), true)
		return m, nil
	}
	_, appending := m.ctx.Journal.FindByDay(day)
	m.writeForm = &WriteFormModel{Day: day}
	m.form = NewWriteForm(m.writeForm, appending, m.ctx.Locale())
	m.editingID = ""
	m.previousState = m.state
	m.state = constants.StateWriting
	return m, m.form.Init()
}

func (m Model) startEdit(id string) (tea.Model, tea.Cmd) {
	if m.workflow.Busy() {
		m.setStatus(constants.Msg(m.ctx.Locale(), constants.MsgBusy), true)
		return m, nil
	}
	e, ok := m.ctx.Journal.FindByID(id)
	if !ok {
		return m, nil
	}
	m.writeForm = &WriteFormModel{Day: m.ctx.Journal.DayOf(e), Text: e.RawText}
	m.form = NewEditForm(m.writeForm, m.ctx.Locale())
	m.editingID = id
	m.previousState = m.state
	m.state = constants.StateEditing
	return m, m.form.Init()
}

func (m Model) startReport() (tea.Model, tea.Cmd) {
	if m.reporting {
		m.setStatus(constants.Msg(m.ctx.Locale(), constants.MsgBusy), true)
		return m, nil
	}
	start, end := m.collectionRange()
	m.reportForm = &ReportFormModel{
		From: utils.DayKey(start, m.ctx.Location()),
		To:   utils.DayKey(end, m.ctx.Location()),
	}
	m.form = NewReportForm(m.reportForm)
	m.previousState = m.state
	m.state = constants.StateReportInstruction
	return m, m.form.Init()
}

// updateForm feeds msg to the open form; esc aborts it
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		m.form.State = huh.StateAborted
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

func (m Model) updateWriteForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateForm(msg)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		return m.beginCompose()
	case huh.StateAborted:
		if m.workflow.Cancel() {
			m.state = m.previousState
		}
		return m, nil
	}
	return m, cmd
}

// beginCompose starts the workflow for the completed write or edit form and
// schedules its first backend call
func (m Model) beginCompose() (tea.Model, tea.Cmd) {
	if m.editingID != "" {
		if e, ok := m.ctx.Journal.FindByID(m.editingID); ok && e.RawText == m.writeForm.Text {
			m.setStatus(constants.Msg(m.ctx.Locale(), constants.MsgUnchanged), false)
			return m, nil
		}
	}

	backend, err := m.ctx.Backend(context.Background())
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	var step compose.Step
	if m.editingID != "" {
		step, err = m.workflow.BeginEdit(m.editingID, m.writeForm.Text)
	} else {
		step, err = m.workflow.Begin(m.writeForm.Day, m.writeForm.Text)
	}
	if err != nil {
		m.setStatus(m.ctx.Explain(err).Error(), true)
		return m, nil
	}

	m.backend = backend
	m.setStatus("", false)
	return m, tea.Batch(m.spinner.Tick, performStep(backend, step))
}

func (m Model) handleStep(msg stepMsg) (tea.Model, tea.Cmd) {
	next, err := m.workflow.Advance(context.Background(), msg.event)
	if err != nil {
		m.setStatus(m.ctx.Explain(err).Error(), true)
		return m, nil
	}

	if done, ok := next.(compose.Committed); ok {
		day := m.ctx.Journal.DayOf(done.Entry)
		m.setStatus(fmt.Sprintf("✓ %s 「%s」", day, done.Entry.Caption), false)
		m.collectNotices()
		m.refresh()
		if m.state == constants.StateReading {
			if e, ok := m.ctx.Journal.FindByID(done.Entry.ID); ok {
				m.reader.SetEntry(day, e)
			}
		}
		return m, nil
	}
	return m, performStep(m.backend, next)
}

func (m Model) startRange() (tea.Model, tea.Cmd) {
	m.rangeForm = &RangeFormModel{From: m.span.From, To: m.span.To}
	m.form = NewRangeForm(m.rangeForm, m.collectionDays())
	m.previousState = m.state
	m.state = constants.StateCollectionRange
	return m, m.form.Init()
}

// updateRangeForm applies the chosen collection range. Both ends are stored
// as typed; ResolveRange orders them.
func (m Model) updateRangeForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateForm(msg)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		loc := m.ctx.Location()
		if _, _, err := cli.ResolveRange(m.rangeForm.From, m.rangeForm.To, m.collectionDays(), m.ctx.Clock(), loc); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.span = *m.rangeForm
		start, end := m.collectionRange()
		m.refreshLists()
		m.setStatus(utils.DayKey(start, loc)+" ~ "+utils.DayKey(end, loc), false)
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateReportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateForm(msg)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		return m.runReport()
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) runReport() (tea.Model, tea.Cmd) {
	loc := m.ctx.Location()
	start, end, err := cli.ResolveRange(m.reportForm.From, m.reportForm.To, m.collectionDays(), m.ctx.Clock(), loc)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	entries := m.ctx.Journal.Entries()
	if len(report.InRange(entries, start, end, loc)) == 0 {
		m.setStatus(constants.Msg(m.ctx.Locale(), constants.MsgNothingToSummarize), true)
		return m, nil
	}

	backend, err := m.ctx.Backend(context.Background())
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	m.reporting = true
	m.setStatus("", false)
	requester := report.New(backend, report.WithLocation(loc), report.WithLocale(m.ctx.Locale()))
	return m, tea.Batch(m.spinner.Tick, buildReport(requester, entries, start, end, m.reportForm.Instruction))
}

func (m Model) handleReport(msg reportMsg) (tea.Model, tea.Cmd) {
	m.reporting = false
	if msg.err != nil {
		m.setStatus(m.ctx.Explain(msg.err).Error(), true)
		return m, nil
	}

	loc := m.ctx.Location()
	title := utils.DayKey(msg.start, loc) + " ~ " + utils.DayKey(msg.end, loc)
	m.reader.SetPage(title, report.RenderPoster(msg.report, msg.start, msg.end, m.ctx.Clock(), loc, m.ctx.Locale()))
	if m.mainTab() {
		m.previousState = m.state
	}
	m.state = constants.StateReport
	m.setStatus("", false)
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateForm(msg)

	switch m.form.State {
	case huh.StateCompleted:
		if m.confirmForm.Confirmed && m.deleting != nil {
			m.ctx.PerformAutomaticBackup()
			day := m.ctx.Journal.DayOf(*m.deleting)
			if m.ctx.Journal.RemoveByID(context.Background(), m.deleting.ID) {
				m.setStatus("✓ deleted "+day, false)
			}
			m.collectNotices()
			m.refresh()
		}
		m.deleting = nil
		m.state = m.previousState
		return m, nil
	case huh.StateAborted:
		m.deleting = nil
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateReader(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Back):
			m.state = m.previousState
			return m, nil
		case key.Matches(km, m.keys.Quit):
			if km.String() == "ctrl+c" || (!m.workflow.Busy() && !m.reporting) {
				m.quitting = true
				return m, tea.Quit
			}
			m.state = m.previousState
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.reader, cmd = m.reader.Update(msg)
	return m, cmd
}
