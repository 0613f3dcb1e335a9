// Package tui is the interactive journal: a month calendar, the recent-days
// collection and the full archive, with writing, editing and phase reports.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/compose"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/tui/components/calendar"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/tui/components/entrylist"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/tui/components/reader"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/views"
)

// noticeBox collects journal warnings raised while Update runs
type noticeBox struct {
	items []string
}

func (n *noticeBox) add(message string) {
	n.items = append(n.items, message)
}

func (n *noticeBox) drain() []string {
	out := n.items
	n.items = nil
	return out
}

type Model struct {
	ctx      *cli.Context
	workflow *compose.Workflow
	backend  ai.Backend
	notices  *noticeBox

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model

	calendar   calendar.Model
	collection entrylist.Model
	archive    entrylist.Model
	reader     reader.Model

	form        *huh.Form
	writeForm   *WriteFormModel
	reportForm  *ReportFormModel
	rangeForm   *RangeFormModel
	confirmForm *ConfirmFormModel
	editingID   string
	span        RangeFormModel
	deleting    *models.JournalEntry

	reporting bool
	status    string
	statusErr bool
	quitting  bool
	width     int
	height    int
}

// NewModel builds the TUI over the loaded journal in ctx. Journal warnings
// are routed to the status line from here on.
func NewModel(ctx *cli.Context) Model {
	notices := &noticeBox{}
	ctx.OnWarning = notices.add

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = busyStyle

	m := Model{
		ctx:        ctx,
		workflow:   ctx.Workflow(),
		notices:    notices,
		state:      constants.StateCalendar,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		calendar:   calendar.New(ctx.Locale()),
		collection: entrylist.New("Collection", constants.Msg(ctx.Locale(), constants.MsgNothingToSummarize), 0, 0),
		archive:    entrylist.New("Archive", "No entries yet. Press 'w' on a calendar day to write one.", 0, 0),
		reader:     reader.New(0, 0),
	}

	now := ctx.Clock().In(ctx.Location())
	m.showMonth(now.Year(), now.Month(), now.Day())
	m.refreshLists()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the screen being shown
func (m Model) State() constants.SessionState {
	return m.state
}

// Status returns the status line text and whether it reports an error
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// Composing reports whether an entry is being generated
func (m Model) Composing() bool {
	return m.workflow.Busy()
}

func (m Model) collectionDays() int {
	if m.ctx.Config != nil && m.ctx.Config.CollectionDays > 0 {
		return m.ctx.Config.CollectionDays
	}
	return constants.DefaultCollection
}

// collectionRange is the chosen collection range, or the last
// collection.days days when none is set
func (m Model) collectionRange() (time.Time, time.Time) {
	start, end, err := cli.ResolveRange(m.span.From, m.span.To, m.collectionDays(), m.ctx.Clock(), m.ctx.Location())
	if err != nil {
		return views.RecentRange(m.ctx.Clock(), m.collectionDays(), m.ctx.Location())
	}
	return start, end
}

// showMonth rebuilds the calendar grid for year/month from the journal
func (m *Model) showMonth(year int, month time.Month, day int) {
	grid := views.MonthGrid(year, month, m.ctx.Journal.Entries(), m.ctx.Location())
	m.calendar.SetGrid(grid, day)
}

func (m *Model) refreshLists() {
	entries := m.ctx.Journal.Entries()

	start, end := m.collectionRange()
	slots := views.Window(start, end, entries, m.ctx.Location(), m.ctx.Locale())
	recent := make([]entrylist.Item, 0, len(slots))
	for i := len(slots) - 1; i >= 0; i-- {
		s := slots[i]
		recent = append(recent, entrylist.Item{
			Day:   s.Key,
			Label: s.MonthLabel + " " + s.DayLabel + " " + s.WeekdayLabel,
			Entry: s.Entry,
		})
	}
	m.collection.SetItems(recent)

	archived := views.Archive(entries)
	all := make([]entrylist.Item, 0, len(archived))
	for i := range archived {
		day := m.ctx.Journal.DayOf(archived[i])
		all = append(all, entrylist.Item{Day: day, Label: day, Entry: &archived[i]})
	}
	m.archive.SetItems(all)
}

// refresh redraws every view after the journal changed
func (m *Model) refresh() {
	g := m.calendar.Grid()
	day := 1
	if s, ok := m.calendar.Selected(); ok {
		day = s.Day
	}
	m.showMonth(g.Year, g.Month, day)
	m.refreshLists()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// collectNotices moves pending journal warnings onto the status line
func (m *Model) collectNotices() {
	for _, n := range m.notices.drain() {
		m.setStatus("⚠ "+n, true)
	}
}

func (m Model) mainTab() bool {
	return m.state < constants.NumMainTabs
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateReading, constants.StateReport:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	case constants.StateWriting, constants.StateEditing, constants.StateReportInstruction, constants.StateConfirmDelete, constants.StateCollectionRange:
		return []key.Binding{m.keys.Back}
	}
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Report}
	if m.state == constants.StateCollection {
		keys = append(keys, m.keys.Range)
	}
	ck := m.calendar.Keys()
	keys = append(keys, ck.Write, ck.Edit, ck.Delete)
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Report, m.keys.Today, m.keys.Range}
	ck := m.calendar.Keys()
	var navigation []key.Binding
	if m.state == constants.StateCalendar {
		navigation = []key.Binding{ck.Up, ck.Down, ck.Left, ck.Right, ck.PrevMonth, ck.NextMonth}
	}
	actions := []key.Binding{ck.Write, ck.Edit, ck.Delete, ck.Open}
	return [][]key.Binding{global, navigation, actions}
}
