package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/tui/components/entrylist"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/views"
)

const cellWidth = 5

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(cellWidth)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(cellWidth)

	filledStyle = dayStyle.
			Foreground(lipgloss.Color("214")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Width(cellWidth)

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Italic(true).
			MarginTop(1)
)

// ChangeMonthMsg asks the parent to load another month
type ChangeMonthMsg struct {
	Year  int
	Month time.Month
	// Day is where the cursor lands, clamped to the month
	Day int
}

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	entrylist.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		KeyMap: entrylist.DefaultKeyMap(),
	}
}

// Model is a month grid with a day cursor
type Model struct {
	grid   views.Grid
	cursor int
	locale constants.Locale
	keys   KeyMap
	width  int
	height int
}

func New(locale constants.Locale) Model {
	return Model{locale: locale, keys: DefaultKeyMap(), cursor: 1}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// SetGrid shows grid with the cursor on day, clamped to the month
func (m *Model) SetGrid(grid views.Grid, day int) {
	m.grid = grid
	m.cursor = clamp(day, 1, len(grid.Days()))
}

// Grid returns the month on display
func (m Model) Grid() views.Grid {
	return m.grid
}

// Selected returns the slot under the cursor
func (m Model) Selected() (views.MonthSlot, bool) {
	days := m.grid.Days()
	if m.cursor < 1 || m.cursor > len(days) {
		return views.MonthSlot{}, false
	}
	return days[m.cursor-1], true
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(m.grid.Slots) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Left):
		return m.move(-1)
	case key.Matches(km, m.keys.Right):
		return m.move(1)
	case key.Matches(km, m.keys.Up):
		return m.move(-7)
	case key.Matches(km, m.keys.Down):
		return m.move(7)
	case key.Matches(km, m.keys.PrevMonth):
		return m, m.changeMonth(-1, m.cursor)
	case key.Matches(km, m.keys.NextMonth):
		return m, m.changeMonth(1, m.cursor)
	}

	slot, ok := m.Selected()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Write):
		return m, func() tea.Msg { return entrylist.WriteMsg{Day: slot.Key} }
	case key.Matches(km, m.keys.Open):
		if slot.Entry == nil {
			return m, func() tea.Msg { return entrylist.WriteMsg{Day: slot.Key} }
		}
		e := slot.Entry.Clone()
		return m, func() tea.Msg { return entrylist.OpenMsg{Entry: e} }
	case key.Matches(km, m.keys.Edit):
		if slot.Entry != nil {
			e := slot.Entry.Clone()
			return m, func() tea.Msg { return entrylist.EditMsg{Entry: e} }
		}
	case key.Matches(km, m.keys.Delete):
		if slot.Entry != nil {
			e := slot.Entry.Clone()
			return m, func() tea.Msg { return entrylist.DeleteMsg{Entry: e} }
		}
	}
	return m, nil
}

// move shifts the cursor by delta days, crossing into the neighbouring
// month when it runs off either end
func (m Model) move(delta int) (Model, tea.Cmd) {
	target := m.cursor + delta
	n := len(m.grid.Days())
	switch {
	case target < 1:
		prev := utils.DaysInMonth(m.grid.Year, m.grid.Month-1)
		return m, m.changeMonth(-1, prev+target)
	case target > n:
		return m, m.changeMonth(1, target-n)
	}
	m.cursor = target
	return m, nil
}

func (m Model) changeMonth(delta, day int) tea.Cmd {
	first := time.Date(m.grid.Year, m.grid.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return func() tea.Msg {
		return ChangeMonthMsg{Year: first.Year(), Month: first.Month(), Day: day}
	}
}

func (m Model) View() string {
	if len(m.grid.Slots) == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(views.MonthTitle(m.grid.Year, m.grid.Month, m.locale)) + "\n")

	headers := make([]string, 0, 7)
	for _, h := range views.WeekdayHeaders(m.locale) {
		headers = append(headers, headerStyle.Render(h))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...) + "\n")

	for _, week := range m.grid.Weeks() {
		cells := make([]string, 0, 7)
		for _, s := range week {
			cells = append(cells, m.renderCell(s))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}

	if slot, ok := m.Selected(); ok {
		if slot.Entry != nil {
			b.WriteString(captionStyle.Render(fmt.Sprintf("%s  「%s」", slot.Key, slot.Entry.Caption)))
		} else {
			b.WriteString(captionStyle.Render(slot.Key + "  ·"))
		}
	}
	return b.String()
}

func (m Model) renderCell(s views.MonthSlot) string {
	if s.Padding {
		return dayStyle.Render("")
	}
	label := fmt.Sprintf("%2d", s.Day)
	if s.Entry != nil {
		label += "*"
	}
	switch {
	case s.Day == m.cursor:
		return cursorStyle.Render(label)
	case s.Entry != nil:
		return filledStyle.Render(label)
	default:
		return dayStyle.Render(label)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
