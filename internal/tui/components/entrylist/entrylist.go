package entrylist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

// WriteMsg asks to write (or append to) the entry of Day
type WriteMsg struct {
	Day string
}

type EditMsg struct {
	Entry models.JournalEntry
}

type DeleteMsg struct {
	Entry models.JournalEntry
}

type OpenMsg struct {
	Entry models.JournalEntry
}

// Item is one row: a day with or without an entry
type Item struct {
	Day   string
	Label string
	Entry *models.JournalEntry
}

func (i Item) Title() string {
	if i.Entry == nil {
		return i.Label + "  ·"
	}
	return i.Label + "  「" + i.Entry.Caption + "」"
}

func (i Item) Description() string {
	if i.Entry == nil {
		return "nothing recorded, press 'w' to write"
	}
	if len(i.Entry.Keywords) == 0 {
		return firstLine(i.Entry.RawText)
	}
	return "#" + strings.Join(i.Entry.Keywords, " #")
}

func (i Item) FilterValue() string {
	if i.Entry == nil {
		return i.Day
	}
	return i.Day + " " + i.Entry.Caption + " " + strings.Join(i.Entry.Keywords, " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

type KeyMap struct {
	Write  key.Binding
	Edit   key.Binding
	Delete key.Binding
	Open   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	empty string
}

// New builds a list titled title; empty is shown when there are no items
func New(title, empty string, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Write, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Write, keys.Edit, keys.Delete, keys.Open}
	}

	return Model{list: l, keys: keys, empty: empty}
}

func (m *Model) SetItems(items []Item) {
	li := make([]list.Item, len(items))
	for i, it := range items {
		li[i] = it
	}
	m.list.SetItems(li)
}

// Items returns the rows currently shown
func (m Model) Items() []Item {
	var out []Item
	for _, li := range m.list.Items() {
		if it, ok := li.(Item); ok {
			out = append(out, it)
		}
	}
	return out
}

// Selected returns the highlighted row
func (m Model) Selected() (Item, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}

// Select moves the cursor to index
func (m *Model) Select(index int) {
	m.list.Select(index)
}

// Filtering reports whether the user is typing a filter
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		i, ok := m.Selected()
		switch {
		case key.Matches(msg, m.keys.Write):
			if ok {
				return m, func() tea.Msg { return WriteMsg{Day: i.Day} }
			}
		case key.Matches(msg, m.keys.Edit):
			if ok && i.Entry != nil {
				e := i.Entry.Clone()
				return m, func() tea.Msg { return EditMsg{Entry: e} }
			}
		case key.Matches(msg, m.keys.Delete):
			if ok && i.Entry != nil {
				e := i.Entry.Clone()
				return m, func() tea.Msg { return DeleteMsg{Entry: e} }
			}
		case key.Matches(msg, m.keys.Open):
			if ok {
				if i.Entry == nil {
					return m, func() tea.Msg { return WriteMsg{Day: i.Day} }
				}
				e := i.Entry.Clone()
				return m, func() tea.Msg { return OpenMsg{Entry: e} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  " + m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
