package reader

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Italic(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is a scrollable page holding an entry or a rendered report
type Model struct {
	viewport viewport.Model
	title    string
	content  string
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.content == "" {
		return "Nothing to read."
	}
	return m.viewport.View()
}

// Title is the heading of the current page
func (m Model) Title() string {
	return m.title
}

// Content returns the unstyled page text
func (m Model) Content() string {
	return m.content
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

// SetPage replaces the page and scrolls back to the top
func (m *Model) SetPage(title, content string) {
	m.title = title
	m.content = content
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// SetEntry shows one journal entry under the day heading
func (m *Model) SetEntry(day string, e models.JournalEntry) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(day) + "\n\n")
	b.WriteString(captionStyle.Render("「"+e.Caption+"」") + "\n\n")
	b.WriteString(e.RawText + "\n")
	if len(e.Highlights) > 0 {
		b.WriteString("\n")
		for _, h := range e.Highlights {
			b.WriteString("✦ " + h + "\n")
		}
	}
	if len(e.Keywords) > 0 {
		b.WriteString("\n" + tagStyle.Render("#"+strings.Join(e.Keywords, " #")) + "\n")
	}
	if e.ImageURL != "" {
		b.WriteString("\n" + tagStyle.Render(imageNote(e.ImageURL)) + "\n")
	}
	m.SetPage(day, b.String())
}

// imageNote describes the image without dumping a data URL on screen
func imageNote(url string) string {
	if strings.HasPrefix(url, "data:") {
		mime := strings.TrimPrefix(url, "data:")
		if i := strings.IndexByte(mime, ';'); i >= 0 {
			mime = mime[:i]
		}
		return "[image: " + mime + ", " + humanize.Bytes(uint64(len(url))) + "]"
	}
	return "[image: " + url + "]"
}
