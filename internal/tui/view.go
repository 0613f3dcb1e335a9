package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateCalendar:
		content = docStyle.Render(m.calendar.View())
	case constants.StateCollection:
		content = docStyle.Render(m.collection.View())
	case constants.StateArchive:
		content = docStyle.Render(m.archive.View())
	case constants.StateReading, constants.StateReport:
		content = docStyle.Render(m.reader.View())
	case constants.StateWriting, constants.StateEditing, constants.StateReportInstruction, constants.StateCollectionRange:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = lipgloss.Place(m.width, max(m.height-4, 0),
			lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				dangerStyle.Render("Delete this day?"),
				"",
				m.form.View(),
			),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Calendar", "Collection", "Archive"}
	current := m.state
	if !m.mainTab() {
		current = m.previousState
	}
	for i, title := range tabTitles {
		if current == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if m.state == constants.StateReport || m.state == constants.StateReading {
		tabs = append(tabs, activeTabStyle.Render(m.reader.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewStatus shows generation progress, or the outcome of the last action
func (m Model) viewStatus() string {
	switch {
	case m.workflow.Busy():
		label := "Composing..."
		switch m.workflow.State() {
		case constants.ComposeEnriching:
			label = "Reading your words..."
		case constants.ComposeIllustrating:
			label = "Painting the day..."
		}
		return busyStyle.Render(m.spinner.View() + " " + label)
	case m.reporting:
		return busyStyle.Render(m.spinner.View() + " Gathering your glimmers...")
	case m.status == "":
		return ""
	case m.statusErr:
		return warningStyle.Render(m.status)
	default:
		return okStyle.Render(m.status)
	}
}
