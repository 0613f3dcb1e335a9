package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

const (
	posterWidth     = 48
	posterKeywords  = 5
	posterNarrative = 3
)

// ThemeColor maps a report's visual theme onto a terminal accent color
func ThemeColor(theme string) lipgloss.Color {
	t := strings.ToLower(theme)
	switch {
	case strings.Contains(t, "sunset") || strings.Contains(t, "amber"):
		return lipgloss.Color("214")
	case strings.Contains(t, "forest") || strings.Contains(t, "mist"):
		return lipgloss.Color("72")
	case strings.Contains(t, "ocean") || strings.Contains(t, "breeze"):
		return lipgloss.Color("74")
	default:
		return lipgloss.Color("180")
	}
}

type posterLabels struct {
	badge, days, moments, healing, footer, captured string
}

func labelsFor(locale constants.Locale) posterLabels {
	if locale == constants.LocaleEN {
		return posterLabels{"PHASE REPORT", "glowing days", "happy moments", "healing", "Glimmer Mood · Phase Report", "Captured on"}
	}
	return posterLabels{"PHASE REPORT", "有光天数", "心动瞬间", "治愈比例", "Glimmer Mood · 拾光报告", "Captured on"}
}

// RenderPoster lays the report out as a bordered text poster
func RenderPoster(r models.PhaseReport, start, end, now time.Time, loc *time.Location, locale constants.Locale) string {
	accent := ThemeColor(r.VisualTheme)
	labels := labelsFor(locale)
	start, end = utils.OrderRange(start, end)

	center := lipgloss.NewStyle().Width(posterWidth).Align(lipgloss.Center)
	title := center.Bold(true).Foreground(accent)
	faint := center.Faint(true)
	body := lipgloss.NewStyle().Width(posterWidth)

	var b strings.Builder
	b.WriteString(faint.Render("✦ "+labels.badge) + "\n")
	b.WriteString(faint.Render(utils.DayKey(start, loc)+" → "+utils.DayKey(end, loc)) + "\n\n")
	b.WriteString(title.Render(r.Title) + "\n")
	b.WriteString(center.Italic(true).Render("「 "+r.MoodVibe+" 」") + "\n\n")

	stats := fmt.Sprintf("%d %s   %d %s   100%% %s",
		r.Stats.RecordedDays, labels.days, r.Stats.HighlightCount, labels.moments, labels.healing)
	b.WriteString(center.Render(stats) + "\n\n")

	var kws []string
	for i, kw := range r.TopKeywords {
		if i == posterKeywords {
			break
		}
		kws = append(kws, "#"+kw.Text)
	}
	if len(kws) > 0 {
		b.WriteString(center.Render(strings.Join(kws, "  ")) + "\n\n")
	}

	if r.Summary != "" {
		b.WriteString(center.Italic(true).Render("“"+r.Summary+"”") + "\n\n")
	}

	for i, n := range r.PersonalNarratives {
		if i == posterNarrative {
			break
		}
		mark := "♥"
		if i%2 == 1 {
			mark = "✦"
		}
		b.WriteString(body.Render(mark+" "+n) + "\n")
	}

	b.WriteString("\n" + faint.Render(labels.footer) + "\n")
	b.WriteString(faint.Render(labels.captured + " " + utils.DayKey(now, loc)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Render(b.String())
}
