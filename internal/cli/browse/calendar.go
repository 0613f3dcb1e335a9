package browse

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/views"
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	year, month, err := cli.ResolveMonth(c.Month, ctx.Clock(), ctx.Location())
	if err != nil {
		return err
	}

	grid := views.MonthGrid(year, month, ctx.Journal.Entries(), ctx.Location())
	ctx.Println(RenderCalendar(grid, ctx.Locale()))
	return nil
}

// RenderCalendar draws the month as a Sunday-first text grid. Days with an
// entry are starred and listed with their caption underneath.
func RenderCalendar(grid views.Grid, locale constants.Locale) string {
	var b strings.Builder

	b.WriteString(views.MonthTitle(grid.Year, grid.Month, locale) + "\n")
	for _, h := range views.WeekdayHeaders(locale) {
		b.WriteString(padCell(h))
	}
	b.WriteString("\n")

	for _, week := range grid.Weeks() {
		for _, slot := range week {
			switch {
			case slot.Padding:
				b.WriteString(padCell(""))
			case slot.Entry != nil:
				b.WriteString(padCell(fmt.Sprintf("%d*", slot.Day)))
			default:
				b.WriteString(padCell(fmt.Sprintf("%d", slot.Day)))
			}
		}
		b.WriteString("\n")
	}

	var listed bool
	for _, slot := range grid.Days() {
		if slot.Entry == nil {
			continue
		}
		if !listed {
			b.WriteString("\n")
			listed = true
		}
		b.WriteString(fmt.Sprintf("%s  「%s」\n", slot.Key, slot.Entry.Caption))
	}
	return strings.TrimRight(b.String(), "\n")
}

// padCell right-pads s to a five-column cell, counting wide glyphs twice
func padCell(s string) string {
	return s + strings.Repeat(" ", max(0, 5-displayWidth(s)))
}

func displayWidth(s string) int {
	return uniseg.StringWidth(s)
}
