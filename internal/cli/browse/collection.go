package browse

import (
	"strings"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/views"
)

type CollectionCmd struct {
	Days int    `short:"n" help:"How many days back to show. Defaults to collection.days."`
	From string `help:"First day of the range (YYYY-MM-DD)."`
	To   string `help:"Last day of the range (YYYY-MM-DD). Defaults to today."`
	All  bool   `short:"a" help:"Include days without an entry."`
}

func (c *CollectionCmd) Run(ctx *cli.Context) error {
	days := c.Days
	if days < 1 && ctx.Config != nil {
		days = ctx.Config.CollectionDays
	}

	start, end, err := cli.ResolveRange(c.From, c.To, days, ctx.Clock(), ctx.Location())
	if err != nil {
		return err
	}
	slots := views.Window(start, end, ctx.Journal.Entries(), ctx.Location(), ctx.Locale())
	if !c.All {
		slots = views.Filled(slots)
	}
	if len(slots) == 0 {
		ctx.Println(constants.Msg(ctx.Locale(), constants.MsgNothingToSummarize))
		return nil
	}

	// newest first, the way the collection scrolls
	for i := len(slots) - 1; i >= 0; i-- {
		s := slots[i]
		head := s.MonthLabel + " " + s.DayLabel + " " + s.WeekdayLabel
		if s.Entry == nil {
			ctx.Printf("%s  ·\n", padTo(head, 14))
			continue
		}
		ctx.Printf("%s  %s\n", padTo(head, 14), summary(*s.Entry))
	}
	return nil
}

type ArchiveCmd struct {
	Limit int `short:"n" help:"Show at most this many entries."`
}

func (c *ArchiveCmd) Run(ctx *cli.Context) error {
	entries := views.Archive(ctx.Journal.Entries())
	if len(entries) == 0 {
		ctx.Println(constants.Msg(ctx.Locale(), constants.MsgNothingToSummarize))
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	for _, e := range entries {
		ctx.Printf("%s  %s\n", ctx.Journal.DayOf(e), summary(e))
	}
	return nil
}

func summary(e models.JournalEntry) string {
	var b strings.Builder
	b.WriteString("「" + e.Caption + "」")
	if len(e.Keywords) > 0 {
		b.WriteString("  #" + strings.Join(e.Keywords, " #"))
	}
	return b.String()
}

func padTo(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-displayWidth(s)))
}
