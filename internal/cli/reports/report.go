package reports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/report"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

type ReportCmd struct {
	From        string `help:"First day of the range (YYYY-MM-DD)."`
	To          string `help:"Last day of the range (YYYY-MM-DD). Defaults to today."`
	Days        int    `short:"n" help:"Range length when --from is omitted. Defaults to collection.days."`
	Instruction string `short:"i" help:"Style instruction for the report, e.g. 'short and funny'."`
	JSON        bool   `help:"Print the report as JSON instead of a poster."`
}

type reportJSON struct {
	From   string             `json:"from"`
	To     string             `json:"to"`
	Report models.PhaseReport `json:"report"`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	days := c.Days
	if days < 1 && ctx.Config != nil {
		days = ctx.Config.CollectionDays
	}
	loc := ctx.Location()

	start, end, err := cli.ResolveRange(c.From, c.To, days, ctx.Clock(), loc)
	if err != nil {
		return err
	}

	// an empty range never needs the backend, so check before building it
	if len(report.InRange(ctx.Journal.Entries(), start, end, loc)) == 0 {
		return ctx.Explain(&report.Error{Err: report.ErrNothingToSummarize, Locale: ctx.Locale()})
	}

	backend, err := ctx.Backend(context.Background())
	if err != nil {
		return err
	}

	ctx.Println("✦ Gathering your glimmers...")
	requester := report.New(backend, report.WithLocation(loc), report.WithLocale(ctx.Locale()))
	r, err := requester.Build(context.Background(), ctx.Journal.Entries(), start, end, c.Instruction)
	if err != nil {
		return ctx.Explain(err)
	}

	if c.JSON {
		data, err := json.MarshalIndent(reportJSON{
			From:   utils.DayKey(start, loc),
			To:     utils.DayKey(end, loc),
			Report: r,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println(report.RenderPoster(r, start, end, ctx.Clock(), loc, ctx.Locale()))
	return nil
}
