package entries

import (
	"context"
	"fmt"
	"strings"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/compose"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

type WriteCmd struct {
	Day  string `arg:"" optional:"" help:"Day to write for (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	Text string `short:"m" help:"Entry text. Prompts interactively when omitted."`
}

func (c *WriteCmd) Run(ctx *cli.Context) error {
	day, err := cli.ResolveDay(c.Day, ctx.Clock(), ctx.Location())
	if err != nil {
		return err
	}

	text := c.Text
	if text == "" {
		if existing, ok := ctx.Journal.FindByDay(day); ok {
			ctx.Printf("%s already has an entry; new text is appended.\n\n%s\n\n", day, existing.RawText)
		}
		if text, err = ctx.ReadText(day + " > "); err != nil {
			return err
		}
	}

	backend, err := ctx.Backend(context.Background())
	if err != nil {
		return err
	}

	wf := ctx.Workflow(compose.WithProgress(progress(ctx)))
	entry, err := wf.Run(context.Background(), backend, day, text)
	if err != nil {
		return ctx.Explain(err)
	}

	printEntry(ctx, day, entry)
	return nil
}

type EditCmd struct {
	Day  string `arg:"" help:"Day of the entry to rewrite (YYYY-MM-DD, 'today' or 'yesterday')."`
	Text string `short:"m" help:"Replacement text. Prompts interactively when omitted."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	day, err := cli.ResolveDay(c.Day, ctx.Clock(), ctx.Location())
	if err != nil {
		return err
	}
	existing, ok := ctx.Journal.FindByDay(day)
	if !ok {
		return fmt.Errorf("no entry for %s", day)
	}

	text := c.Text
	if text == "" {
		ctx.Printf("Current text:\n\n%s\n\nEnter the full replacement text:\n", existing.RawText)
		if text, err = ctx.ReadText("> "); err != nil {
			return err
		}
	}

	if text == existing.RawText {
		ctx.Println(constants.Msg(ctx.Locale(), constants.MsgUnchanged))
		return nil
	}

	backend, err := ctx.Backend(context.Background())
	if err != nil {
		return err
	}

	wf := ctx.Workflow(compose.WithProgress(progress(ctx)))
	entry, err := wf.RunEdit(context.Background(), backend, existing.ID, text)
	if err != nil {
		return ctx.Explain(err)
	}

	printEntry(ctx, day, entry)
	return nil
}

func progress(ctx *cli.Context) func(constants.ComposeState) {
	return func(s constants.ComposeState) {
		logger.Debug("Compose state", "state", s)
		switch s {
		case constants.ComposeEnriching:
			ctx.Println("✦ Reading your words...")
		case constants.ComposeIllustrating:
			ctx.Println("✦ Painting the day...")
		}
	}
}

func printEntry(ctx *cli.Context, day string, e models.JournalEntry) {
	ctx.Printf("\n✓ %s  「%s」\n", day, e.Caption)
	if len(e.Keywords) > 0 {
		ctx.Printf("  #%s\n", strings.Join(e.Keywords, "  #"))
	}
	for _, h := range e.Highlights {
		ctx.Printf("  ♥ %s\n", h)
	}
}
