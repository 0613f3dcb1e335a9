package entries

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
)

type ShowCmd struct {
	Day  string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	JSON bool   `help:"Print the entry in the exchange format."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	day, err := cli.ResolveDay(c.Day, ctx.Clock(), ctx.Location())
	if err != nil {
		return err
	}
	e, ok := ctx.Journal.FindByDay(day)
	if !ok {
		return fmt.Errorf("no entry for %s", day)
	}

	if c.JSON {
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Printf("%s  「%s」\n\n", day, e.Caption)
	ctx.Println(e.RawText)
	if len(e.Keywords) > 0 {
		ctx.Printf("\n#%s\n", strings.Join(e.Keywords, "  #"))
	}
	for _, h := range e.Highlights {
		ctx.Printf("♥ %s\n", h)
	}
	if e.ImageURL != "" {
		ctx.Printf("\nimage: %d bytes inline\n", len(e.ImageURL))
	}
	return nil
}
