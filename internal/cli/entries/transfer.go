package entries

import (
	"context"
	"fmt"
	"os"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/journal"
)

type ExportCmd struct {
	Output string `short:"o" help:"File to write; stdout when omitted." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Journal.Export()
	if err != nil {
		return fmt.Errorf("failed to export journal: %w", err)
	}

	if c.Output == "" {
		ctx.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	ctx.Printf("✓ Exported %d entries to %s\n", ctx.Journal.Len(), c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"JSON export to merge into the journal." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	incoming, err := journal.Decode(data)
	if err != nil {
		return fmt.Errorf("%s is not a journal export: %w", c.File, err)
	}

	ctx.PerformAutomaticBackup()

	n := ctx.Journal.Import(context.Background(), incoming)
	ctx.Printf("✓ Imported %d entries (%d total)\n", n, ctx.Journal.Len())
	return nil
}
