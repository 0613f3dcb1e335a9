package entries

import (
	"context"
	"fmt"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
)

type DeleteCmd struct {
	Day string `arg:"" help:"Day of the entry to delete (YYYY-MM-DD, 'today' or 'yesterday')."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	day, err := cli.ResolveDay(c.Day, ctx.Clock(), ctx.Location())
	if err != nil {
		return err
	}
	entry, ok := ctx.Journal.FindByDay(day)
	if !ok {
		return fmt.Errorf("no entry for %s", day)
	}

	if !c.Yes {
		ok, err := ctx.Confirm(constants.Msg(ctx.Locale(), constants.MsgConfirmDelete))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if !ctx.Journal.RemoveByID(context.Background(), entry.ID) {
		return fmt.Errorf("no entry for %s", day)
	}
	ctx.Printf("✓ Deleted entry for %s\n", day)
	return nil
}
