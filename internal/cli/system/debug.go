package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
)

type DebugCmd struct {
	DBPath    *DebugDBPathCmd    `cmd:"" help:"Show storage location."`
	DumpDay   *DebugDumpDayCmd   `cmd:"" help:"Dump one day's entry as JSON."`
	DumpEntry *DebugDumpEntryCmd `cmd:"" help:"Dump an entry by id as JSON."`
	Keys      *DebugKeysCmd      `cmd:"" help:"List the records held by the storage backend."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Day to dump (YYYY-MM-DD, 'today' or 'yesterday')."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	day, err := cli.ResolveDay(cmd.Date, ctx.Clock(), ctx.Location())
	if err != nil {
		return err
	}
	e, ok := ctx.Journal.FindByDay(day)
	if !ok {
		return fmt.Errorf("no entry found for date: %s", day)
	}
	return printJSON(ctx, e)
}

type DebugDumpEntryCmd struct {
	ID string `arg:"" help:"ID of the entry to dump."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	e, ok := ctx.Journal.FindByID(cmd.ID)
	if !ok {
		return fmt.Errorf("entry not found: %s", cmd.ID)
	}
	return printJSON(ctx, e)
}

type DebugKeysCmd struct{}

type keyInfo struct {
	Key  string `json:"key"`
	Size int    `json:"size"`
}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	keys, err := ctx.Store.Keys(bg)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	out := []keyInfo{}
	for _, k := range keys {
		v, err := ctx.Store.Get(bg, k)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to read %q: %w", k, err)
		}
		out = append(out, keyInfo{Key: k, Size: len(v)})
	}
	return printJSON(ctx, out)
}
