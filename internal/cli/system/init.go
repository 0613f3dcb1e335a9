package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/config"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite journal before initialization."`
	Source string `help:"Existing journal (SQLite file, diskv directory or PostgreSQL connection string) to copy records from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if ctx.Config != nil {
		path, created, err := config.WriteDefault(ctx.Config.Dir)
		if err != nil {
			return err
		}
		if created {
			ctx.Printf("Wrote default configuration to: %s\n", path)
		}
	}

	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized glimmer storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying records from: %s\n", c.Source)
		n, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Copied %d records. Migration completed successfully!\n", n)
	}
	return nil
}

// reset removes the existing journal file. Only file-backed stores can be reset.
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	info, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("--force only resets a SQLite journal, %s is a directory", dbPath)
	}

	if c.Source != "" {
		absDB, _ := filepath.Abs(dbPath)
		absSource, _ := filepath.Abs(c.Source)
		if absDB == absSource {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

// copyFrom copies every record of the source store into the destination
func (c *InitCmd) copyFrom(ctx *cli.Context) (int, error) {
	source, err := cli.OpenSource(c.Source)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source: %w", err)
	}
	defer source.Close()

	bg := context.Background()
	keys, err := source.Keys(bg)
	if err != nil {
		return 0, fmt.Errorf("failed to list source records: %w", err)
	}

	copied := 0
	for _, key := range keys {
		value, err := source.Get(bg, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("failed to read %q: %w", key, err)
		}
		if err := ctx.Store.Put(bg, key, value); err != nil {
			return copied, fmt.Errorf("failed to write %q: %w", key, err)
		}
		ctx.Printf("  %s\n", key)
		copied++
	}
	return copied, nil
}
