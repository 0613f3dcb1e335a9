package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli/backups"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli/browse"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli/entries"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli/reports"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli/system"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/config"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/errors"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/journal"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/lock"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, the journal and backups." name:"config-dir" default:"${config_dir}"`

	Init   system.InitCmd   `cmd:"" help:"Initialize glimmer storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive journal." default:"1"`

	Write  entries.WriteCmd  `cmd:"" help:"Write or append to a day's entry."`
	Edit   entries.EditCmd   `cmd:"" help:"Replace a day's text and regenerate its enrichment."`
	Delete entries.DeleteCmd `cmd:"" help:"Delete a day's entry."`
	Show   entries.ShowCmd   `cmd:"" help:"Show a day's entry."`
	Export entries.ExportCmd `cmd:"" help:"Export the journal as JSON."`
	Import entries.ImportCmd `cmd:"" help:"Import entries from a JSON export."`

	Calendar   browse.CalendarCmd   `cmd:"" help:"Show a month of entries."`
	Collection browse.CollectionCmd `cmd:"" help:"List the most recent days."`
	Archive    browse.ArchiveCmd    `cmd:"" help:"List every recorded entry."`
	Report     reports.ReportCmd    `cmd:"" help:"Generate a phase report for a date range."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage journal backups."`
	Config system.ConfigCmd `cmd:"" help:"Show configuration and manage stored secrets."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A mood journal that turns each day into a caption, keywords and a picture"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	if err := run(kctx); err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
}

func run(kctx *kong.Context) error {
	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		return err
	}

	command := strings.Fields(kctx.Command())[0]
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.Dir,
		Console:   command != "tui",
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appCtx := &cli.Context{
		Config: cfg,
		NewBackend: func(ctx context.Context) (ai.Backend, error) {
			key, err := cfg.ResolveAPIKey()
			if err != nil {
				return nil, err
			}
			return ai.NewGeminiClient(ctx, ai.Config{
				APIKey:      key,
				TextModel:   cfg.AI.TextModel,
				ReportModel: cfg.AI.ReportModel,
				ImageModel:  cfg.AI.ImageModel,
				Timeout:     cfg.AI.Timeout,
			})
		},
	}

	// Secrets can be managed before any store is reachable
	if command == "config" {
		return kctx.Run(appCtx)
	}

	l, err := lock.Acquire(cfg.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	store, err := cli.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	appCtx.Store = store

	// Init and doctor handle an unloaded store themselves
	if command != "init" && command != "doctor" {
		if err := store.Load(); err != nil {
			return fmt.Errorf("%w (run '%s init' first?)", err, constants.AppName)
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		appCtx.Journal = journal.New(store,
			journal.WithLocation(loc),
			journal.WithLocale(cfg.Locale),
			journal.WithWarner(appCtx.Warner()),
		)
		if err := appCtx.Journal.Load(context.Background()); err != nil {
			return err
		}
	}

	return kctx.Run(appCtx)
}
