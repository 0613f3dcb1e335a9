package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/backup"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/journal"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/keyring"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/sqlite"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

// usageWarnRatio is the share of the quota above which doctor warns
const usageWarnRatio = 0.9

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the store cannot be loaded
	needsDB bool
	// warnOnly failures are reported but do not fail the command
	warnOnly bool
	run      func(ctx *cli.Context) (string, error)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Configuration", run: checkConfig},
		{name: "Storage reachable", run: checkStorageReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Journal record", needsDB: true, run: checkJournalRecord},
		{name: "Entry dates", needsDB: true, warnOnly: true, run: checkEntryDates},
		{name: "Storage usage", needsDB: true, warnOnly: true, run: checkUsage},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Gemini API key", warnOnly: true, run: checkAPIKey},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		detail, err := c.run(ctx)
		switch {
		case err != nil && c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		case err != nil:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				dbReachable = false
			}
		case detail != "":
			ctx.Printf("✓ %s: OK (%s)\n", c.name, detail)
		default:
			ctx.Printf("✓ %s: OK\n", c.name)
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *cli.Context) (string, error) {
	if ctx.Config == nil {
		return "defaults", nil
	}
	if err := ctx.Config.Validate(); err != nil {
		return "", err
	}
	if ctx.Config.File == "" {
		return "defaults, no config.yaml", nil
	}
	return ctx.Config.File, nil
}

func checkStorageReachable(ctx *cli.Context) (string, error) {
	if err := ctx.Store.Load(); err != nil {
		return "", fmt.Errorf("failed to load storage: %w", err)
	}
	return ctx.Store.GetConfigPath(), nil
}

func checkSchemaVersion(ctx *cli.Context) (string, error) {
	sr, ok := ctx.Store.(storage.SchemaReporter)
	if !ok {
		return "unversioned backend", nil
	}
	current, latest, err := sr.SchemaVersion()
	if err != nil {
		return "", err
	}
	if current > latest {
		return "", fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return "", fmt.Errorf("database schema version (%d) is behind (%d), run 'glimmer init'", current, latest)
	}
	return fmt.Sprintf("v%d", current), nil
}

// readJournal decodes the persisted record without the side effects of a
// journal load
func readJournal(ctx *cli.Context) ([]models.JournalEntry, error) {
	data, err := ctx.Store.Get(context.Background(), constants.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return journal.Decode(data)
}

func checkJournalRecord(ctx *cli.Context) (string, error) {
	entries, err := readJournal(ctx)
	if err != nil {
		return "", err
	}

	days := make(map[string]bool, len(entries))
	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		day := utils.DayKey(e.OccursOn, ctx.Location())
		if day != constants.UnknownDay && days[day] {
			return "", fmt.Errorf("more than one entry for %s", day)
		}
		if ids[e.ID] {
			return "", fmt.Errorf("duplicate entry id %s", e.ID)
		}
		days[day] = true
		ids[e.ID] = true
	}
	return fmt.Sprintf("%d entries", len(entries)), nil
}

func checkEntryDates(ctx *cli.Context) (string, error) {
	entries, err := readJournal(ctx)
	if err != nil {
		return "", err
	}
	unknown := 0
	for _, e := range entries {
		if utils.DayKey(e.OccursOn, ctx.Location()) == constants.UnknownDay {
			unknown++
		}
	}
	if unknown > 0 {
		return "", fmt.Errorf("%d entries have an unreadable date and sort as oldest", unknown)
	}
	return "", nil
}

func checkUsage(ctx *cli.Context) (string, error) {
	ur, ok := ctx.Store.(storage.UsageReporter)
	if !ok {
		return "not measurable", nil
	}
	usage, err := ur.Usage(context.Background())
	if err != nil {
		return "", err
	}
	if usage.Quota <= 0 {
		return humanize.Bytes(uint64(usage.Bytes)) + ", no quota", nil
	}
	detail := fmt.Sprintf("%s of %s", humanize.Bytes(uint64(usage.Bytes)), humanize.Bytes(uint64(usage.Quota)))
	if float64(usage.Bytes) >= usageWarnRatio*float64(usage.Quota) {
		return "", fmt.Errorf("%s used; %s", detail, constants.Msg(ctx.Locale(), constants.MsgStorageFull))
	}
	return detail, nil
}

func checkBackupsPresent(ctx *cli.Context) (string, error) {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return "not applicable to this backend", nil
	}
	mgr := backup.NewManager(s.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", fmt.Errorf("no backups found in %s, run 'glimmer backup'", mgr.GetBackupDir())
	}
	return fmt.Sprintf("%d, newest %s", len(backups), humanize.Time(backups[0].Timestamp)), nil
}

func checkAPIKey(ctx *cli.Context) (string, error) {
	if ctx.Config == nil {
		return "", fmt.Errorf("no configuration loaded")
	}
	if ctx.Config.AI.APIKey != "" {
		return "from config or environment", nil
	}
	if _, err := keyring.GetAPIKey(); err == nil {
		return "from OS keyring", nil
	}
	return "", fmt.Errorf("writing and reports need a key: set GLIMMER_AI_API_KEY or run 'glimmer config set-api-key'")
}

func checkClockTimezone(ctx *cli.Context) (string, error) {
	loc := ctx.Location()
	if ctx.Config != nil {
		l, err := ctx.Config.Location()
		if err != nil {
			return "", err
		}
		loc = l
	}
	now := ctx.Clock().In(loc)
	if now.Year() < 2000 {
		return "", fmt.Errorf("system clock looks wrong: %s", now.Format(constants.DateFormat))
	}
	return fmt.Sprintf("%s, today is %s", loc, utils.DayKey(now, loc)), nil
}
