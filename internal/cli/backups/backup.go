package backups

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/backup"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/sqlite"
)

// ErrUnsupported is returned for backends that are not a single SQLite file
var ErrUnsupported = errors.New("backups are only available for the sqlite storage backend")

func manager(ctx *cli.Context) (*backup.Manager, error) {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, ErrUnsupported
	}
	return backup.NewManager(s.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	now := ctx.Clock()
	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  %8s  (%s)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), b.Name(), b.HumanSize(), b.Age(now))
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := mgr.Find(c.BackupFile)
	if err != nil {
		return fmt.Errorf("%w (tried the current directory and %s)", err, mgr.GetBackupDir())
	}

	ctx.Println("⚠️  WARNING: This will replace your current journal with the backup.")
	ctx.Println("A backup of your current journal will be created before restoring.")
	ctx.Printf("\nRestore from: %s\n", backupPath)
	if !c.Yes {
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	// the store must let go of the file before it is replaced
	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database connection", "error", err)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if safety != "" {
		ctx.Printf("Created backup of current journal: %s\n", filepath.Base(safety))
	}
	ctx.Println("✓ Journal restored successfully!")
	return nil
}
