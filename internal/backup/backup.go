package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
	maxCounter   = 100
)

var (
	// ErrNoDatabase is returned when there is no journal database to snapshot
	ErrNoDatabase = errors.New("journal database does not exist")
	// ErrBackupNotFound is returned when a named backup cannot be located
	ErrBackupNotFound = errors.New("backup not found")
)

// Info describes one snapshot in the backup directory
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Name returns the snapshot's file name
func (i Info) Name() string {
	return filepath.Base(i.Path)
}

// HumanSize renders Size for listings, e.g. "24 kB"
func (i Info) HumanSize() string {
	return humanize.Bytes(uint64(i.Size))
}

// Age renders how long ago the snapshot was taken, e.g. "3 hours ago"
func (i Info) Age(now time.Time) string {
	return humanize.RelTime(i.Timestamp, now, "ago", "from now")
}

// Manager takes, lists, rotates and restores snapshots of the SQLite journal
type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

// NewManager creates a manager whose snapshots live next to dbPath
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database and prunes the oldest snapshots
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}

	backupPath, err := m.nextPath()
	if err != nil {
		return "", err
	}

	if err := snapshot(m.dbPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Debug("Backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// nextPath picks a file name that is not taken yet: minute precision first,
// then seconds, then a numeric counter.
func (m *Manager) nextPath() (string, error) {
	now := m.now()
	candidate := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := candidate(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}

	stamp := now.Format(secondLayout)
	path = candidate(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > maxCounter {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = candidate(stamp + "-" + strconv.Itoa(counter))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// snapshot writes a consistent copy of src to dest with VACUUM INTO,
// falling back to a plain copy on engines that lack it
func snapshot(src, dest string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		db.Close()
		return copyFile(src, dest)
	}
	return nil
}

// parseName extracts the timestamp from a snapshot file name
func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// date-time[-counter]
	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return time.Time{}, false
		}
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ListBackups returns every snapshot, newest first
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) <= m.keep {
		return nil
	}
	for _, b := range backups[m.keep:] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		logger.Debug("Rotated backup", "path", b.Path)
	}
	return nil
}

// Find resolves a snapshot given either a path or a bare file name inside
// the backup directory
func (m *Manager) Find(nameOrPath string) (string, error) {
	if exists(nameOrPath) {
		return nameOrPath, nil
	}
	path := filepath.Join(m.backupDir, filepath.Base(nameOrPath))
	if exists(path) {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrBackupNotFound, nameOrPath)
}

// RestoreBackup replaces the database with the snapshot at backupPath. The
// current database is snapshotted first; its path is returned so callers
// can tell the user where the pre-restore copy went. The store must be
// closed while this runs.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if !exists(backupPath) {
		return "", fmt.Errorf("%w: %s", ErrBackupNotFound, backupPath)
	}
	if err := verifyFile(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if exists(m.dbPath) {
		var err error
		if safety, err = m.createBackup(true); err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return safety, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return safety, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Database restored", "from", backupPath, "safety", safety)
	return safety, nil
}

// verify checks that db is a readable SQLite database holding the kv table
func verify(db *sql.DB) error {
	var tables int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'kv'").Scan(&tables); err != nil {
		return err
	}
	if tables != 1 {
		return errors.New("no journal table found")
	}
	return nil
}

func verifyFile(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
