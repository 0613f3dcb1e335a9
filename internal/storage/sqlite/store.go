package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/migration"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
	"github.com/shenyaoyiivy/Glimmer-Mood/migrations"
)

type Store struct {
	path  string
	quota int64
	db    *sql.DB
}

func NewStore(path string, quota int64) *Store {
	return &Store{
		path:  path,
		quota: quota,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

// SchemaVersion reports the applied and the newest known migration
func (s *Store) SchemaVersion() (int, int, error) {
	if s.db == nil {
		return 0, 0, storage.ErrNotLoaded
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	return schemaVersion(runner)
}

func schemaVersion(runner *migration.Runner) (int, int, error) {
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var others int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(SUM(size), 0) FROM kv WHERE key <> ?", key).Scan(&others); err != nil {
		return fmt.Errorf("failed to measure storage: %w", err)
	}
	if err := storage.CheckQuota(others, int64(len(value)), s.quota); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at, size) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, size = excluded.size`,
		key, value, time.Now().UTC().Format(time.RFC3339), len(value))
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	return tx.Commit()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Usage sums the stored value sizes
func (s *Store) Usage(ctx context.Context) (storage.Usage, error) {
	if s.db == nil {
		return storage.Usage{}, storage.ErrNotLoaded
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(size), 0) FROM kv").Scan(&total); err != nil {
		return storage.Usage{}, err
	}
	return storage.Usage{Bytes: total, Quota: s.quota}, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
