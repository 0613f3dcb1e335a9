package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/config"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/diskv"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/postgres"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/sqlite"
)

// OpenStore builds the storage provider selected by cfg. The provider is not
// loaded yet.
func OpenStore(cfg *config.Config) (storage.Provider, error) {
	quota := cfg.Storage.QuotaBytes
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.NewStore(cfg.StoragePath(), quota), nil
	case config.BackendDiskv:
		return diskv.New(cfg.StoragePath(), quota), nil
	case config.BackendPostgres:
		dsn, err := cfg.ResolveDSN()
		if err != nil {
			return nil, err
		}
		if _, err := postgres.ValidateConnString(dsn); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded passwords are not allowed; use ~/.pgpass, PGPASSWORD or the OS keyring")
			}
			return nil, err
		}
		return postgres.New(dsn, quota), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrInvalidBackend, cfg.Storage.Backend)
	}
}

// IsConnString reports whether s looks like a PostgreSQL connection string
func IsConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") ||
		strings.HasPrefix(s, "postgresql://") ||
		strings.Contains(s, "host=")
}

// OpenSource builds a provider for an existing store named by a path or
// connection string: a directory is a diskv store, a connection string is
// PostgreSQL and anything else a SQLite file. Sources are never quota-bound.
func OpenSource(source string) (storage.Provider, error) {
	if IsConnString(source) {
		if _, err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(source, 0), nil
	}

	path, err := config.ExpandHome(source)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", source, err)
	}
	if info.IsDir() {
		return diskv.New(path, 0), nil
	}
	return sqlite.NewStore(path, 0), nil
}
