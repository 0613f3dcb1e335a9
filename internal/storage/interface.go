package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when nothing is stored under the key
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by Put when the write would push the store past its quota
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrNotLoaded is returned when an operation runs before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a durable key-value store. The journal only ever needs one
// record, but backups and diagnostics list what else lives there.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)

	// Utils
	GetConfigPath() string
}

// Usage reports how many bytes a provider holds against its quota
type Usage struct {
	Bytes int64
	Quota int64
}

// UsageReporter is implemented by providers that can measure their own size
type UsageReporter interface {
	Usage(ctx context.Context) (Usage, error)
}

// SchemaReporter is implemented by providers with a versioned SQL schema
type SchemaReporter interface {
	SchemaVersion() (current int, latest int, err error)
}

// CheckQuota reports ErrQuotaExceeded when storing incoming bytes next to the
// existing ones would exceed quota. A quota of zero or less means unlimited.
func CheckQuota(existing, incoming, quota int64) error {
	if quota <= 0 {
		return nil
	}
	if existing+incoming > quota {
		return ErrQuotaExceeded
	}
	return nil
}
