// Package diskv keeps each record in its own file under a base directory.
package diskv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
)

const cacheSizeMax = 1024 * 1024 // 1MB

type Store struct {
	basePath string
	quota    int64
	d        *diskv.Diskv
}

func New(basePath string, quota int64) *Store {
	return &Store{
		basePath: basePath,
		quota:    quota,
	}
}

func flatTransform(string) []string { return []string{} }

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		Transform:    flatTransform,
		CacheSizeMax: cacheSizeMax,
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	if _, err := os.Stat(s.basePath); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'glimmer init' first")
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	s.d = nil
	return nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if s.d == nil {
		return nil, storage.ErrNotLoaded
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	val, err := s.d.Read(key)
	if errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return val, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if err := validateKey(key); err != nil {
		return err
	}

	others, err := s.sizeExcept(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to measure storage: %w", err)
	}
	if err := storage.CheckQuota(others, int64(len(value)), s.quota); err != nil {
		return err
	}

	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if s.d == nil {
		return nil, storage.ErrNotLoaded
	}
	var keys []string
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) sizeExcept(ctx context.Context, skip string) (int64, error) {
	var total int64
	for key := range s.d.Keys(ctx.Done()) {
		if key == skip {
			continue
		}
		info, err := os.Stat(filepath.Join(s.basePath, key))
		if err != nil {
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}

func (s *Store) Usage(ctx context.Context) (storage.Usage, error) {
	if s.d == nil {
		return storage.Usage{}, storage.ErrNotLoaded
	}
	total, err := s.sizeExcept(ctx, "")
	if err != nil {
		return storage.Usage{}, err
	}
	return storage.Usage{Bytes: total, Quota: s.quota}, nil
}

func (s *Store) GetConfigPath() string {
	return s.basePath
}
