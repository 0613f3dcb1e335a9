package diskv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
)

func setupTestStore(t *testing.T, quota int64) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "kv"), quota)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := setupTestStore(t, 0)
	ctx := context.Background()

	if err := s.Put(ctx, "glimmer_mood_entries_v3", []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := s.Get(ctx, "glimmer_mood_entries_v3")
	if err != nil || string(got) != `[]` {
		t.Fatalf("Get = %q, %v", got, err)
	}

	keys, _ := s.Keys(ctx)
	if len(keys) != 1 {
		t.Errorf("Keys = %v", keys)
	}

	if err := s.Delete(ctx, "glimmer_mood_entries_v3"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, "glimmer_mood_entries_v3"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "glimmer_mood_entries_v3"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "kv")
	first := New(dir, 0)
	if err := first.Init(); err != nil {
		t.Fatal(err)
	}
	if err := first.Put(context.Background(), "k", []byte("v")); err != nil {
		t.Fatal(err)
	}

	second := New(dir, 0)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := second.Get(context.Background(), "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, err)
	}
}

func TestQuota(t *testing.T) {
	s := setupTestStore(t, 8)
	ctx := context.Background()

	if err := s.Put(ctx, "a", []byte("1234")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "a", []byte("12345678")); err != nil {
		t.Fatalf("overwrite within quota failed: %v", err)
	}
	if err := s.Put(ctx, "b", []byte("9")); !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}

	usage, err := s.Usage(ctx)
	if err != nil || usage.Bytes != 8 {
		t.Errorf("Usage = %+v, %v", usage, err)
	}
}

func TestInvalidKey(t *testing.T) {
	s := setupTestStore(t, 0)
	for _, key := range []string{"", "../escape", `a\b`} {
		if err := s.Put(context.Background(), key, []byte("x")); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent"), 0)
	if err := s.Load(); err == nil {
		t.Error("expected error for missing directory")
	}
}
