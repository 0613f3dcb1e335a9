package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name := strings.SplitN(kv, "=", 2)[0]
		if strings.HasPrefix(name, "GLIMMER_") || name == "GEMINI_API_KEY" {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if cfg.Storage.QuotaBytes != constants.DefaultQuotaBytes {
		t.Errorf("QuotaBytes = %d", cfg.Storage.QuotaBytes)
	}
	if cfg.AI.Timeout != constants.DefaultAITimeout {
		t.Errorf("Timeout = %s", cfg.AI.Timeout)
	}
	if cfg.Locale != constants.LocaleZH || cfg.CollectionDays != constants.DefaultCollection {
		t.Errorf("Locale = %q, CollectionDays = %d", cfg.Locale, cfg.CollectionDays)
	}
	if cfg.StoragePath() != filepath.Join(dir, constants.DefaultDBFileName) {
		t.Errorf("StoragePath = %q", cfg.StoragePath())
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := "storage:\n  backend: diskv\n  quota_bytes: 1024\nlocale: en\nai:\n  timeout: 30s\ncollection:\n  days: 7\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GLIMMER_COLLECTION_DAYS", "14")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendDiskv || cfg.Storage.QuotaBytes != 1024 {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Locale != constants.LocaleEN {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s", cfg.AI.Timeout)
	}
	if cfg.CollectionDays != 14 {
		t.Errorf("env should override file, CollectionDays = %d", cfg.CollectionDays)
	}
	if cfg.StoragePath() != filepath.Join(dir, constants.DefaultDiskvDir) {
		t.Errorf("StoragePath = %q", cfg.StoragePath())
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.APIKey != "from-dotenv" {
		t.Errorf("APIKey = %q", cfg.AI.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad backend", map[string]string{"GLIMMER_STORAGE_BACKEND": "mongo"}, "invalid storage backend"},
		{"bad timezone", map[string]string{"GLIMMER_TIMEZONE": "Mars/Olympus"}, "invalid timezone"},
		{"bad locale", map[string]string{"GLIMMER_LOCALE": "fr"}, "invalid locale"},
		{"bad days", map[string]string{"GLIMMER_COLLECTION_DAYS": "0"}, "collection.days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(t.TempDir())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	gokeyring.MockInit()

	cfg := &Config{AI: AIConfig{APIKey: "direct"}}
	if key, err := cfg.ResolveAPIKey(); err != nil || key != "direct" {
		t.Errorf("ResolveAPIKey = %q, %v", key, err)
	}

	cfg.AI.APIKey = ""
	if _, err := cfg.ResolveAPIKey(); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}

	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, "from-keyring"); err != nil {
		t.Fatal(err)
	}
	if key, err := cfg.ResolveAPIKey(); err != nil || key != "from-keyring" {
		t.Errorf("ResolveAPIKey = %q, %v", key, err)
	}
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("GLIMMER_AI_API_KEY", "secret-value")
	dir := t.TempDir()

	path, created, err := WriteDefault(dir)
	if err != nil || !created {
		t.Fatalf("WriteDefault = %q, %v, %v", path, created, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret-value") {
		t.Error("config file must not contain secrets from the environment")
	}
	if !strings.Contains(string(data), "backend: sqlite") {
		t.Errorf("config file missing defaults:\n%s", data)
	}

	_, created, err = WriteDefault(dir)
	if err != nil || created {
		t.Errorf("second WriteDefault should keep the existing file, created=%v err=%v", created, err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, _ := ExpandHome("~/.config/glimmer")
	if got != filepath.Join(home, ".config/glimmer") {
		t.Errorf("ExpandHome = %q", got)
	}
	got, _ = ExpandHome("/abs/path")
	if got != "/abs/path" {
		t.Errorf("ExpandHome = %q", got)
	}
}
