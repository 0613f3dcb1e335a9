package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/backup"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/compose"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/config"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/report"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/diskv"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/postgres"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/sqlite"
)

func TestResolveDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	// 23:30 UTC on 9 March is already 10 March in UTC+8
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"", "2024-03-10", false},
		{"today", "2024-03-10", false},
		{"Yesterday", "2024-03-09", false},
		{"2024-02-29", "2024-02-29", false},
		{" 2024-01-05 ", "2024-01-05", false},
		{"2023-02-29", "", true},
		{"03/10/2024", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ResolveDay(tt.arg, now, loc)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ResolveDay(%q) expected error, got %q", tt.arg, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDay(%q) failed: %v", tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("ResolveDay(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestResolveMonth(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	year, month, err := ResolveMonth("", now, time.UTC)
	if err != nil || year != 2024 || month != time.July {
		t.Errorf("ResolveMonth(\"\") = %d-%d, %v", year, month, err)
	}

	year, month, err = ResolveMonth("2023-12", now, time.UTC)
	if err != nil || year != 2023 || month != time.December {
		t.Errorf("ResolveMonth(2023-12) = %d-%d, %v", year, month, err)
	}

	if _, _, err := ResolveMonth("2023-13", now, time.UTC); err == nil {
		t.Error("expected error for month 13")
	}
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	day := func(d int) string { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat) }

	tests := []struct {
		name      string
		from, to  string
		days      int
		wantStart string
		wantEnd   string
	}{
		{"defaults", "", "", 7, day(4), day(10)},
		{"explicit", "2024-03-01", "2024-03-05", 7, day(1), day(5)},
		{"swapped", "2024-03-05", "2024-03-01", 7, day(1), day(5)},
		{"to only", "", "2024-03-08", 3, day(6), day(8)},
		{"from only", "2024-03-02", "", 3, day(2), day(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ResolveRange(tt.from, tt.to, tt.days, now, time.UTC)
			if err != nil {
				t.Fatalf("ResolveRange failed: %v", err)
			}
			if got := start.Format(constants.DateFormat); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format(constants.DateFormat); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}

	if _, _, err := ResolveRange("bad", "", 7, now, time.UTC); err == nil {
		t.Error("expected error for a malformed from date")
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		storage config.StorageConfig
		check   func(t *testing.T, p any)
		wantErr bool
	}{
		{
			name:    "sqlite",
			storage: config.StorageConfig{Backend: config.BackendSQLite},
			check: func(t *testing.T, p any) {
				s, ok := p.(*sqlite.Store)
				if !ok {
					t.Fatalf("got %T", p)
				}
				if s.GetConfigPath() != filepath.Join(dir, constants.DefaultDBFileName) {
					t.Errorf("path = %s", s.GetConfigPath())
				}
			},
		},
		{
			name:    "diskv",
			storage: config.StorageConfig{Backend: config.BackendDiskv},
			check: func(t *testing.T, p any) {
				if _, ok := p.(*diskv.Store); !ok {
					t.Fatalf("got %T", p)
				}
			},
		},
		{
			name:    "postgres",
			storage: config.StorageConfig{Backend: config.BackendPostgres, DSN: "postgres://me@localhost/glimmer"},
			check: func(t *testing.T, p any) {
				if _, ok := p.(*postgres.Store); !ok {
					t.Fatalf("got %T", p)
				}
			},
		},
		{
			name:    "postgres with password",
			storage: config.StorageConfig{Backend: config.BackendPostgres, DSN: "postgres://me:pw@localhost/glimmer"},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			storage: config.StorageConfig{Backend: "redis"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := OpenStore(&config.Config{Dir: dir, Storage: tt.storage})
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenStore failed: %v", err)
			}
			tt.check(t, p)
		})
	}
}

func TestOpenSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "old.db")
	if err := os.WriteFile(file, nil, 0600); err != nil {
		t.Fatal(err)
	}

	if p, err := OpenSource(dir); err != nil {
		t.Errorf("directory source failed: %v", err)
	} else if _, ok := p.(*diskv.Store); !ok {
		t.Errorf("directory source = %T, want diskv", p)
	}

	if p, err := OpenSource(file); err != nil {
		t.Errorf("file source failed: %v", err)
	} else if _, ok := p.(*sqlite.Store); !ok {
		t.Errorf("file source = %T, want sqlite", p)
	}

	if p, err := OpenSource("host=localhost dbname=glimmer"); err != nil {
		t.Errorf("dsn source failed: %v", err)
	} else if _, ok := p.(*postgres.Store); !ok {
		t.Errorf("dsn source = %T, want postgres", p)
	}

	if _, err := OpenSource("postgres://me:pw@localhost/glimmer"); err == nil {
		t.Error("expected error for embedded credentials")
	}
	if _, err := OpenSource(filepath.Join(dir, "missing.db")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestExplain(t *testing.T) {
	ctx := &Context{Config: &config.Config{Locale: constants.LocaleEN}}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty input", compose.ErrEmptyInput, constants.Msg(constants.LocaleEN, constants.MsgEmptyInput)},
		{"busy", compose.ErrBusy, constants.Msg(constants.LocaleEN, constants.MsgBusy)},
		{"generation", &compose.GenerationError{Locale: constants.LocaleEN, Err: errors.New("503")}, constants.Msg(constants.LocaleEN, constants.MsgComposeFailed)},
		{"report", &report.Error{Err: report.ErrNothingToSummarize, Locale: constants.LocaleEN}, constants.Msg(constants.LocaleEN, constants.MsgNothingToSummarize)},
		{"plain", errors.New("disk on fire"), "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.Explain(tt.err).Error(); got != tt.want {
				t.Errorf("Explain() = %q, want %q", got, tt.want)
			}
		})
	}

	if ctx.Explain(nil) != nil {
		t.Error("Explain(nil) should be nil")
	}
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "Yes\n": true, "n\n": false, "\n": false, "": false} {
		out := &bytes.Buffer{}
		ctx := &Context{Out: out, In: strings.NewReader(input)}
		got, err := ctx.Confirm("Sure?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", input, err)
		}
		if got != want {
			t.Errorf("Confirm(%q) = %v, want %v", input, got, want)
		}
		if out.String() != "Sure? [y/N]: " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

type fakeBackend struct{ ai.Backend }

func TestBackendBuiltOnce(t *testing.T) {
	calls := 0
	ctx := &Context{NewBackend: func(context.Context) (ai.Backend, error) {
		calls++
		return fakeBackend{}, nil
	}}

	for i := 0; i < 3; i++ {
		if _, err := ctx.Backend(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("factory called %d times, want 1", calls)
	}

	failing := &Context{NewBackend: func(context.Context) (ai.Backend, error) {
		return nil, config.ErrNoAPIKey
	}}
	if _, err := failing.Backend(context.Background()); !errors.Is(err, config.ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
	if _, err := (&Context{}).Backend(context.Background()); err == nil {
		t.Error("expected error without a factory")
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), constants.DefaultDBFileName), 0)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := &Context{Store: store}
	ctx.PerformAutomaticBackup()

	backups, err := backup.NewManager(store.GetConfigPath()).ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 automatic backup, got %d", len(backups))
	}

	// other backends are skipped without error
	(&Context{Store: diskv.New(t.TempDir(), 0)}).PerformAutomaticBackup()
}

func TestContextDefaults(t *testing.T) {
	ctx := &Context{}
	if ctx.Locale() != constants.LocaleZH {
		t.Errorf("default locale = %s", ctx.Locale())
	}
	if ctx.Location() != time.Local {
		t.Error("default location should be local time")
	}
	if ctx.Stdout() != os.Stdout || ctx.Stdin() != os.Stdin {
		t.Error("default streams should be the process's")
	}
}
