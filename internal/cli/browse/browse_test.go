package browse

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/config"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/journal"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/views"
)

var testNow = time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, locale constants.Locale, days ...int) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	j := journal.New(nil, journal.WithLocation(time.UTC))
	for _, d := range days {
		j.UpsertByDay(context.Background(), models.JournalEntry{
			ID:       fmt.Sprintf("id-%d", d),
			OccursOn: time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC),
			RawText:  "text",
			Caption:  "微光",
			Keywords: []string{"calm"},
		})
	}
	out := &bytes.Buffer{}
	return &cli.Context{
		Config:  &config.Config{Locale: locale, CollectionDays: 7},
		Journal: j,
		Out:     out,
		Now:     func() time.Time { return testNow },
	}, out
}

func TestRenderCalendarJanuary2024(t *testing.T) {
	j := []models.JournalEntry{{ID: "a", OccursOn: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), Caption: "雪"}}
	grid := views.MonthGrid(2024, time.January, j, time.UTC)

	out := RenderCalendar(grid, constants.LocaleEN)
	lines := strings.Split(out, "\n")

	if lines[0] != "January 2024" {
		t.Errorf("title = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Sun") {
		t.Errorf("header should start on Sunday: %q", lines[1])
	}
	// 1 January 2024 is a Monday: one padding cell
	if !strings.HasPrefix(lines[2], "     1 ") {
		t.Errorf("first week = %q", lines[2])
	}
	if !strings.Contains(out, "15*") {
		t.Error("day with an entry should be starred")
	}
	if !strings.Contains(out, "2024-01-15  「雪」") {
		t.Error("entry caption should be listed")
	}
}

func TestCalendarCmd(t *testing.T) {
	ctx, out := setupTestContext(t, constants.LocaleZH, 3)

	if err := (&CalendarCmd{}).Run(ctx); err != nil {
		t.Fatalf("calendar command failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "2024年1月") {
		t.Errorf("expected current month title, got %q", out.String())
	}

	if err := (&CalendarCmd{Month: "2024/01"}).Run(ctx); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestCollectionCmd(t *testing.T) {
	tests := []struct {
		name  string
		cmd   CollectionCmd
		lines int
	}{
		{"filled only", CollectionCmd{}, 2},
		{"all days", CollectionCmd{All: true}, 7},
		{"custom window", CollectionCmd{Days: 30}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 1 Jan falls outside the 7 day window, 15 and 19 inside
			ctx, out := setupTestContext(t, constants.LocaleEN, 1, 15, 19)
			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("collection command failed: %v", err)
			}
			got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
			if len(got) != tt.lines {
				t.Errorf("expected %d lines, got %d: %q", tt.lines, len(got), out.String())
			}
		})
	}
}

func TestCollectionCmdRange(t *testing.T) {
	tests := []struct {
		name  string
		cmd   CollectionCmd
		lines int
	}{
		{"explicit range", CollectionCmd{From: "2024-01-01", To: "2024-01-15"}, 2},
		{"from only runs to today", CollectionCmd{From: "2024-01-10"}, 2},
		{"to only", CollectionCmd{To: "2024-01-05"}, 1},
		{"all days in range", CollectionCmd{From: "2024-01-14", To: "2024-01-16", All: true}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t, constants.LocaleEN, 1, 15, 19)
			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("collection command failed: %v", err)
			}
			got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
			if len(got) != tt.lines {
				t.Errorf("expected %d lines, got %d: %q", tt.lines, len(got), out.String())
			}
		})
	}
}

func TestCollectionCmdSwappedRange(t *testing.T) {
	forward, fwdOut := setupTestContext(t, constants.LocaleEN, 1, 15, 19)
	if err := (&CollectionCmd{From: "2024-01-01", To: "2024-01-16", All: true}).Run(forward); err != nil {
		t.Fatal(err)
	}
	backward, backOut := setupTestContext(t, constants.LocaleEN, 1, 15, 19)
	if err := (&CollectionCmd{From: "2024-01-16", To: "2024-01-01", All: true}).Run(backward); err != nil {
		t.Fatal(err)
	}
	if fwdOut.String() != backOut.String() {
		t.Errorf("swapped range differs:\n%s\nvs\n%s", fwdOut.String(), backOut.String())
	}
	if n := strings.Count(fwdOut.String(), "\n"); n != 16 {
		t.Errorf("expected 16 days, got %d", n)
	}
}

func TestCollectionCmdBadRange(t *testing.T) {
	ctx, _ := setupTestContext(t, constants.LocaleEN)
	if err := (&CollectionCmd{From: "last week"}).Run(ctx); err == nil {
		t.Error("expected an error for an unparseable date")
	}
}

func TestCollectionCmdNewestFirst(t *testing.T) {
	ctx, out := setupTestContext(t, constants.LocaleEN, 15, 19)
	if err := (&CollectionCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if !strings.HasPrefix(lines[0], "Jan 19") {
		t.Errorf("newest day should come first, got %q", lines[0])
	}
}

func TestEmptyViews(t *testing.T) {
	ctx, out := setupTestContext(t, constants.LocaleZH)
	if err := (&ArchiveCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), constants.Msg(constants.LocaleZH, constants.MsgNothingToSummarize)) {
		t.Errorf("expected empty message, got %q", out.String())
	}
}

func TestArchiveCmd(t *testing.T) {
	ctx, out := setupTestContext(t, constants.LocaleZH, 2, 9, 5)
	if err := (&ArchiveCmd{Limit: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "2024-01-09") || !strings.HasPrefix(lines[1], "2024-01-05") {
		t.Errorf("archive should be newest first: %q", lines)
	}
}
