package views

import (
	"reflect"
	"testing"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

var testLoc = time.FixedZone("UTC-5", -5*60*60)

func noon(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, testLoc)
}

func sampleEntries() []models.JournalEntry {
	return []models.JournalEntry{
		{ID: "c", OccursOn: noon(2024, 1, 31), RawText: "end of month"},
		{ID: "b", OccursOn: noon(2024, 1, 15), RawText: "middle"},
		{ID: "a", OccursOn: noon(2024, 1, 1), RawText: "new year"},
	}
}

func TestMonthGridJanuary2024(t *testing.T) {
	g := MonthGrid(2024, time.January, sampleEntries(), testLoc)

	wantPad := utils.FirstWeekday(2024, time.January)
	if g.Padding() != wantPad {
		t.Errorf("Padding = %d, want %d", g.Padding(), wantPad)
	}
	for i := 0; i < wantPad; i++ {
		if !g.Slots[i].Padding || g.Slots[i].Entry != nil {
			t.Errorf("slot %d should be empty padding", i)
		}
	}

	days := g.Days()
	if len(days) != 31 {
		t.Fatalf("day slots = %d, want 31", len(days))
	}
	if days[0].Day != 1 || days[0].Key != "2024-01-01" {
		t.Errorf("first day slot = %+v", days[0])
	}
	if days[0].Entry == nil || days[0].Entry.ID != "a" {
		t.Error("Jan 1 should link to entry a")
	}
	if days[14].Entry == nil || days[14].Entry.ID != "b" {
		t.Error("Jan 15 should link to entry b")
	}
	if days[1].Entry != nil {
		t.Error("Jan 2 should be empty")
	}
	if len(g.Weeks()) != 5 {
		t.Errorf("weeks = %d, want 5", len(g.Weeks()))
	}
}

func TestMonthGridPaddingTable(t *testing.T) {
	tests := []struct {
		year    int
		month   time.Month
		padding int
		days    int
	}{
		{2024, time.January, 1, 31},
		{2024, time.February, 4, 29},
		{2023, time.February, 3, 28},
		{2024, time.September, 0, 30},
	}

	for _, tt := range tests {
		t.Run(MonthTitle(tt.year, tt.month, constants.LocaleEN), func(t *testing.T) {
			g := MonthGrid(tt.year, tt.month, nil, testLoc)
			if g.Padding() != tt.padding {
				t.Errorf("Padding = %d, want %d", g.Padding(), tt.padding)
			}
			if len(g.Days()) != tt.days {
				t.Errorf("Days = %d, want %d", len(g.Days()), tt.days)
			}
		})
	}
}

func TestWindowSwappedArguments(t *testing.T) {
	entries := sampleEntries()
	start := noon(2024, 1, 10)
	end := time.Date(2024, 1, 20, 23, 30, 0, 0, testLoc)

	forward := Window(start, end, entries, testLoc, constants.LocaleZH)
	backward := Window(end, start, entries, testLoc, constants.LocaleZH)

	if !reflect.DeepEqual(forward, backward) {
		t.Error("swapped arguments produced different slots")
	}
	if len(forward) != 11 {
		t.Fatalf("slots = %d, want 11", len(forward))
	}
	if forward[0].Key != "2024-01-10" || forward[10].Key != "2024-01-20" {
		t.Errorf("range = %s..%s", forward[0].Key, forward[10].Key)
	}
	if forward[5].Entry == nil || forward[5].Entry.ID != "b" {
		t.Error("Jan 15 should link to entry b")
	}
}

func TestWindowSingleDay(t *testing.T) {
	slots := Window(noon(2024, 1, 1), noon(2024, 1, 1), sampleEntries(), testLoc, constants.LocaleEN)
	if len(slots) != 1 || slots[0].Entry == nil {
		t.Fatalf("slots = %+v", slots)
	}
}

func TestWindowLabels(t *testing.T) {
	day := noon(2024, 3, 5) // Tuesday
	tests := []struct {
		locale  constants.Locale
		weekday string
		month   string
	}{
		{constants.LocaleZH, "周二", "3月"},
		{constants.LocaleEN, "Tue", "Mar"},
	}

	for _, tt := range tests {
		t.Run(string(tt.locale), func(t *testing.T) {
			slot := Window(day, day, nil, testLoc, tt.locale)[0]
			if slot.WeekdayLabel != tt.weekday || slot.MonthLabel != tt.month || slot.DayLabel != "5" {
				t.Errorf("labels = %q %q %q", slot.WeekdayLabel, slot.MonthLabel, slot.DayLabel)
			}
		})
	}
}

func TestWindowCrossesDSTWithoutSkippingDays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start := time.Date(2024, 3, 9, 12, 0, 0, 0, ny)
	end := time.Date(2024, 3, 12, 12, 0, 0, 0, ny)

	slots := Window(start, end, nil, ny, constants.LocaleEN)
	var keys []string
	for _, s := range slots {
		keys = append(keys, s.Key)
	}
	want := []string{"2024-03-09", "2024-03-10", "2024-03-11", "2024-03-12"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestRecentWindow(t *testing.T) {
	now := time.Date(2024, 1, 31, 8, 0, 0, 0, testLoc)
	slots := RecentWindow(now, 20, sampleEntries(), testLoc, constants.LocaleZH)

	if len(slots) != 20 {
		t.Fatalf("slots = %d, want 20", len(slots))
	}
	if slots[0].Key != "2024-01-12" || slots[19].Key != "2024-01-31" {
		t.Errorf("range = %s..%s", slots[0].Key, slots[19].Key)
	}
	if len(Filled(slots)) != 2 {
		t.Errorf("filled = %d, want 2", len(Filled(slots)))
	}
}

func TestViewsDoNotMutateInput(t *testing.T) {
	entries := sampleEntries()
	entries[0].Keywords = []string{"k"}
	before := sampleEntries()
	before[0].Keywords = []string{"k"}

	g := MonthGrid(2024, time.January, entries, testLoc)
	g.Days()[30].Entry.Keywords[0] = "changed"
	_ = Window(noon(2024, 1, 1), noon(2024, 1, 31), entries, testLoc, constants.LocaleZH)

	if !reflect.DeepEqual(entries, before) {
		t.Error("view builders mutated their input")
	}
}

func TestArchiveNewestFirst(t *testing.T) {
	entries := []models.JournalEntry{
		{ID: "old", OccursOn: noon(2023, 5, 1)},
		{ID: "bad"},
		{ID: "new", OccursOn: noon(2024, 5, 1)},
	}
	got := Archive(entries)
	if got[0].ID != "new" || got[1].ID != "old" || got[2].ID != "bad" {
		t.Errorf("order = %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
	}
	if entries[0].ID != "old" {
		t.Error("Archive reordered its input")
	}
}

func TestParseLocale(t *testing.T) {
	if ParseLocale("en") != constants.LocaleEN || ParseLocale("fr") != constants.LocaleZH || ParseLocale("") != constants.LocaleZH {
		t.Error("ParseLocale mapping wrong")
	}
}
