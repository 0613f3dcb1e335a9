// Package views derives calendar and range views from a journal snapshot.
// Every function here is pure: it reads the entries it is given and never
// mutates them.
package views

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

// MonthSlot is one cell of a month grid. Padding cells carry no day.
type MonthSlot struct {
	Padding bool
	Day     int
	Key     string
	Entry   *models.JournalEntry
}

// Grid is a month laid out Sunday-first
type Grid struct {
	Year  int
	Month time.Month
	Slots []MonthSlot
}

// Padding returns how many empty cells precede the 1st
func (g Grid) Padding() int {
	n := 0
	for _, s := range g.Slots {
		if !s.Padding {
			break
		}
		n++
	}
	return n
}

// Days returns the day cells without padding
func (g Grid) Days() []MonthSlot {
	return g.Slots[g.Padding():]
}

// Weeks splits the grid into rows of seven; the last row may be short
func (g Grid) Weeks() [][]MonthSlot {
	var weeks [][]MonthSlot
	for i := 0; i < len(g.Slots); i += 7 {
		end := i + 7
		if end > len(g.Slots) {
			end = len(g.Slots)
		}
		weeks = append(weeks, g.Slots[i:end])
	}
	return weeks
}

// WindowSlot is one day of an N-day window
type WindowSlot struct {
	Date         time.Time
	Key          string
	Entry        *models.JournalEntry
	WeekdayLabel string
	DayLabel     string
	MonthLabel   string
}

// index maps day keys to entries. If the snapshot ever holds two entries for
// one day the first (newest) wins.
func index(entries []models.JournalEntry, loc *time.Location) map[string]*models.JournalEntry {
	idx := make(map[string]*models.JournalEntry, len(entries))
	for i := range entries {
		key := utils.DayKey(entries[i].OccursOn, loc)
		if _, ok := idx[key]; ok {
			continue
		}
		e := entries[i].Clone()
		idx[key] = &e
	}
	return idx
}

// MonthGrid lays out year/month with FirstWeekday padding cells followed by
// one cell per day, each linked to that day's entry when there is one.
func MonthGrid(year int, month time.Month, entries []models.JournalEntry, loc *time.Location) Grid {
	if loc == nil {
		loc = time.Local
	}
	idx := index(entries, loc)

	pad := utils.FirstWeekday(year, month)
	days := utils.DaysInMonth(year, month)
	g := Grid{Year: year, Month: month, Slots: make([]MonthSlot, 0, pad+days)}

	for i := 0; i < pad; i++ {
		g.Slots = append(g.Slots, MonthSlot{Padding: true})
	}
	for d := 1; d <= days; d++ {
		key := fmt.Sprintf("%04d-%02d-%02d", year, int(month), d)
		g.Slots = append(g.Slots, MonthSlot{Day: d, Key: key, Entry: idx[key]})
	}
	return g
}

// Window returns one slot per calendar day from the earlier of start and end
// to the later one, inclusive.
func Window(start, end time.Time, entries []models.JournalEntry, loc *time.Location, locale constants.Locale) []WindowSlot {
	if loc == nil {
		loc = time.Local
	}
	start, end = utils.OrderRange(start, end)
	first := utils.StartOfDay(start, loc)
	last := utils.StartOfDay(end, loc)
	idx := index(entries, loc)

	var slots []WindowSlot
	for d := first; !d.After(last); d = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc) {
		key := utils.DayKey(d, loc)
		slots = append(slots, WindowSlot{
			Date:         d,
			Key:          key,
			Entry:        idx[key],
			WeekdayLabel: WeekdayLabel(d.Weekday(), locale),
			DayLabel:     strconv.Itoa(d.Day()),
			MonthLabel:   MonthLabel(d.Month(), locale),
		})
	}
	return slots
}

// RecentRange returns the span of the last days calendar days ending on now
func RecentRange(now time.Time, days int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	if days < 1 {
		days = constants.DefaultCollection
	}
	end := utils.StartOfDay(now, loc)
	start := time.Date(end.Year(), end.Month(), end.Day()-(days-1), 0, 0, 0, 0, loc)
	return start, end
}

// RecentWindow is the default collection: the last days calendar days
// ending on now
func RecentWindow(now time.Time, days int, entries []models.JournalEntry, loc *time.Location, locale constants.Locale) []WindowSlot {
	start, end := RecentRange(now, days, loc)
	return Window(start, end, entries, loc, locale)
}

// Filled returns only the slots that have an entry
func Filled(slots []WindowSlot) []WindowSlot {
	var out []WindowSlot
	for _, s := range slots {
		if s.Entry != nil {
			out = append(out, s)
		}
	}
	return out
}

// Archive is the chronological archive list, newest first
func Archive(entries []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	sortNewestFirst(out)
	return out
}
