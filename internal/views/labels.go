package views

import (
	"fmt"
	"sort"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

var (
	zhWeekdays = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}
	enWeekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// WeekdayLabel returns the short weekday name in locale
func WeekdayLabel(d time.Weekday, locale constants.Locale) string {
	if locale == constants.LocaleEN {
		return enWeekdays[d]
	}
	return zhWeekdays[d]
}

// WeekdayHeaders returns the seven column headers, Sunday first
func WeekdayHeaders(locale constants.Locale) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = WeekdayLabel(time.Weekday(i), locale)
	}
	return out
}

// MonthLabel returns the short month name in locale
func MonthLabel(m time.Month, locale constants.Locale) string {
	if locale == constants.LocaleEN {
		return m.String()[:3]
	}
	return fmt.Sprintf("%d月", int(m))
}

// MonthTitle returns the heading for a month grid
func MonthTitle(year int, m time.Month, locale constants.Locale) string {
	if locale == constants.LocaleEN {
		return fmt.Sprintf("%s %d", m.String(), year)
	}
	return fmt.Sprintf("%d年%d月", year, int(m))
}

// ParseLocale maps a config value to a supported locale, defaulting to zh
func ParseLocale(s string) constants.Locale {
	if constants.Locale(s) == constants.LocaleEN {
		return constants.LocaleEN
	}
	return constants.LocaleZH
}

func sortNewestFirst(entries []models.JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SortValue() > entries[j].SortValue()
	})
}
