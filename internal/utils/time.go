package utils

import (
	"fmt"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// CanonicalDay returns the system-local calendar day of t (YYYY-MM-DD).
func CanonicalDay(t time.Time) string {
	return DayKey(t, time.Local)
}

// DayKey returns the calendar day of t as seen in loc. The zero time has no
// day and maps to constants.UnknownDay.
func DayKey(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return constants.UnknownDay
	}
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return fmt.Sprintf("%04d-%02d-%02d", lt.Year(), int(lt.Month()), lt.Day())
}

// DayKeyFromString parses an ISO-8601 instant and returns its day in loc, or
// constants.UnknownDay when the string cannot be parsed.
func DayKeyFromString(s string, loc *time.Location) string {
	t, err := models.ParseInstant(s)
	if err != nil {
		return constants.UnknownDay
	}
	return DayKey(t, loc)
}

// ParseDayKey parses a day key (YYYY-MM-DD) as midnight in the given location.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", key, err)
	}
	return t, nil
}

// NoonOf returns local noon of the given day key. Entries are pinned there so
// a timezone conversion never moves them into a neighbouring day.
func NoonOf(key string, loc *time.Location) (time.Time, error) {
	day, err := ParseDayKey(key, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), constants.NoonHour, 0, 0, 0, day.Location()), nil
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DaysInMonth returns the number of days in the given Gregorian month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of the month, Sunday = 0.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// OrderRange returns the two instants with the earlier one first.
func OrderRange(a, b time.Time) (time.Time, time.Time) {
	if a.After(b) {
		return b, a
	}
	return a, b
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
