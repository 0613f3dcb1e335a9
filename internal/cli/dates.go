package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/views"
)

// ResolveDay turns a day argument into a canonical day key. Empty means today;
// "today" and "yesterday" are relative to now in loc.
func ResolveDay(arg string, now time.Time, loc *time.Location) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return utils.DayKey(now, loc), nil
	case "yesterday":
		return utils.DayKey(now.In(loc).AddDate(0, 0, -1), loc), nil
	}
	day, err := utils.ParseDayKey(strings.TrimSpace(arg), loc)
	if err != nil {
		return "", err
	}
	return utils.DayKey(day, loc), nil
}

// ResolveMonth parses a YYYY-MM argument. Empty means the current month.
func ResolveMonth(arg string, now time.Time, loc *time.Location) (int, time.Month, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		lt := now.In(loc)
		return lt.Year(), lt.Month(), nil
	}
	t, err := time.ParseInLocation(constants.MonthFormat, arg, loc)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, use YYYY-MM: %w", arg, err)
	}
	return t.Year(), t.Month(), nil
}

// ResolveRange parses a report range. Missing ends default to the last
// `days` days ending today.
func ResolveRange(from, to string, days int, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	start, end := views.RecentRange(now, days, loc)

	if to = strings.TrimSpace(to); to != "" {
		t, err := utils.ParseDayKey(to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
		start, _ = views.RecentRange(end, days, loc)
	}
	if from = strings.TrimSpace(from); from != "" {
		t, err := utils.ParseDayKey(from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	start, end = utils.OrderRange(start, end)
	return start, end, nil
}
