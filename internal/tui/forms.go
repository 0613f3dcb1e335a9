package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
)

// WriteFormModel backs both the write and the edit form
type WriteFormModel struct {
	Day  string
	Text string
}

type ReportFormModel struct {
	From        string
	To          string
	Instruction string
}

// RangeFormModel backs the collection range form. Empty ends fall back to
// the last collection.days days.
type RangeFormModel struct {
	From string
	To   string
}

type ConfirmFormModel struct {
	Confirmed bool
}

func notBlank(locale constants.Locale) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(constants.Msg(locale, constants.MsgEmptyInput))
		}
		return nil
	}
}

func validDay(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// NewWriteForm asks for the text to add to fm.Day. appending is true when the
// day already has an entry.
func NewWriteForm(fm *WriteFormModel, appending bool, locale constants.Locale) *huh.Form {
	title := "Write " + fm.Day
	desc := "What happened today? (alt+enter for a new line)"
	if appending {
		title = "Add to " + fm.Day
		desc = "Your words are appended and the whole day is re-imagined."
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description(desc).
				CharLimit(4000).
				Value(&fm.Text).
				Validate(notBlank(locale)),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewEditForm replaces the full text of an entry
func NewEditForm(fm *WriteFormModel, locale constants.Locale) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Edit " + fm.Day).
				Description("The caption, keywords and image are regenerated.").
				CharLimit(4000).
				Value(&fm.Text).
				Validate(notBlank(locale)),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewReportForm(fm *ReportFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From (YYYY-MM-DD)").
				Value(&fm.From).
				Validate(validDay),
			huh.NewInput().
				Title("To (YYYY-MM-DD)").
				Value(&fm.To).
				Validate(validDay),
			huh.NewInput().
				Title("Instruction").
				Description("How should the report sound? Leave empty for poetic and warm.").
				Value(&fm.Instruction),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewRangeForm(fm *RangeFormModel, days int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From (YYYY-MM-DD)").
				Description(fmt.Sprintf("Leave both empty for the last %d days.", days)).
				Value(&fm.From).
				Validate(validDay),
			huh.NewInput().
				Title("To (YYYY-MM-DD)").
				Description("Empty means today.").
				Value(&fm.To).
				Validate(validDay),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewConfirmDeleteForm(fm *ConfirmFormModel, day string, locale constants.Locale) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(day).
				Description(constants.Msg(locale, constants.MsgConfirmDelete)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
