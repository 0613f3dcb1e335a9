package compose

import (
	"errors"
	"fmt"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
)

var (
	// ErrEmptyInput is returned for blank or whitespace-only text
	ErrEmptyInput = errors.New("nothing to write")
	// ErrBusy is returned when a composition is already in flight
	ErrBusy = errors.New("a composition is already in progress")
	// ErrGenerationFailed wraps every enrichment or illustration failure
	ErrGenerationFailed = errors.New("generation failed")
	// ErrNotFound is returned when editing an id the store does not hold
	ErrNotFound = errors.New("entry not found")
	// ErrUnexpectedEvent is returned when an event does not match the state
	ErrUnexpectedEvent = errors.New("unexpected event")
)

// GenerationError is the failure surfaced when the backend lets a
// composition down. Nothing is committed when it is returned.
type GenerationError struct {
	Stage  constants.ComposeState
	Edit   bool
	Locale constants.Locale
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v while %s: %v", ErrGenerationFailed, e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// UserMessage is the generic text shown to the user
func (e *GenerationError) UserMessage() string {
	if e.Edit {
		return constants.Msg(e.Locale, constants.MsgEditFailed)
	}
	return constants.Msg(e.Locale, constants.MsgComposeFailed)
}
