package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/compose"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	apperrors "github.com/shenyaoyiivy/Glimmer-Mood/internal/errors"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
)

// ErrCancelled is returned when the user interrupts a prompt
var ErrCancelled = errors.New("cancelled")

// ReadText reads multi-line text interactively. Input ends at an empty line
// after some text, or at EOF (Ctrl-D).
func (c *Context) ReadText(prompt string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryLimit:    -1,
		InterruptPrompt: "^C",
		Stdin:           io.NopCloser(c.Stdin()),
		Stdout:          c.Stdout(),
	})
	if err != nil {
		return "", err
	}
	defer rl.Close()

	var lines []string
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrCancelled
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if line == "" && len(lines) > 0 {
			break
		}
		lines = append(lines, line)
		rl.SetPrompt(strings.Repeat(" ", len(prompt)))
	}
	return strings.Join(lines, constants.TextSeparator), nil
}

// Confirm asks a yes/no question; anything but y or yes is a no
func (c *Context) Confirm(question string) (bool, error) {
	c.Printf("%s [y/N]: ", question)
	response, err := bufio.NewReader(c.Stdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Explain turns a domain error into the message the user should see. The
// original error is logged.
func (c *Context) Explain(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, compose.ErrEmptyInput):
		return errors.New(constants.Msg(c.Locale(), constants.MsgEmptyInput))
	case errors.Is(err, compose.ErrBusy):
		return errors.New(constants.Msg(c.Locale(), constants.MsgBusy))
	}
	var um apperrors.UserMessage
	if errors.As(err, &um) {
		logger.Debug("Command failed", "error", err)
		return errors.New(um.UserMessage())
	}
	return err
}
