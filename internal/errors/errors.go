package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

// UserMessage is implemented by errors that carry a message meant for the
// person at the keyboard rather than for the log
type UserMessage interface {
	UserMessage() string
}

// Friendly returns the user-facing message for err when one is attached,
// falling back to Format.
func Friendly(err error) string {
	if err == nil {
		return ""
	}
	var um UserMessage
	if stderrors.As(err, &um) {
		return um.UserMessage()
	}
	return Format(err)
}
