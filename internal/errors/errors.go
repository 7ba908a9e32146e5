package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/fitbot/internal/logger"
)

var (
	// ErrNotFound is returned when a range, entity, or goal does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicateColumn is returned when appending a column name that already exists
	ErrDuplicateColumn = errors.New("column already exists")
	// ErrMalformedBatch is returned when batch text contains no recognizable separator
	ErrMalformedBatch = errors.New("batch input has no recognizable \"label: value\" lines")
	// ErrUnauthorized is returned when the authorization gate rejects a chat or user
	ErrUnauthorized = errors.New("you are not allowed to use this bot")
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

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
