package errors

import (
	"fmt"
	"io"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// The helpers below forward to cockroachdb/errors so callers only need one
// errors import.

// New creates an error with a stack trace.
func New(msg string) error { return crdb.New(msg) }

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...any) error { return crdb.Newf(format, args...) }

// Wrap annotates err with msg. Returns nil if err is nil.
func Wrap(err error, msg string) error { return crdb.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error { return crdb.Wrapf(err, format, args...) }

// WithDetailf attaches a user-facing detail to err.
func WithDetailf(err error, format string, args ...any) error {
	return crdb.WithDetailf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return crdb.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return crdb.As(err, target) }

// FlattenDetails returns the user-facing details attached to err.
func FlattenDetails(err error) string { return crdb.FlattenDetails(err) }

// Print writes err for the terminal: the message, any details attached with
// WithDetailf, and the suggestion when one exists.
func Print(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if d := FlattenDetails(err); d != "" {
		for _, line := range strings.Split(d, "\n") {
			if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "--") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
	if s := SuggestionOf(err); s != "" {
		fmt.Fprintf(w, "  %s\n", s)
	}
}
