// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"os"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
)

// Detect returns the editor command line: $EDITOR, then $VISUAL, then nano
// when installed, else vi. The value is split on whitespace so settings
// such as "code -w" work.
func Detect(r proc.Runner, getenv func(string) string) []string {
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(getenv(key)); len(fields) > 0 {
			return fields
		}
	}
	if proc.Has(r, "nano") {
		return []string{"nano"}
	}
	return []string{"vi"}
}

// Open edits path in the detected editor, attached to the terminal.
func Open(ctx context.Context, r proc.Runner, path string) error {
	argv := Detect(r, os.Getenv)
	if !proc.Has(r, argv[0]) {
		return errors.NewToolError(argv[0], "Set EDITOR to an installed editor")
	}
	err := r.Run(ctx, proc.Cmd{
		Name:   argv[0],
		Args:   append(argv[1:], path),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	return errors.Wrap(err, "running editor")
}
