package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Environment variables that override color detection.
const (
	EnvNoColor    = "NO_COLOR"
	EnvForceColor = "CI_FORCE_COLOR"
)

// IsTTY reports whether w is attached to a terminal. Writers without an Fd
// method are never terminals.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI styling should be written to w.
//
// NO_COLOR (https://no-color.org) always wins. CI_FORCE_COLOR enables color
// for pipes, which is useful when paging output through "less -R". Otherwise
// color requires a terminal whose TERM is not "dumb".
func SupportsColor(w io.Writer) bool {
	return colorEnabled(os.LookupEnv, IsTTY(w))
}

func colorEnabled(lookup func(string) (string, bool), tty bool) bool {
	if _, ok := lookup(EnvNoColor); ok {
		return false
	}
	if v, ok := lookup(EnvForceColor); ok && v != "" && v != "0" {
		return true
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return false
	}
	return tty
}
