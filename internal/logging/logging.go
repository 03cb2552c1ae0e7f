package logging

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the encoding of the primary log output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// LevelTrace sits below debug and is enabled with -vvv or CI_DEBUG=2.
const LevelTrace = slog.Level(-8)

// EnvDebug raises verbosity when no -v flag is given.
const EnvDebug = "CI_DEBUG"

// Config describes the logger built by [New].
type Config struct {
	Level  slog.Level
	Format Format
	// Output receives the primary stream. Nil means stderr.
	Output io.Writer
	// File, when set, receives a JSON copy of every record.
	File io.Writer
}

// New builds a logger from cfg. Unknown formats use the text handler.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level, ReplaceAttr: replaceLevelName}

	var primary slog.Handler
	if cfg.Format == FormatJSON {
		primary = slog.NewJSONHandler(out, opts)
	} else {
		primary = NewHandler(out, opts)
	}
	if cfg.File == nil {
		return slog.New(primary)
	}
	return slog.New(NewMultiHandler(primary, slog.NewJSONHandler(cfg.File, opts)))
}

// LevelFromVerbosity maps the count of -v flags to a level.
// Zero keeps warnings and errors only, one enables info, two debug, three or
// more trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// VerbosityFromEnv translates CI_DEBUG into a -v count: "1" or "true" is
// debug, "2" is trace, anything else is zero.
func VerbosityFromEnv(lookup func(string) (string, bool)) int {
	v, _ := lookup(EnvDebug)
	switch v {
	case "1", "true":
		return 2
	case "2":
		return 3
	}
	return 0
}

// ParseFormat converts a flag value to a Format, reporting whether it is known.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, true
	case FormatJSON:
		return FormatJSON, true
	}
	return FormatText, false
}

func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

func replaceLevelName(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if l, ok := a.Value.Any().(slog.Level); ok {
		a.Value = slog.StringValue(levelName(l))
	}
	return a
}
