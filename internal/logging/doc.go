// Package logging provides structured logging for the ci CLI using slog.
//
// Loggers write human-oriented text to stderr by default (colorized on a
// TTY) or JSON when requested, and can tee a JSON copy into a log file.
// Attribute values that look like secrets are masked before they reach the
// text handler.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("running", "cmd", "git status")
package logging
