package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrNegativeDelay indicates launch.delay is below zero.
	ErrNegativeDelay = errors.New("launch.delay must not be negative")

	// ErrInvalidPort indicates docs.port is outside 1..65535.
	ErrInvalidPort = errors.New("docs.port must be between 1 and 65535")

	// ErrInvalidTheme indicates an unrecognized docs.theme.
	ErrInvalidTheme = errors.New("invalid docs theme")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Themes accepted by docs.theme.
var Themes = []string{"auto", "light", "dark"}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Launch.Delay < 0 {
		errs = append(errs, ErrNegativeDelay)
	}
	if cfg.Docs.Port < 1 || cfg.Docs.Port > 65535 {
		errs = append(errs, ErrInvalidPort)
	}
	if cfg.Docs.Theme != "" && !slices.Contains(Themes, cfg.Docs.Theme) {
		errs = append(errs, errors.Wrapf(ErrInvalidTheme, "%q (valid: %s)", cfg.Docs.Theme, strings.Join(Themes, ", ")))
	}

	for _, f := range []struct{ field, path string }{
		{KeyCIPath, cfg.CIPath},
		{KeyBrainConfig, cfg.BrainConfig},
		{KeyLegacyBinDir, cfg.Legacy.BinDir},
		{KeyIdeasFile, cfg.Ideas.File},
	} {
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &PathError{Field: f.field, Path: f.path, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists.
func validatePath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	if cleaned := filepath.Clean(path); cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
