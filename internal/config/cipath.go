package config

import (
	"os"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
)

// ErrCIPathNotFound indicates no CI repository could be located.
var ErrCIPathNotFound = errors.New("CI repository path not found")

// Resolver locates the CI repository.
type Resolver struct {
	// Flag is the value of --ci-path, if given.
	Flag string
	// Configured is the ci_path config value.
	Configured string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// Home defaults to the user's home directory.
	Home string
}

// Resolve returns the CI repository root.
// Order: flag, CI_PATH (must exist), config, then the well-known checkouts
// that contain CLAUDE.md.
func (r Resolver) Resolve() (string, error) {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if r.Flag != "" {
		if !paths.IsDir(r.Flag) {
			return "", errors.NewUserError(
				errors.Wrapf(ErrCIPathNotFound, "--ci-path %s does not exist", r.Flag),
				"Pass an existing CollaborativeIntelligence checkout",
			)
		}
		return r.Flag, nil
	}

	if env := getenv("CI_PATH"); env != "" {
		if paths.IsDir(env) {
			return env, nil
		}
	}

	if r.Configured != "" && paths.IsDir(r.Configured) {
		return r.Configured, nil
	}

	home := r.Home
	if home == "" {
		home = paths.Home()
	}
	for _, candidate := range paths.CandidateRepoPaths(home) {
		if paths.IsRepo(candidate) {
			return candidate, nil
		}
	}

	return "", errors.NewUserError(ErrCIPathNotFound,
		"Set CI_PATH to your CollaborativeIntelligence checkout or pass --ci-path")
}

// ResolveCIPath resolves the repository using the loaded configuration.
func ResolveCIPath(flag string) (string, error) {
	return Resolver{Flag: flag, Configured: Current().CIPath}.Resolve()
}
