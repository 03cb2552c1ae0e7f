// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (agent, brain, docs, etc.).
package flags

import (
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/paths"
)

var (
	ciPath string
	yes    bool
)

// CIPath returns the value of the --ci-path flag.
func CIPath() string {
	return ciPath
}

// SetCIPath sets the --ci-path value. The root command calls this after
// parsing.
func SetCIPath(path string) {
	ciPath = path
}

// Yes reports whether -y/--yes was given.
func Yes() bool {
	return yes
}

// SetYes sets the -y/--yes value.
func SetYes(v bool) {
	yes = v
}

// Repo resolves the CI repository from --ci-path, CI_PATH, the config file
// and the well-known checkout locations.
func Repo() (paths.Repo, error) {
	root, err := config.ResolveCIPath(ciPath)
	if err != nil {
		return paths.Repo{}, err
	}
	return paths.NewRepo(root), nil
}
