// Package repo provides the "ci repo" commands, a thin layer over the GitHub
// CLI for listing, creating, cloning and viewing repositories.
package repo

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/repo"
)

// runner executes gh. Replaced in tests.
var runner proc.Runner = proc.Default

func github() *repo.GitHub {
	return &repo.GitHub{Runner: runner}
}

// Cmd is the root repo command. Without a subcommand it lists repositories.
var Cmd = &cobra.Command{
	Use:     "repo",
	Aliases: []string{"repos"},
	Short:   "Work with GitHub repositories",
	Long: `Work with GitHub repositories through the GitHub CLI (gh).

Without a subcommand, lists your repositories. gh must be installed and
authenticated (gh auth login).`,
	Example: `  ci repo
  ci repo create tools --description "Shared tooling" --private
  ci repo clone me/tools
  ci repo view me/tools

  See Also:
    ci commit - Commit changes in the current repository
    ci deploy - Commit and push`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout(), github(), listLimit)
	},
}

// userError marks argument problems as user errors and leaves tool and
// subprocess errors alone.
func userError(err error) error {
	if errors.Is(err, errors.ErrMissingName) {
		return errors.NewUserError(err, "")
	}
	return err
}
