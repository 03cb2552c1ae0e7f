// Package legacy provides the "ci legacy" commands that keep the names of
// the original CI shell commands working.
package legacy

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/proc"
)

// Replaceable in tests.
var (
	runner     proc.Runner = proc.Default
	executable             = os.Executable
)

// Cmd is the root legacy command.
var Cmd = &cobra.Command{
	Use:   "legacy",
	Short: "Run and link legacy command names",
	Long: `Run commands by the names used by the original CI shell tooling.

Most legacy names map to the ci command of the same name. A few were renamed:
push and stage-commit-push are now deploy, stage-commit is commit and
update-gitignore is ignore. "ci legacy link" creates symlinks named after the
legacy commands so existing scripts keep working.`,
	Example: `  # Run a legacy command
  ci legacy run stage-commit-push -m "Release"

  # Show the mapping
  ci legacy list

  # Install symlinks into ~/.local/bin
  ci legacy link

  See Also: ci deploy, ci ignore`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// available reports whether root has a subcommand called name.
func available(root *cobra.Command) func(string) bool {
	return func(name string) bool {
		c, _, err := root.Find([]string{name})
		return err == nil && c != root
	}
}
