package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/ignore"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	rootCmd.AddCommand(ignoreCmd)
}

var ignoreCmd = &cobra.Command{
	Use:   "ignore",
	Short: "Add the standard patterns to .gitignore",
	Long: `Add the standard ignore patterns (editor files, build output, secrets,
dependency directories) to the .gitignore at the root of the current git
repository.

Only missing patterns are appended, so running the command again changes
nothing.`,
	Example: `  ci ignore

See Also: ci init, ci status`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		return runIgnoreWithWriter(c.OutOrStdout(), wd)
	},
}

func runIgnoreWithWriter(w io.Writer, dir string) error {
	root, err := git.Root(dir)
	if err != nil {
		return errors.NewUserError(err, "Run this inside a git repository, or: git init")
	}
	return applyIgnore(ui.NewPrinter(w, w), root)
}

func applyIgnore(p *ui.Printer, dir string) error {
	res, err := ignore.Apply(dir)
	if err != nil {
		return err
	}
	switch {
	case len(res.Added) == 0:
		p.Info("%s already contains all standard patterns", res.Path)
	case res.Created:
		p.Success("Created %s with %d patterns", res.Path, len(res.Added))
	default:
		p.Success("Added %d patterns to %s", len(res.Added), res.Path)
	}
	return nil
}
