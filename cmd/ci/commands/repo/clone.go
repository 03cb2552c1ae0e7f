package repo

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/repo"
	"github.com/thoreinstein/ci/internal/ui"
)

var cloneDepth int

func init() {
	cloneCmd.Flags().IntVar(&cloneDepth, "depth", 0, "create a shallow clone with this many commits")
	Cmd.AddCommand(cloneCmd)
}

var cloneCmd = &cobra.Command{
	Use:   "clone <repo> [dir]",
	Short: "Clone a repository",
	Long: `Clone a repository given as NAME, OWNER/NAME or URL. The directory
defaults to the repository name.

Git URLs (https://, ssh://, git@host:path.git) are cloned with git directly
and do not need gh.`,
	Example: `  ci repo clone me/tools
  ci repo clone me/tools ~/src/tools
  ci repo clone https://github.com/me/tools.git --depth 1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) == 2 {
			dir = args[1]
		}
		return runCloneWithWriter(cmd.Context(), cmd.OutOrStdout(), github(), args[0], dir, cloneDepth)
	},
}

func runCloneWithWriter(ctx context.Context, w io.Writer, gh *repo.GitHub, name, dir string, depth int) error {
	if depth < 0 {
		return errors.NewUserError(errors.Wrapf(errors.ErrInvalidValue, "depth %d", depth), "Use a positive --depth")
	}
	if git.IsURL(name) {
		client := &git.Client{Runner: gh.Runner}
		if !client.Available() {
			return errors.NewToolError(git.Program, git.InstallHint)
		}
		if err := client.Clone(ctx, name, dir, depth); err != nil {
			if errors.Is(err, errors.ErrInvalidValue) {
				return errors.NewUserError(err, "Use an https, ssh or user@host:path.git URL")
			}
			return err
		}
	} else if err := gh.Clone(ctx, name, dir, depth); err != nil {
		return userError(err)
	}
	ui.NewPrinter(w, w).Success("Cloned %s into %s", name, repo.CloneDir(name, dir))
	return nil
}
