package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	commitMessage string
	commitAll     bool
	deployMessage string
)

func init() {
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message (default: generated from the staged changes)")
	commitCmd.Flags().BoolVarP(&commitAll, "all", "a", false, "stage every change before committing")
	deployCmd.Flags().StringVarP(&deployMessage, "message", "m", "", "commit message (default: generated from the staged changes)")
	rootCmd.AddCommand(commitCmd, deployCmd)
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit staged changes",
	Long: `Commit the staged changes of the current git repository.

Without --message a message is generated from the staged paths, for example
"Add main.go" or "Update 3 files (2 added, 1 modified)".`,
	Example: `  ci commit -m "Fix parser"
  ci commit --all

See Also: ci deploy, ci status`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		client, err := gitClient()
		if err != nil {
			return err
		}
		return runCommitWithWriter(c.Context(), c.OutOrStdout(), client, commitMessage, commitAll)
	},
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Stage, commit and push all changes",
	Long: `Stage every change, commit it and push the current branch to its
upstream.`,
	Example: `  ci deploy
  ci deploy -m "Release notes"

See Also: ci commit`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		client, err := gitClient()
		if err != nil {
			return err
		}
		return runDeployWithWriter(c.Context(), c.OutOrStdout(), client, deployMessage)
	},
}

// gitClient returns a client for the repository containing the working
// directory.
func gitClient() (*git.Client, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}
	root, err := git.Root(wd)
	if err != nil {
		return nil, errors.NewUserError(err, "Run this inside a git repository")
	}
	client := git.New(root)
	client.Runner = toolRunner
	return client, nil
}

func runCommitWithWriter(ctx context.Context, w io.Writer, client *git.Client, message string, all bool) error {
	if !client.Available() {
		return errors.NewToolError(git.Program, git.InstallHint)
	}
	p := ui.NewPrinter(w, w)
	if all {
		if err := client.AddAll(ctx); err != nil {
			return errors.NewSystemError(err, "")
		}
	}
	staged, err := client.Staged(ctx)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if len(staged) == 0 {
		return errors.NewUserError(
			errors.Wrap(errors.ErrInvalidValue, "nothing staged to commit"),
			"Stage files with git add, or use --all",
		)
	}

	if message == "" {
		message = commitMessageFor(client.Dir, staged)
	}
	if err := client.Commit(ctx, message); err != nil {
		return errors.NewSystemError(err, "")
	}
	p.Success("Committed %d files: %s", len(staged), message)
	return nil
}

func runDeployWithWriter(ctx context.Context, w io.Writer, client *git.Client, message string) error {
	if err := runCommitWithWriter(ctx, w, client, message, true); err != nil {
		return err
	}
	if err := client.Push(ctx); err != nil {
		return errors.NewSystemError(err, "")
	}
	ui.NewPrinter(w, w).Success("Pushed to remote")
	return nil
}

// commitMessageFor describes the staged changes, falling back to a count
// when the work tree cannot be inspected.
func commitMessageFor(dir string, staged []string) string {
	if st, err := git.Inspect(dir); err == nil {
		if msg := git.SuggestMessage(st.Changes); msg != "" {
			return msg
		}
	}
	if len(staged) == 1 {
		return "Update " + staged[0]
	}
	return fmt.Sprintf("Update %d files", len(staged))
}
