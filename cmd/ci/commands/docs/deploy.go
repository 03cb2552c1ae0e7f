package docs

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/docs"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	deploySource  string
	localSymlink  bool
	pagesRepo     string
	pagesBranch   string
	vercelProject string
)

func init() {
	deployCmd.PersistentFlags().StringVarP(&deploySource, "source", "s", DefaultSiteDir, "generated site directory")
	deployLocalCmd.Flags().BoolVar(&localSymlink, "symlink", false, "link instead of copying")
	deployPagesCmd.Flags().StringVar(&pagesRepo, "repo", "", "repository URL (default: origin of the CI repository)")
	deployPagesCmd.Flags().StringVar(&pagesBranch, "branch", docs.DefaultPagesBranch, "branch to publish to")
	deployVercelCmd.Flags().StringVar(&vercelProject, "project", "", "Vercel project to link")

	deployCmd.AddCommand(deployLocalCmd, deployPagesCmd, deployVercelCmd)
	Cmd.AddCommand(deployCmd)
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Publish the generated site",
	Long: `Publish a site written by "ci docs generate" to a local directory,
GitHub Pages or Vercel.`,
	Example: `  ci docs deploy local ~/public/ci --symlink
  ci docs deploy github-pages --repo git@github.com:me/ci-docs.git
  ci docs deploy vercel --project ci-docs`,
	RunE: func(c *cobra.Command, _ []string) error {
		return c.Help()
	},
}

var deployLocalCmd = &cobra.Command{
	Use:   "local <path>",
	Short: "Copy or link the site to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runDeployLocalWithWriter(c.OutOrStdout(), deployer(c), deploySource, args[0], localSymlink)
	},
}

var deployPagesCmd = &cobra.Command{
	Use:     "github-pages",
	Aliases: []string{"pages"},
	Short:   "Force-push the site to a GitHub Pages branch",
	Args:    cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		repoURL := pagesRepo
		if repoURL == "" {
			var err error
			if repoURL, err = defaultPagesRepo(); err != nil {
				return err
			}
		}
		return runDeployPagesWithWriter(c.Context(), c.OutOrStdout(), deployer(c), deploySource, repoURL, pagesBranch)
	},
}

var deployVercelCmd = &cobra.Command{
	Use:   "vercel",
	Short: "Deploy the site to Vercel",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runDeployVercelWithWriter(c.Context(), c.OutOrStdout(), deployer(c), deploySource, vercelProject)
	},
}

func deployer(c *cobra.Command) *docs.Deployer {
	return &docs.Deployer{Runner: runner, Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()}
}

// defaultPagesRepo is the origin URL of the CI repository.
func defaultPagesRepo() (string, error) {
	ciPath, err := config.ResolveCIPath(flags.CIPath())
	if err == nil {
		var st *git.Status
		if st, err = git.Inspect(ciPath); err == nil && st.Origin != "" {
			return st.Origin, nil
		}
	}
	return "", errors.NewUserError(
		errors.Wrap(errors.ErrMissingName, "no repository to publish to"),
		"Pass --repo <url>",
	)
}

// siteError marks a missing site or bad destination as a user error.
func siteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "Run: ci docs generate -o "+deploySource)
	case errors.Is(err, errors.ErrAlreadyExists), errors.Is(err, errors.ErrInvalidValue):
		return errors.NewUserError(err, "")
	}
	return err
}

func runDeployLocalWithWriter(w io.Writer, d *docs.Deployer, src, dest string, symlink bool) error {
	if err := siteError(d.Local(src, dest, symlink)); err != nil {
		return err
	}
	verb := "Copied"
	if symlink {
		verb = "Linked"
	}
	ui.NewPrinter(w, w).Success("%s documentation to %s", verb, dest)
	return nil
}

func runDeployPagesWithWriter(ctx context.Context, w io.Writer, d *docs.Deployer, src, repoURL, branch string) error {
	if err := siteError(d.GitHubPages(ctx, src, repoURL, branch)); err != nil {
		return err
	}
	ui.NewPrinter(w, w).Success("Published documentation to %s (%s)", repoURL, branch)
	return nil
}

func runDeployVercelWithWriter(ctx context.Context, w io.Writer, d *docs.Deployer, src, project string) error {
	if err := siteError(d.Vercel(ctx, src, project)); err != nil {
		return err
	}
	ui.NewPrinter(w, w).Success("Deployed documentation to Vercel")
	return nil
}
