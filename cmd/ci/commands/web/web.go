// Package web provides the "ci web" commands for running and deploying the
// CollaborativeIntelligence web portal.
package web

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/web"
)

// runner executes npm and vercel. Replaced in tests.
var runner proc.Runner = proc.Default

// Cmd is the root web command.
var Cmd = &cobra.Command{
	Use:   "web",
	Short: "Run and deploy the web portal",
	Long: `Run and deploy the web portal found in CollaborativeIntelligence/web.

The portal is looked up by walking from the working directory towards your
home directory, then in the CI repository, then in
~/Documents/Projects/CollaborativeIntelligence/web.`,
	Example: `  ci web open
  ci web deploy

  See Also:
    ci docs serve - Preview the command documentation`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// findDir locates the web directory for the current invocation.
func findDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}
	home, _ := os.UserHomeDir()
	ciPath, _ := config.ResolveCIPath(flags.CIPath())
	dir, err := web.Finder{Cwd: wd, Home: home, CIPath: ciPath}.Find()
	if err != nil {
		return "", errors.NewUserError(err, "Run this inside a CollaborativeIntelligence checkout, or set CI_PATH")
	}
	return dir, nil
}

// portal opens the portal in dir with the package runner.
func portal(dir string) (*web.Portal, error) {
	p, err := web.New(dir)
	if err != nil {
		return nil, errors.NewUserError(err, "Run npm init in the web directory first")
	}
	p.Runner = runner
	return p, nil
}
