// Package docs provides the "ci docs" commands: rendering the command
// documentation as HTML, previewing it locally and publishing it.
package docs

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd"
	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/docs"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/logging"
	"github.com/thoreinstein/ci/internal/proc"
)

// Default output directories.
const (
	DefaultSiteDir = "docs"
	DefaultAppDir  = "docs-app"
)

// runner executes git, vercel and the browser opener. Replaced in tests.
var runner proc.Runner = proc.Default

// Cmd is the root docs command.
var Cmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate, preview and publish documentation",
	Long: `Generate HTML documentation for every ci command, preview it on
localhost and publish it.

The pages are rendered from the command tree of this binary, so they always
match the installed version. When the CI repository is found, the agents
listed in AGENTS.md are included in the agent gallery.`,
	Example: `  ci docs serve --open
  ci docs generate -o site --interactive --agents
  ci docs deploy github-pages -s site

  See Also:
    ci gen-doc   - Write the markdown command reference
    ci visualize - Diagrams of commands and agents`,
	RunE: func(c *cobra.Command, _ []string) error {
		return c.Help()
	},
}

// newGenerator returns a generator for the command tree c belongs to.
func newGenerator(c *cobra.Command) (*docs.Generator, error) {
	return docs.NewGenerator(c.Root(), catalogAgents(c), cmd.Version)
}

// catalogAgents reads the agent gallery from AGENTS.md. Failures leave the
// gallery empty.
func catalogAgents(c *cobra.Command) []docs.Agent {
	logger := logging.FromContext(c.Context())
	repo, err := flags.Repo()
	if err != nil {
		logger.Debug("agent gallery disabled", slog.String("error", err.Error()))
		return nil
	}
	catalog, err := agent.LoadCatalog(repo.AgentsIndex())
	if err != nil {
		logger.Debug("reading agents index", slog.String("error", err.Error()))
		return nil
	}
	return docs.AgentsFrom(catalog.Entries())
}

// theme parses s, falling back to docs.theme when s is empty.
func theme(s string) (docs.Theme, error) {
	if s == "" {
		s = config.Current().Docs.Theme
	}
	t, err := docs.ParseTheme(s)
	if err != nil {
		return "", errors.NewUserError(err, "Use --theme auto, light or dark")
	}
	return t, nil
}
