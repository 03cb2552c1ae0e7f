package commands

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd"
	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/integrate"
	"github.com/thoreinstein/ci/internal/project"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	integrateAgents string
	integrateNoFast bool
	integrateType   string
	detachKeep      bool
)

func init() {
	integrateCmd.Flags().StringVarP(&integrateAgents, "agents", "a", "", "comma separated active agents (default: keep configured agents)")
	integrateCmd.Flags().BoolVar(&integrateNoFast, "no-fast", false, "disable fast agent activation")
	integrateCmd.Flags().StringVar(&integrateType, "integration", project.IntegrationStandalone, "integration type: standalone or override")
	detachCmd.Flags().BoolVar(&detachKeep, "keep-override", false, "keep CLAUDE.i.md.bak for a later re-attach")
	rootCmd.AddCommand(integrateCmd, detachCmd)
}

var integrateCmd = &cobra.Command{
	Use:   "integrate [path]",
	Short: "Integrate CI into an existing project",
	Long: `Wire a project into the CollaborativeIntelligence system through CLAUDE.md.

standalone replaces CLAUDE.md with a CI-managed file and keeps the old one as
CLAUDE.md.bak. override keeps CLAUDE.md, adds a directive that loads
CLAUDE.i.md, and writes CLAUDE.i.md pointing at the CI repository.

Both record the integration type in .ci-config.json and add the standard
patterns to .gitignore.`,
	Example: `  ci integrate
  ci integrate ../api --integration override --agents Athena,Tester

See Also: ci detach, ci config integration`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		opts := integrate.Options{
			Type:           integrateType,
			FastActivation: !integrateNoFast,
			Version:        cmd.Version,
		}
		if c.Flags().Changed("agents") {
			opts.Agents = project.SplitList(integrateAgents)
		}
		if strings.EqualFold(strings.TrimSpace(integrateType), project.IntegrationOverride) {
			repo, err := flags.Repo()
			if err != nil {
				return errors.NewUserError(err, "Set CI_PATH or pass --ci-path; override integration references the CI repository")
			}
			opts.CIPath = repo.Root
		}
		return runIntegrateWithWriter(c.OutOrStdout(), dir, opts)
	},
}

var detachCmd = &cobra.Command{
	Use:   "detach [path]",
	Short: "Detach override integration but keep the configuration",
	Long: `Remove the CI load directive from CLAUDE.md and rename CLAUDE.i.md to
CLAUDE.i.md.bak. .ci-config.json is left in place.

Only projects integrated with --integration override can be detached.`,
	Example: `  ci detach
  ci detach ../api --keep-override`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		return runDetachWithWriter(c.OutOrStdout(), dir, detachKeep)
	},
}

func targetDir(args []string) (string, error) {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", dir)
	}
	return abs, nil
}

func runIntegrateWithWriter(w io.Writer, dir string, opts integrate.Options) error {
	res, err := integrate.Integrate(dir, opts)
	switch {
	case errors.Is(err, errors.ErrInvalidValue):
		return errors.NewUserError(err, "Use --integration standalone or override")
	case errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "Pass an existing project directory")
	case err != nil:
		return err
	}

	p := ui.NewPrinter(w, w)
	p.Header("Integrating CI into " + filepath.Base(dir))
	p.KeyValue("Integration", res.Type)
	p.KeyValue("Agents", strings.Join(res.Agents, ", "))
	p.KeyValue("Fast activation", opts.FastActivation)
	p.Println()
	if res.Backup != "" {
		p.Info("Moved existing %s to %s", integrate.ClaudeFile, filepath.Base(res.Backup))
	}
	for _, f := range res.Created {
		p.Success("Created %s", rel(dir, f))
	}
	for _, f := range res.Updated {
		p.Success("Updated %s", rel(dir, f))
	}
	if len(res.Ignore.Added) > 0 {
		p.Success("Added %d patterns to %s", len(res.Ignore.Added), rel(dir, res.Ignore.Path))
	}
	p.Println()
	p.Info("Next: ci load <agent>")
	return nil
}

func runDetachWithWriter(w io.Writer, dir string, keep bool) error {
	p := ui.NewPrinter(w, w)
	res, err := integrate.Detach(dir)
	switch {
	case errors.Is(err, integrate.ErrNotOverride):
		p.Warning("Project does not use override integration; nothing to detach")
		return nil
	case errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "Detach needs the project's "+integrate.ClaudeFile)
	case err != nil:
		return err
	}

	p.Success("Removed the CI directive from %s", rel(dir, res.ClaudePath))
	p.Success("Renamed %s to %s", integrate.OverrideFile, filepath.Base(res.Backup))
	p.Info("Kept %s", project.FileName)
	if keep {
		p.Muted("Rename %s back and run 'ci integrate --integration override' to re-attach", filepath.Base(res.Backup))
	} else {
		p.Muted("Remove the backup with: rm %s", res.Backup)
	}
	return nil
}

func rel(base, path string) string {
	if r, err := filepath.Rel(base, path); err == nil {
		return r
	}
	return path
}
