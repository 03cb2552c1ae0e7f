// Package visualize provides the "ci visualize" commands, diagrams of the
// command tree, the agent ecosystem, workflows and the current project.
package visualize

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/ui"
	"github.com/thoreinstein/ci/internal/visualize"
)

// runner opens exported files. Replaced in tests.
var runner proc.Runner = proc.Default

var (
	sel  visualize.Selection
	save bool
	opts visualize.Options
)

func init() {
	pf := Cmd.PersistentFlags()
	pf.StringVarP(&sel.Format, "format", "f", "terminal", "output format: terminal, web, svg")
	pf.StringVarP(&sel.Theme, "theme", "t", "dark", "color theme: dark, light, contrast, terminal")
	pf.BoolVar(&sel.Web, "web", false, "shortcut for --format web")
	pf.BoolVar(&sel.SVG, "svg", false, "shortcut for --format svg")
	pf.BoolVar(&sel.Dark, "dark", false, "shortcut for --theme dark")
	pf.BoolVar(&sel.Light, "light", false, "shortcut for --theme light")
	pf.BoolVarP(&save, "save", "s", false, "write web and svg output to ci_<view>.<ext> in the working directory")

	commandsCmd.Flags().StringVarP(&opts.Group, "group", "g", "", "show one command group")
	commandsCmd.Flags().BoolVar(&opts.Tree, "tree", false, "show the full tree of the group")
	agentsCmd.Flags().StringVarP(&opts.Category, "category", "c", "", "show one agent category")
	workflowsCmd.Flags().BoolVarP(&opts.Beginner, "beginner", "b", false, "only beginner workflows")
	workflowsCmd.Flags().StringVarP(&opts.Category, "category", "c", "", "only workflows of one category")
	projectCmd.Flags().StringVarP(&opts.Name, "name", "n", "", "project name to show")
	projectCmd.Flags().BoolVarP(&opts.Detailed, "detailed", "d", false, "include git status details")

	Cmd.AddCommand(overviewCmd, commandsCmd, agentsCmd, workflowsCmd, projectCmd)
}

// Cmd is the root visualize command. Without a subcommand it draws the
// overview.
var Cmd = &cobra.Command{
	Use:     "visualize",
	Aliases: []string{"viz"},
	Short:   "Draw diagrams of commands, agents and workflows",
	Long: `Draw diagrams of this CLI, the agents of the CI repository, common
workflows and the current project.

Diagrams print to the terminal by default. Web and SVG output is written to a
file (the temp directory, or the working directory with --save) and opened.
--web, --svg, --dark and --light win over --format and --theme.`,
	Example: `  ci visualize
  ci visualize commands --group agent --tree
  ci visualize agents --web --light --save
  ci visualize workflows --beginner

  See Also:
    ci docs generate - Full HTML command reference`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return render(cmd, visualize.ViewOverview)
	},
}

func viewCommand(view visualize.View, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(view),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render(cmd, view)
		},
	}
}

var (
	overviewCmd  = viewCommand(visualize.ViewOverview, "Summary of commands, agents and the project")
	commandsCmd  = viewCommand(visualize.ViewCommands, "Command groups and their subcommands")
	agentsCmd    = viewCommand(visualize.ViewAgents, "Agents by category")
	workflowsCmd = viewCommand(visualize.ViewWorkflows, "Common command sequences")
	projectCmd   = viewCommand(visualize.ViewProject, "The current project and its git state")
)

func render(cmd *cobra.Command, view visualize.View) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "getting working directory")
	}
	src := visualize.Sources{Root: cmd.Root(), Agents: agentNames(), ProjectDir: wd}
	return runVisualizeWithWriter(cmd.Context(), cmd.OutOrStdout(), view, src, wd)
}

// agentNames lists the agents of the CI repository: the AGENTS.md catalog
// when present, else the agent directories.
func agentNames() []string {
	repo, err := flags.Repo()
	if err != nil {
		return nil
	}
	if catalog, err := agent.LoadCatalog(repo.AgentsIndex()); err == nil {
		if names := catalog.List(); len(names) > 0 {
			return names
		}
	}
	agents, err := agent.Scan(repo.AgentsDir(), agent.ScanOptions{SkipManager: true})
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(agents))
	for _, a := range agents {
		names = append(names, a.Name)
	}
	return names
}

func runVisualizeWithWriter(ctx context.Context, w io.Writer, view visualize.View, src visualize.Sources, dir string) error {
	format, theme, err := sel.Resolve()
	if err != nil {
		return errors.NewUserError(err, "Run 'ci visualize --help' for the valid values")
	}
	d, err := visualize.Build(view, src, opts)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	p := ui.NewPrinter(w, w)
	if format == visualize.FormatTerminal {
		t := &visualize.Terminal{Printer: p, Theme: theme}
		return t.Render(d)
	}

	exporter, err := visualize.NewExporter(theme)
	if err != nil {
		return err
	}
	path := visualize.OutputPath(view, format, save, dir)
	if err := exporter.WriteFile(path, format, d); err != nil {
		return err
	}
	p.Success("Wrote %s", path)
	if err := proc.Open(ctx, runner, path); err != nil {
		p.Warning("Could not open %s: %v", path, err)
	}
	return nil
}
