package agent

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/logging"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

// currentFile is where the current agent is recorded.
var currentFile = paths.CurrentAgentFile

func init() {
	Cmd.AddCommand(switchCmd, currentCmd)
}

var switchCmd = &cobra.Command{
	Use:   "switch [name]",
	Short: "Change the current agent",
	Long: `Record an agent as the current one. Without a name on a terminal, a fuzzy
finder lists the available agents.`,
	Example: `  ci agent switch Athena
  ci agent switch

  See Also:
    ci agent current - Show the current agent`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			if !logging.IsTTY(os.Stdin) {
				return errors.NewUserError(errors.ErrMissingName, "Pass an agent name: ci agent switch <name>")
			}
			if name, err = Pick(repo, "Switch to agent"); err != nil {
				return err
			}
		}
		return runSwitchWithWriter(cmd.OutOrStdout(), repo, name, currentFile())
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current agent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCurrentWithWriter(cmd.OutOrStdout(), currentFile())
	},
}

func runSwitchWithWriter(w io.Writer, repo paths.Repo, name, file string) error {
	known := paths.IsDir(repo.AgentDir(name))
	if !known {
		if catalog, err := agent.LoadCatalog(repo.AgentsIndex()); err == nil {
			if e, ok := catalog.Find(name); ok {
				name, known = e.Name, true
			}
		}
	}
	if !known {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "agent %q", name),
			"Use 'ci agent list' to see available agents",
		)
	}

	previous, err := agent.Current(file)
	if err != nil {
		return err
	}
	if err := agent.SaveCurrent(file, name); err != nil {
		return err
	}

	p := ui.NewPrinter(w, w)
	if previous != "" && previous != name {
		p.Success("Switched from %s to %s", previous, name)
	} else {
		p.Success("Current agent: %s", name)
	}
	p.Muted("Load it with: ci load %s", name)
	return nil
}

func runCurrentWithWriter(w io.Writer, file string) error {
	name, err := agent.Current(file)
	if err != nil {
		return err
	}
	p := ui.NewPrinter(w, w)
	if name == "" {
		p.Muted("No current agent. Set one with: ci agent switch <name>")
		return nil
	}
	p.Println(name)
	return nil
}
