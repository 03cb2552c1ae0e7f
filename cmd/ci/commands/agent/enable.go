package agent

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(enableCmd, disableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable an agent in the current project",
	Long:  `Add the agent to active_agents in the nearest .ci-config.json.`,
	Example: `  ci agent enable Tester

  See Also:
    ci agent disable - Disable an agent
    ci config agents - Show or replace the active agents`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runEnableWithWriter(cmd.OutOrStdout(), repo, args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable an agent in the current project",
	Long: `Remove the agent from active_agents in the nearest .ci-config.json and
remember it as disabled.`,
	Example: `  ci agent disable Tester

  See Also:
    ci agent enable - Enable an agent`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runEnableWithWriter(cmd.OutOrStdout(), repo, args[0], false)
	},
}

func runEnableWithWriter(w io.Writer, repo paths.Repo, name string, enable bool) error {
	if _, err := requireAgent(repo, name); err != nil {
		return err
	}
	path, cfg, err := nearestProject()
	if err != nil {
		return err
	}

	var changed bool
	if enable {
		changed = cfg.EnableAgent(name)
	} else {
		changed = cfg.DisableAgent(name)
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	p := ui.NewPrinter(w, w)
	switch {
	case enable && changed:
		p.Success("Agent '%s' enabled in current project", name)
		p.Muted("To activate: ci agent activate %s", name)
	case enable:
		p.Info("Agent '%s' is already enabled", name)
	case changed:
		p.Success("Agent '%s' disabled in current project", name)
		p.Muted("To re-enable: ci agent enable %s", name)
	default:
		p.Info("Agent '%s' was not enabled; marked as disabled", name)
	}
	return nil
}
