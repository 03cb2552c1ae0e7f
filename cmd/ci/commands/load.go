package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	agentcmd "github.com/thoreinstein/ci/cmd/ci/commands/agent"
	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/cli/prompt"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/launcher"
	"github.com/thoreinstein/ci/internal/logging"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/project"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	loadContext  string
	loadPath     string
	loadPrompt   bool
	loadNoLaunch bool
)

// loadNow stamps sessions; replaceable in tests.
var loadNow = time.Now

func init() {
	loadCmd.Flags().StringVarP(&loadContext, "context", "c", "", "describe the task the agent is loaded for")
	loadCmd.Flags().StringVarP(&loadPath, "path", "p", "", "write the working memory to this file")
	loadCmd.Flags().BoolVar(&loadPrompt, "prompt", false, "ask before launching Claude Code")
	loadCmd.Flags().BoolVar(&loadNoLaunch, "no-launch", false, "prepare the session without launching Claude Code")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load [agent]",
	Short: "Load an agent and launch a session",
	Long: `Load an agent's memory and start a Claude Code session with it.

The memory comes from AGENTS/<agent>/<agent>.md, AGENTS/<agent>/<agent>_memory.md
or the agent's section of AGENTS.md, in that order. Loading updates the agent's
metadata.json, records a session under AGENTS/<agent>/sessions/ and writes a
working memory file with the continuous learning log and session context
appended. That file is piped to "claude code" when Claude Code is installed.

Without an agent name on a terminal, a fuzzy finder lists the agents.`,
	Example: `  # Load and launch
  ci load Athena

  # Describe the task and confirm before launching
  ci load Athena --context "schema review" --prompt

  # Only prepare the working memory
  ci load Athena --no-launch --path /tmp/athena.md

  See Also: ci agents, ci agent launch, ci agent activate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	repo, err := flags.Repo()
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	} else {
		if !logging.IsTTY(os.Stdin) {
			return errors.NewUserError(errors.ErrMissingName, "Pass an agent name: ci load <agent>")
		}
		if name, err = agentcmd.Pick(repo, "Load agent"); err != nil {
			return err
		}
	}

	var autoAccept bool
	if wd, err := os.Getwd(); err == nil {
		if _, cfg, err := project.FindNearest(wd); err == nil {
			autoAccept = cfg.AutoAccept.ShouldAutoAccept(name, "load")
		}
	}

	cfg := config.Current()
	l := launcher.New(cfg.Launch.Command, cfg.Launch.Delay)
	l.Runner = toolRunner

	return runLoadWithIO(cmd.Context(), os.Stdin, cmd.OutOrStdout(), repo, l, name, autoAccept || flags.Yes())
}

// runLoadWithIO prepares the session for name and launches it unless
// --no-launch is set. With --prompt the launch is confirmed on in unless
// accepted is true.
func runLoadWithIO(ctx context.Context, in io.Reader, w io.Writer, repo paths.Repo, l *launcher.Launcher, name string, accepted bool) error {
	loader := agent.NewLoader(repo.Root)
	loader.Now = loadNow

	loaded, err := loader.Load(name, agent.LoadOptions{Context: loadContext, OutputPath: loadPath})
	if err != nil {
		return agentcmd.NotFound(err)
	}

	p := ui.NewPrinter(w, w)
	p.Success("Loaded agent %s from %s", loaded.Name, loaded.Source.Path)
	if loaded.CreatedToolkit {
		p.Info("Created toolkit directory %s", loaded.ToolkitPath)
	}
	p.KeyValue("Session", loaded.SessionPath)
	p.KeyValue("Working memory", loaded.WorkingPath)
	p.KeyValue("Sessions so far", loaded.Metadata.UsageCount)

	if loadNoLaunch {
		printManual(p, l, loaded.WorkingPath)
		return nil
	}

	if loadPrompt && !accepted {
		ok, err := prompt.NewWithIO(in, w).Confirm("Launch Claude Code with "+loaded.Name+"?", true)
		if err != nil {
			return err
		}
		if !ok {
			printManual(p, l, loaded.WorkingPath)
			return nil
		}
	}

	if !l.Available() {
		p.Warning("%s is not installed", l.Command)
		p.Muted("  %s", launcher.InstallHint)
		printManual(p, l, loaded.WorkingPath)
		return nil
	}

	p.Info("Launching %s code with %s...", l.Command, loaded.Name)
	if err := l.Launch(ctx, loaded.WorkingPath, loaded.Env); err != nil {
		return errors.NewSystemError(err, "Start it yourself: "+l.ManualInstructions(loaded.WorkingPath)[0])
	}
	if err := agent.FinishSession(loaded.SessionPath, loadNow()); err != nil {
		logging.FromContext(ctx).Warn("could not record session end", "error", err)
	}
	return nil
}

func printManual(p *ui.Printer, l *launcher.Launcher, path string) {
	p.Println()
	p.Println("Start the session manually with:")
	for _, line := range l.ManualInstructions(path) {
		p.Muted("  %s", line)
	}
}
