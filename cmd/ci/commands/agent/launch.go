package agent

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/launcher"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/ui"
)

// runner starts the assistant processes.
var runner proc.Runner = proc.Default

var launchDelay time.Duration

func init() {
	launchCmd.Flags().DurationVar(&launchDelay, "delay", 0, "Pause between spawns (default launch.delay, 1s)")
	Cmd.AddCommand(launchCmd)
}

var launchCmd = &cobra.Command{
	Use:   "launch <name>...",
	Short: "Launch several agents in parallel",
	Long: `Load each agent and start one Claude Code process per agent with its
working memory on standard input. Spawns are separated by --delay and ci does
not wait for the sessions to finish.`,
	Example: `  ci agent launch Athena Tester Architect
  ci agent launch Athena Tester --delay 3s

  See Also:
    ci load - Load a single agent interactively`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		cfg := config.Current()
		delay := launchDelay
		if !cmd.Flags().Changed("delay") {
			delay = cfg.Launch.Delay
		}
		l := launcher.New(cfg.Launch.Command, delay)
		l.Runner = runner
		return runLaunchWithWriter(cmd.Context(), cmd.OutOrStdout(), repo, l, args)
	},
}

func runLaunchWithWriter(ctx context.Context, w io.Writer, repo paths.Repo, l *launcher.Launcher, names []string) error {
	if !l.Available() {
		return errors.NewToolError(l.Command, launcher.InstallHint)
	}

	loader := agent.NewLoader(repo.Root)
	loader.Now = now
	jobs := make([]launcher.Job, 0, len(names))
	for _, name := range names {
		loaded, err := loader.Load(name, agent.LoadOptions{})
		if err != nil {
			return NotFound(err)
		}
		jobs = append(jobs, launcher.Job{Agent: loaded.Name, MemoryPath: loaded.WorkingPath, Env: loaded.Env})
	}

	results, err := l.LaunchAll(ctx, jobs)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(w, w)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			p.Error("%s: %v", r.Job.Agent, r.Err)
			continue
		}
		p.Success("Launched %s", r.Job.Agent)
	}
	if failed > 0 {
		return errors.NewSystemError(errors.Newf("%d of %d agents failed to launch", failed, len(results)), "")
	}
	return nil
}

// NotFound turns an unknown agent error into a user error listing some of
// the known agents. Other errors pass through.
func NotFound(err error) error {
	var nf *agent.NotFoundError
	if !errors.As(err, &nf) {
		return err
	}
	hint := "Use 'ci agents' to see available agents"
	if n := len(nf.Available); n > 0 {
		shown := nf.Available[:min(n, 10)]
		hint = "Available agents: " + strings.Join(shown, ", ")
		if n > len(shown) {
			hint += ", ..."
		}
	}
	return errors.NewUserError(err, hint)
}
