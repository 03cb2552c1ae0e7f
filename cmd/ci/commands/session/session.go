// Package session provides the "ci session" commands for the session records
// that ci load writes under AGENTS/<Name>/sessions/.
package session

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

// Replaceable in tests.
var now = time.Now

// Cmd is the root session command.
var Cmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"sessions"},
	Short:   "Inspect and archive agent sessions",
	Long: `Inspect the sessions recorded when agents are loaded.

Every 'ci load' writes AGENTS/<Name>/sessions/<unix-time>.json. A session is
active until the load finishes, completed afterwards, and archived once
'ci session archive' or 'ci session cleanup' marks it so.`,
	Example: `  ci session list --agent Athena --status active
  ci session info Athena 1778051289
  ci session cleanup --days 14 --dry-run

  See Also:
    ci load       - Load an agent and record a session
    ci agent info - Show an agent's session count`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// requireAgent returns the toolkit directory of name or a not-found error.
func requireAgent(repo paths.Repo, name string) (string, error) {
	dir := repo.AgentDir(name)
	if !paths.IsDir(dir) {
		return "", errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "agent %q", name),
			"Use 'ci agent list' to see available agents",
		)
	}
	return dir, nil
}

// findSession looks up a record and turns lookup failures into user errors.
func findSession(repo paths.Repo, name, id string) (*agent.SessionRecord, error) {
	dir, err := requireAgent(repo, name)
	if err != nil {
		return nil, err
	}
	rec, err := agent.FindSession(dir, id)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, errors.NewUserError(err, "Use 'ci session list --agent "+name+"' to see session IDs")
	}
	return rec, err
}

func stateStyle(state string) lipgloss.Style {
	switch state {
	case agent.SessionActive:
		return ui.SuccessStyle
	case agent.SessionCompleted:
		return ui.InfoStyle
	case agent.SessionArchived:
		return ui.WarningStyle
	}
	return ui.MutedStyle
}
