package session

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(archiveCmd)
}

var archiveCmd = &cobra.Command{
	Use:     "archive <agent> <session>",
	Short:   "Mark a session archived",
	Example: `  ci session archive Athena 1778051289`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runArchiveWithWriter(cmd.OutOrStdout(), repo, args[0], args[1])
	},
}

func runArchiveWithWriter(w io.Writer, repo paths.Repo, name, id string) error {
	rec, err := findSession(repo, name, id)
	if err != nil {
		return err
	}
	p := ui.NewPrinter(w, w)
	if rec.State() == agent.SessionArchived {
		p.Info("Session %s of %s is already archived", rec.ID, rec.AgentName)
		return nil
	}
	if err := agent.ArchiveSession(rec.Path); err != nil {
		if errors.Is(err, errors.ErrInvalidValue) {
			return errors.NewUserError(err, "Fix or remove the record file")
		}
		return err
	}
	p.Success("Archived session %s of %s", rec.ID, rec.AgentName)
	return nil
}
