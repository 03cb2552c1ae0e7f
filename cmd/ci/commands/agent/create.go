package agent

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

var createEnable bool

func init() {
	createCmd.Flags().BoolVar(&createEnable, "enable", false, "Enable the new agent in the current project")
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new agent",
	Long: `Create AGENTS/<name>/ with a README, MEMORY.md, ContinuousLearning.md
and an empty Sessions directory.

Names start with a letter and contain only letters, digits, '-' or '_'.`,
	Example: `  ci agent create Reviewer
  ci agent create Reviewer --enable

  See Also:
    ci agent info - Show the new agent`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runCreateWithWriter(cmd.OutOrStdout(), repo, args[0])
	},
}

func runCreateWithWriter(w io.Writer, repo paths.Repo, name string) error {
	files, err := agent.Create(repo.AgentsDir(), name, now())
	switch {
	case errors.Is(err, errors.ErrAlreadyExists):
		return errors.NewUserError(err, "Use 'ci agent info "+name+"' to inspect it")
	case errors.Is(err, errors.ErrInvalidValue), errors.Is(err, errors.ErrMissingName):
		return errors.NewUserError(err, "")
	case err != nil:
		return err
	}

	p := ui.NewPrinter(w, w)
	p.Success("Created agent %s", name)
	for _, f := range files {
		p.Muted("  %s", f.Path)
	}

	if createEnable {
		return runEnableWithWriter(w, repo, name, true)
	}
	return nil
}
