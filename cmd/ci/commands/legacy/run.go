package legacy

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/legacy"
)

func init() {
	Cmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run CMD [ARGS...]",
	Short: "Run a legacy command",
	Long: `Run a legacy command. The running ci binary is executed again with the
mapped command and the remaining arguments. Flags after CMD are passed
through unchanged.`,
	Example: `  ci legacy run push -m "Fix typo"
  ci legacy run update-gitignore`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "-h" || args[0] == "--help" {
			return cmd.Help()
		}
		return runRun(cmd.Context(), args[0], args[1:], available(cmd.Root()))
	},
}

func runRun(ctx context.Context, name string, args []string, has func(string) bool) error {
	argv, err := legacy.Resolve(name, args, has)
	if err != nil {
		return err
	}
	exe, err := executable()
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "locating the ci binary"), "")
	}
	return legacy.Run(ctx, runner, exe, argv)
}
