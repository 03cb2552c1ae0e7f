package brain

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/brain"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <path>",
	Short: "Register a BRAIN directory",
	Long: `Register the directory at path as the BRAIN.

The path must contain a BRAIN/ directory holding at least one markdown file,
either directly or one level below.`,
	Example: `  ci brain register .
  ci brain register ~/CollaborativeIntelligence`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegisterWithWriter(cmd.OutOrStdout(), registry(), args[0])
	},
}

func runRegisterWithWriter(w io.Writer, r *brain.Registry, path string) error {
	root, count, err := r.Register(path)
	switch {
	case errors.Is(err, brain.ErrPathNotFound):
		return errors.NewUserError(err, "Check the path and try again")
	case errors.Is(err, brain.ErrNoBrainDir), errors.Is(err, brain.ErrNoMarkdown):
		return errors.NewUserError(err, "A BRAIN needs a BRAIN/ directory with markdown files")
	case err != nil:
		return err
	}
	p := ui.NewPrinter(w, w)
	p.Success("BRAIN registered: %s", root)
	p.KeyValue("Markdown files", count)
	p.KeyValue("Config", r.ConfigPath)
	return nil
}
