package idea

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/cli/prompt"
	"github.com/thoreinstein/ci/internal/idea"
	"github.com/thoreinstein/ci/internal/ui"
)

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without confirmation")
	Cmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an idea",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		return runDeleteWithIO(os.Stdin, cmd.OutOrStdout(), store, args[0], deleteYes || flags.Yes())
	},
}

func runDeleteWithIO(in io.Reader, w io.Writer, store *idea.Store, ref string, yes bool) error {
	p := ui.NewPrinter(w, w)
	i, err := store.Get(ref)
	if err != nil {
		return userError(err)
	}
	if !yes {
		ok, err := prompt.NewWithIO(in, w).Confirm("Delete idea '"+i.Title+"'?", false)
		if err != nil {
			return err
		}
		if !ok {
			p.Info("Deletion cancelled")
			return nil
		}
	}
	if _, err := store.Delete(i.ID); err != nil {
		return userError(err)
	}
	p.Success("Deleted idea %s: %s", idea.ShortID(i.ID), i.Title)
	return nil
}
