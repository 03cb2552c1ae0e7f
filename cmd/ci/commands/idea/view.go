package idea

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/idea"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:     "view <id>",
	Aliases: []string{"show"},
	Short:   "Show an idea",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		return runViewWithWriter(cmd.OutOrStdout(), store, args[0])
	},
}

func runViewWithWriter(w io.Writer, store *idea.Store, ref string) error {
	i, err := store.Get(ref)
	if err != nil {
		return userError(err)
	}
	printIdea(ui.NewPrinter(w, w), i)
	return nil
}
