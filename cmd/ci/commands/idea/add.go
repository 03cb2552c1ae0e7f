package idea

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/cli/prompt"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/idea"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	addDescription string
	addCategory    string
	addTags        string
	addPriority    string
	addStatus      string
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "longer description")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category (default: "+idea.DefaultCategory+")")
	addCmd.Flags().StringVarP(&addTags, "tags", "t", "", "comma separated tags")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "low, medium, high or critical")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "new", "new, exploring, development, implemented, onhold, archived or rejected")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add an idea",
	Long:  "Add an idea. Without a title argument, the title is read from stdin.",
	Example: `  ci idea add "Dark theme for docs"
  ci idea add "Parallel launch" -d "Start agents together" -t agents -p h`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		title, err := titleArg(os.Stdin, cmd.OutOrStdout(), args)
		if err != nil {
			return err
		}
		return runAddWithWriter(cmd.OutOrStdout(), store, title)
	},
}

func titleArg(in io.Reader, w io.Writer, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	title, err := prompt.NewWithIO(in, w).Input("Idea title", "")
	if err != nil {
		return "", errors.NewUserError(errors.Wrap(errors.ErrMissingName, "no title given"), `Run: ci idea add "<title>"`)
	}
	return title, nil
}

func runAddWithWriter(w io.Writer, store *idea.Store, title string) error {
	status, err := idea.ParseStatus(addStatus)
	if err != nil {
		return userError(err)
	}
	priority, err := idea.ParsePriority(addPriority)
	if err != nil {
		return userError(err)
	}
	i, err := store.Add(idea.Draft{
		Title:       title,
		Description: addDescription,
		Category:    addCategory,
		Tags:        idea.SplitTags(addTags),
		Status:      status,
		Priority:    priority,
	})
	if err != nil {
		return userError(err)
	}
	ui.NewPrinter(w, w).Success("Added idea %s: %s", idea.ShortID(i.ID), i.Title)
	return nil
}
