package idea

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/idea"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	updTitle       string
	updDescription string
	updCategory    string
	updTags        string
	updStatus      string
	updPriority    string
	updNote        string
	updRelate      string
)

func init() {
	f := updateCmd.Flags()
	f.StringVar(&updTitle, "title", "", "new title")
	f.StringVarP(&updDescription, "description", "d", "", "new description")
	f.StringVarP(&updCategory, "category", "c", "", "new category")
	f.StringVarP(&updTags, "tags", "t", "", "replace tags (comma separated)")
	f.StringVarP(&updStatus, "status", "s", "", "new status")
	f.StringVarP(&updPriority, "priority", "p", "", "new priority")
	f.StringVarP(&updNote, "note", "n", "", "append a note")
	f.StringVarP(&updRelate, "relate", "r", "", "link another idea by ID")
	Cmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an idea",
	Example: `  ci idea update 3f2a --status exploring
  ci idea update 3f2a --tags ui,docs --note "Needs design review"
  ci idea update 3f2a --relate 9c41`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		u, err := buildUpdate(cmd.Flags())
		if err != nil {
			return err
		}
		return runUpdateWithWriter(cmd.OutOrStdout(), store, args[0], u)
	},
}

// buildUpdate turns the flags that were set into an Update.
func buildUpdate(fs *pflag.FlagSet) (idea.Update, error) {
	var u idea.Update
	if fs.Changed("title") {
		u.Title = &updTitle
	}
	if fs.Changed("description") {
		u.Description = &updDescription
	}
	if fs.Changed("category") {
		u.Category = &updCategory
	}
	if fs.Changed("tags") {
		u.Tags = idea.SplitTags(updTags)
		u.SetTags = true
	}
	if fs.Changed("status") {
		st, err := idea.ParseStatus(updStatus)
		if err != nil {
			return u, userError(err)
		}
		u.Status = &st
	}
	if fs.Changed("priority") {
		pr, err := idea.ParsePriority(updPriority)
		if err != nil {
			return u, userError(err)
		}
		u.Priority = &pr
	}
	u.Note = updNote
	u.Relate = updRelate
	return u, nil
}

func runUpdateWithWriter(w io.Writer, store *idea.Store, ref string, u idea.Update) error {
	if u.Empty() {
		return errors.NewUserError(
			errors.Wrap(errors.ErrInvalidValue, "nothing to update"),
			"Pass at least one of --title, --description, --category, --tags, --status, --priority, --note or --relate",
		)
	}
	i, err := store.Update(ref, u)
	if err != nil {
		return userError(err)
	}
	ui.NewPrinter(w, w).Success("Updated idea %s: %s", idea.ShortID(i.ID), i.Title)
	return nil
}
