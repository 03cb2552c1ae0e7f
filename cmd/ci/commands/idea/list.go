package idea

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/idea"
	"github.com/thoreinstein/ci/internal/ui"
)

// titleWidth caps titles in the list table.
const titleWidth = 40

var (
	listFilter   string
	listCategory string
	listStatus   string
	listJSON     bool
)

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "match text in title, description or tags")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only ideas in this category")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only ideas with this status")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List ideas",
	Example: `  ci idea list
  ci idea list --filter cache --status exploring
  ci idea list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		return runListWithWriter(cmd.OutOrStdout(), store)
	},
}

func runListWithWriter(w io.Writer, store *idea.Store) error {
	f := idea.Filter{Text: listFilter, Category: listCategory}
	if listStatus != "" {
		st, err := idea.ParseStatus(listStatus)
		if err != nil {
			return userError(err)
		}
		f.Status = st
	}
	ideas, err := store.List(f)
	if err != nil {
		return err
	}

	if listJSON {
		if ideas == nil {
			ideas = []*idea.Idea{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(ideas), "encoding ideas")
	}

	p := ui.NewPrinter(w, w)
	if len(ideas) == 0 {
		p.Muted("No ideas found")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tPRIORITY")
	for _, i := range ideas {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			idea.ShortID(i.ID), idea.Excerpt(i.Title, titleWidth), i.Category, i.Status.Label(), i.Priority)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing table")
	}
	p.Println()
	p.Muted("%s", english.Plural(len(ideas), "idea", ""))
	return nil
}
