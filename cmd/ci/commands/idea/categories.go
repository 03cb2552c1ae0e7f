package idea

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(categoriesCmd, tagsCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		return runNamesWithWriter(cmd.OutOrStdout(), "Categories", store.Categories)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		return runNamesWithWriter(cmd.OutOrStdout(), "Tags", store.Tags)
	},
}

// runNamesWithWriter prints the distinct values returned by load.
func runNamesWithWriter(w io.Writer, title string, load func() ([]string, error)) error {
	names, err := load()
	if err != nil {
		return err
	}
	p := ui.NewPrinter(w, w)
	if len(names) == 0 {
		p.Muted("No %s yet", strings.ToLower(title))
		return nil
	}
	p.Header(title)
	for _, n := range names {
		p.Printf("  %s\n", n)
	}
	return nil
}

