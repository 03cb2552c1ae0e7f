package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/repo"
	"github.com/thoreinstein/ci/internal/ui"
)

const descriptionWidth = 50

var (
	listLimit int
	listJSON  bool
)

func init() {
	for _, c := range []*cobra.Command{Cmd, listCmd} {
		c.Flags().IntVarP(&listLimit, "limit", "L", repo.DefaultLimit, "maximum number of repositories")
		c.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	}
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your repositories",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout(), github(), listLimit)
	},
}

func runListWithWriter(ctx context.Context, w io.Writer, gh *repo.GitHub, limit int) error {
	repos, err := gh.List(ctx, limit)
	if err != nil {
		return err
	}
	if listJSON {
		if repos == nil {
			repos = []repo.Repo{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(repos), "encoding JSON")
	}

	p := ui.NewPrinter(w, w)
	if len(repos) == 0 {
		p.Muted("No repositories found")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVISIBILITY\tDESCRIPTION")
	for _, r := range repos {
		var flags []string
		if r.IsFork {
			flags = append(flags, "fork")
		}
		if r.IsArchived {
			flags = append(flags, "archived")
		}
		visibility := strings.ToLower(r.Visibility)
		if len(flags) > 0 {
			visibility += " (" + strings.Join(flags, ", ") + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, visibility, ansi.Truncate(r.Description, descriptionWidth, "…"))
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing table")
	}
	p.Println()
	p.Muted("%d repositories", len(repos))
	return nil
}
