package repo

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/repo"
	"github.com/thoreinstein/ci/internal/ui"
)

var viewJSON bool

func init() {
	viewCmd.Flags().BoolVar(&viewJSON, "json", false, "output as JSON")
	Cmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view <repo>",
	Short: "Show repository details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViewWithWriter(cmd.Context(), cmd.OutOrStdout(), github(), args[0])
	},
}

func runViewWithWriter(ctx context.Context, w io.Writer, gh *repo.GitHub, name string) error {
	d, err := gh.View(ctx, name)
	if err != nil {
		return userError(err)
	}
	if viewJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(d), "encoding JSON")
	}

	p := ui.NewPrinter(w, w)
	p.Header(d.Owner.Login + "/" + d.Name)
	if d.Description != "" {
		p.Println(d.Description)
		p.Println()
	}
	p.KeyValue("URL", d.URL)
	p.KeyValue("Visibility", strings.ToLower(d.Visibility))
	if b := d.DefaultBranch(); b != "" {
		p.KeyValue("Default branch", b)
	}
	p.KeyValue("Stars", d.StargazerCount)
	p.KeyValue("Forks", d.ForkCount)
	if langs := d.LanguageNames(); len(langs) > 0 {
		p.KeyValue("Languages", strings.Join(langs, ", "))
	}
	p.KeyValue("Created", d.CreatedAt)
	p.KeyValue("Updated", d.UpdatedAt)
	if d.IsArchived {
		p.Warning("This repository is archived")
	}
	return nil
}
