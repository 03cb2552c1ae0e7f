package legacy

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/legacy"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show legacy names and their ci commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.OutOrStdout(), available(cmd.Root()))
	},
}

func runListWithWriter(w io.Writer, has func(string) bool) error {
	p := ui.NewPrinter(w, w)
	p.Header("Legacy Commands")
	for _, g := range legacy.Groups() {
		if len(g.Mappings) == 0 {
			continue
		}
		p.Println()
		p.Printf("%s %s\n", g.Icon, p.Style(ui.HeaderStyle, g.Title))
		for _, m := range g.Mappings {
			target := p.Style(ui.CodeStyle, "ci "+m.Command)
			if has != nil && !has(m.Command) {
				target = p.Style(ui.MutedStyle, "ci "+m.Command+" (not available)")
			}
			p.Printf("  %-18s → %s\n", m.Legacy, target)
		}
	}
	return nil
}
