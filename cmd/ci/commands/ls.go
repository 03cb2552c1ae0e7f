package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/listing"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	lsAll   bool
	lsWidth int
)

func init() {
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "include hidden files")
	lsCmd.Flags().IntVarP(&lsWidth, "width", "w", 0, "terminal width (default: detected)")
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory grouped by file type",
	Long: `List a directory in two columns, grouped by file type.

Groups are ordered directories first, then source, configuration, build,
documentation, git, binaries, archives, media, backups and everything else.
Large groups are split into parts or by extension family. Hidden entries
other than .git, .gitignore and .env are skipped unless --all is given.`,
	Example: `  ci ls
  ci ls ~/src/project --all
  ci ls --width 120

See Also: ci status`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		width := lsWidth
		if width <= 0 {
			width = ui.TerminalWidth()
		}
		return runLsWithWriter(c.OutOrStdout(), dir, listing.Options{All: lsAll}, width)
	},
}

func runLsWithWriter(w io.Writer, dir string, opts listing.Options, width int) error {
	entries, err := listing.Collect(dir, opts)
	switch {
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrInvalidValue):
		return errors.NewUserError(err, "")
	case errors.Is(err, os.ErrPermission):
		return errors.NewUserError(err, "Check the directory permissions")
	case err != nil:
		return err
	}

	p := ui.NewPrinter(w, w)
	if len(entries) == 0 {
		p.Muted("Directory is empty")
		return nil
	}

	layout := listing.Layout{Width: width}
	if p.Colored() {
		layout.Style = p.Style
	}
	for _, line := range layout.Render(listing.GroupEntries(entries)) {
		p.Println(line)
	}
	return nil
}
