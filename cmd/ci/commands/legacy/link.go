package legacy

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/legacy"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

var binDir string

func init() {
	for _, c := range []*cobra.Command{linkCmd, unlinkCmd} {
		c.Flags().StringVar(&binDir, "bin-dir", "", "directory for the symlinks (default: legacy.bin_dir, then ~/.local/bin)")
	}
	Cmd.AddCommand(linkCmd, unlinkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Create symlinks named after the legacy commands",
	Long: `Create a symlink to the running ci binary for every legacy command name.
Invoking ci through one of them runs the mapped command. Existing files are
left untouched.`,
	Example: `  ci legacy link
  ci legacy link --bin-dir ~/bin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		target, err := executable()
		if err != nil {
			return errors.NewSystemError(errors.Wrap(err, "locating the ci binary"), "")
		}
		return runLinkWithWriter(cmd.OutOrStdout(), resolveBinDir(binDir), target)
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the legacy command symlinks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runUnlinkWithWriter(cmd.OutOrStdout(), resolveBinDir(binDir))
	},
}

// resolveBinDir prefers the flag, then legacy.bin_dir, then the XDG bin
// directory.
func resolveBinDir(flag string) string {
	if flag != "" {
		return flag
	}
	if dir := config.Current().Legacy.BinDir; dir != "" {
		return dir
	}
	return paths.BinHome()
}

func runLinkWithWriter(w io.Writer, dir, target string) error {
	res, err := legacy.Link(dir, target)
	if err != nil {
		return errors.NewSystemError(err, "Check that "+dir+" is writable")
	}
	p := ui.NewPrinter(w, w)
	p.Success("Linked %d legacy commands in %s", len(res.Created), dir)
	if len(res.Skipped) > 0 {
		p.Warning("Skipped existing: %s", strings.Join(res.Skipped, ", "))
	}
	return nil
}

func runUnlinkWithWriter(w io.Writer, dir string) error {
	removed, err := legacy.Unlink(dir)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	p := ui.NewPrinter(w, w)
	if len(removed) == 0 {
		p.Info("No legacy symlinks in %s", dir)
		return nil
	}
	p.Success("Removed %d legacy symlinks from %s", len(removed), dir)
	return nil
}
