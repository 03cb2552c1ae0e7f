package web

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/ui"
)

var openDev bool

func init() {
	openCmd.Flags().BoolVar(&openDev, "dev", false, "run the development server (the default)")
	Cmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Start the portal development server",
	Long:  `Run "npm start" in the web directory. Blocks until the server exits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := findDir()
		if err != nil {
			return err
		}
		return runOpenWithWriter(cmd.Context(), cmd.OutOrStdout(), dir)
	},
}

func runOpenWithWriter(ctx context.Context, w io.Writer, dir string) error {
	p, err := portal(dir)
	if err != nil {
		return err
	}
	pr := ui.NewPrinter(w, w)
	pr.Info("Starting development server in %s", dir)
	pr.Muted("Press Ctrl+C to stop")
	pr.Println()
	p.Stdout, p.Stderr = w, w
	return p.Start(ctx)
}
