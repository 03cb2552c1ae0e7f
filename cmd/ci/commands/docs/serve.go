package docs

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/docs"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	serveTemp  bool
	servePort  int
	serveOpen  bool
	serveWatch bool
	serveTheme string
)

func init() {
	serveCmd.Flags().BoolVarP(&serveTemp, "temp", "t", false, "write the page to the cache directory instead of the CI repository")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default: docs.port, 8080)")
	serveCmd.Flags().BoolVarP(&serveOpen, "open", "o", false, "open the page in the browser")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "regenerate the page on every request")
	serveCmd.Flags().StringVar(&serveTheme, "theme", "", "auto, light or dark (default: docs.theme)")
	Cmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the documentation on localhost",
	Long: `Render the documentation page and serve it on localhost until
interrupted.

The page is written to docs/cli/index.html in the CI repository, or to the
ci cache directory (~/.cache/ci/docs) with --temp or when no repository is
found. With --watch the
page is rebuilt on each request.`,
	Example: `  ci docs serve
  ci docs serve --temp --port 9000 --open`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		g, err := newGenerator(c)
		if err != nil {
			return err
		}
		t, err := theme(serveTheme)
		if err != nil {
			return err
		}
		port := servePort
		if port <= 0 {
			port = config.Current().Docs.Port
		}
		ciPath, _ := config.ResolveCIPath(flags.CIPath())
		srv := &docs.Server{Port: port, Page: docs.PagePath(ciPath, serveTemp)}
		return runServeWithWriter(c.Context(), c.OutOrStdout(), g, srv, t)
	},
}

func runServeWithWriter(ctx context.Context, w io.Writer, g *docs.Generator, srv *docs.Server, t docs.Theme) error {
	if err := g.WritePage(srv.Page, t); err != nil {
		return errors.Wrap(err, "writing documentation page")
	}
	if serveWatch {
		srv.Regenerate = func() error { return g.WritePage(srv.Page, t) }
	}

	p := ui.NewPrinter(w, w)
	p.Header("Documentation server")
	p.KeyValue("Page", srv.Page)
	p.KeyValue("Commands", g.Site(t).CommandCount())
	p.KeyValue("Watch", serveWatch)

	return srv.ListenAndServe(ctx, func(url string) {
		p.Success("Serving at %s", url)
		p.Muted("Press Ctrl+C to stop")
		if serveOpen {
			if err := proc.Open(ctx, runner, url); err != nil {
				p.Warning("Could not open browser: %v", err)
			}
		}
	})
}
