package docs

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/logging"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// TempPageFile is the page name used outside a CI repository.
const TempPageFile = "ci_docs.html"

// PagePath returns where "docs serve" writes the page: the ci docs cache
// directory when temp is set, else CIPath/docs/cli/index.html.
func PagePath(ciPath string, temp bool) string {
	if temp || ciPath == "" {
		return filepath.Join(paths.DocsCacheDir(), TempPageFile)
	}
	return filepath.Join(paths.NewRepo(ciPath).DocsDir(), IndexFile)
}

// WritePage renders the self-contained page to path.
func (g *Generator) WritePage(path string, theme Theme) error {
	var buf bytes.Buffer
	if err := g.Page(&buf, g.Site(theme)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating docs directory")
	}
	return fileutil.AtomicWriteFile(path, buf.Bytes(), fileutil.DefaultFilePerm)
}

// Server serves a rendered page on localhost.
type Server struct {
	Port int
	// Page is the file served at "/".
	Page string
	// Regenerate, when set, rebuilds Page before each request for it.
	Regenerate func() error
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort("localhost", strconv.Itoa(s.Port))
}

// URL is the address shown to users.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/"
}

// Handler serves Page at "/" and 404s everything else.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		if s.Regenerate != nil {
			if err := s.Regenerate(); err != nil {
				logging.FromContext(r.Context()).Error("regenerating docs", "error", err)
				http.Error(w, "failed to regenerate documentation", http.StatusInternalServerError)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-store")
		http.ServeFile(w, r, s.Page)
	})
	return mux
}

// ListenAndServe serves until ctx is done. ready, when non-nil, is called
// once the listener is bound.
func (s *Server) ListenAndServe(ctx context.Context, ready func(url string)) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.Addr())
	}
	logger := logging.FromContext(ctx)
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Debug("docs server listening", slog.String("addr", ln.Addr().String()))
	if ready != nil {
		ready(s.URL())
	}

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving documentation")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "stopping documentation server")
	}
	return nil
}
