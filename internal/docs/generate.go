package docs

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

//go:embed templates
var templateFS embed.FS

// Theme selects the stylesheet palette.
type Theme string

// Supported themes.
const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Output file names.
const (
	IndexFile       = "index.html"
	InteractiveFile = "interactive.html"
	AgentsFile      = "agents.html"
	StyleFile       = "assets/style.css"
	BuilderFile     = "command-builder.js"
	VisualizerFile  = "agent-visualizer.js"
	ReferenceDir    = "reference"
)

// ParseTheme validates a --theme value.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeAuto, ThemeLight, ThemeDark:
		return t, nil
	case "":
		return ThemeAuto, nil
	}
	return "", errors.WithDetailf(
		errors.Wrapf(errors.ErrInvalidValue, "unknown theme %q", s),
		"Valid options: auto, light, dark")
}

var palettes = map[Theme]map[string]string{
	ThemeLight: {
		"bg": "#ffffff", "fg": "#1f2328", "muted": "#656d76",
		"accent": "#0969da", "panel": "#f6f8fa", "border": "#d0d7de",
	},
	ThemeDark: {
		"bg": "#0d1117", "fg": "#e6edf3", "muted": "#8d96a0",
		"accent": "#4493f8", "panel": "#161b22", "border": "#30363d",
	},
}

// page is the data passed to every HTML template.
type page struct {
	Title       string
	Site        *Site
	Data        *Site
	AssetPrefix string
	InlineCSS   htmltemplate.CSS
	BuilderJS   htmltemplate.JS
}

// Generator renders documentation for a command tree.
type Generator struct {
	Root    *cobra.Command
	Agents  []Agent
	Version string
	Now     func() time.Time

	html *htmltemplate.Template
	css  *template.Template
}

// NewGenerator parses the embedded templates.
func NewGenerator(root *cobra.Command, agents []Agent, version string) (*Generator, error) {
	html, err := htmltemplate.New("docs").Funcs(sprig.HtmlFuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing page templates")
	}
	css, err := template.New("style.css.tmpl").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/style.css.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "parsing stylesheet template")
	}
	return &Generator{
		Root:    root,
		Agents:  agents,
		Version: version,
		Now:     time.Now,
		html:    html,
		css:     css,
	}, nil
}

// Site builds the render data.
func (g *Generator) Site(theme Theme) *Site {
	agents := g.Agents
	if agents == nil {
		agents = []Agent{}
	}
	return &Site{
		Title:     "Collaborative Intelligence",
		Version:   g.Version,
		Generated: g.Now(),
		Theme:     string(theme),
		Groups:    Groups(g.Root),
		Agents:    agents,
	}
}

// Stylesheet renders the CSS for site.
func (g *Generator) Stylesheet(site *Site) (string, error) {
	var buf bytes.Buffer
	err := g.css.Execute(&buf, map[string]any{
		"Site":     site,
		"Light":    palettes[ThemeLight],
		"Dark":     palettes[ThemeDark],
		"MaxWidth": 1200,
	})
	if err != nil {
		return "", errors.Wrap(err, "rendering stylesheet")
	}
	return buf.String(), nil
}

func (g *Generator) render(w io.Writer, name string, p page) error {
	if p.Data == nil {
		p.Data = p.Site
	}
	return errors.Wrapf(g.html.ExecuteTemplate(w, name, p), "rendering %s", name)
}

// Page renders one page with its stylesheet inlined, producing a single
// self-contained HTML document.
func (g *Generator) Page(w io.Writer, site *Site) error {
	css, err := g.Stylesheet(site)
	if err != nil {
		return err
	}
	return g.render(w, "index.html", page{
		Title:     "Command reference",
		Site:      site,
		InlineCSS: htmltemplate.CSS(css),
	})
}

// GenerateOptions selects the pages written by Generate.
type GenerateOptions struct {
	Interactive bool
	Agents      bool
	Theme       Theme
}

// Generate writes the static documentation site into dir and returns the
// files written, relative to dir.
func (g *Generator) Generate(dir string, opts GenerateOptions) ([]string, error) {
	site := g.Site(opts.Theme)
	site.Interactive = opts.Interactive
	site.AgentsPage = opts.Agents
	if !opts.Agents {
		site.Agents = []Agent{}
	}

	w := writer{dir: dir}
	w.page(g, IndexFile, page{Title: "Command reference", Site: site})
	if opts.Interactive {
		builder, err := templateFS.ReadFile("templates/" + BuilderFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading command builder")
		}
		w.page(g, InteractiveFile, page{Title: "Interactive", Site: site, BuilderJS: htmltemplate.JS(builder)})
	}
	if opts.Agents {
		w.page(g, AgentsFile, page{Title: "Agents", Site: site})
	}
	w.stylesheet(g, site)
	if w.err != nil {
		return nil, w.err
	}

	refs, err := g.Reference(filepath.Join(dir, ReferenceDir))
	if err != nil {
		return nil, err
	}
	for _, r := range refs {
		w.files = append(w.files, filepath.Join(ReferenceDir, r))
	}
	return w.files, nil
}

// AppOptions selects the sections of the single-page app.
type AppOptions struct {
	Interactive bool
	Examples    bool
	Visualizer  bool
}

// App writes the single-page documentation app into dir.
func (g *Generator) App(dir string, opts AppOptions) ([]string, error) {
	site := g.Site(ThemeAuto)
	site.Interactive = opts.Interactive
	site.Examples = opts.Examples
	site.Visualizer = opts.Visualizer
	site.App = true

	w := writer{dir: dir}
	w.render(IndexFile, func(out io.Writer) error {
		return g.render(out, "app.html", page{Title: "App", Site: site})
	})
	if opts.Interactive {
		w.static(BuilderFile)
	}
	if opts.Visualizer {
		w.static(VisualizerFile)
	}
	w.stylesheet(g, site)
	if w.err != nil {
		return nil, w.err
	}
	return w.files, nil
}

// Reference writes one markdown file per command with front matter, using
// cobra's markdown generator.
func (g *Generator) Reference(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating reference directory")
	}
	g.Root.DisableAutoGenTag = true
	if err := doc.GenMarkdownTreeCustom(g.Root, dir, filePrepender, linkHandler); err != nil {
		return nil, errors.Wrap(err, "generating markdown reference")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading reference directory")
	}
	var files []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".md" {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func filePrepender(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")
	return "---\ntitle: \"" + title + "\"\ndescription: \"Reference for " + title + "\"\n---\n\n"
}

func linkHandler(name string) string {
	return name
}

// writer collects the first error across a sequence of file writes.
type writer struct {
	dir   string
	files []string
	err   error
}

func (w *writer) render(name string, fn func(io.Writer) error) {
	if w.err != nil {
		return
	}
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		w.err = err
		return
	}
	w.write(name, buf.Bytes())
}

func (w *writer) write(name string, data []byte) {
	if w.err != nil {
		return
	}
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.err = errors.Wrapf(err, "creating directory for %s", name)
		return
	}
	if err := fileutil.AtomicWriteFile(path, data, fileutil.DefaultFilePerm); err != nil {
		w.err = errors.Wrapf(err, "writing %s", name)
		return
	}
	w.files = append(w.files, filepath.FromSlash(name))
}

func (w *writer) page(g *Generator, name string, p page) {
	w.render(name, func(out io.Writer) error { return g.render(out, name, p) })
}

func (w *writer) static(name string) {
	if w.err != nil {
		return
	}
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		w.err = errors.Wrapf(err, "reading %s", name)
		return
	}
	w.write(name, data)
}

func (w *writer) stylesheet(g *Generator, site *Site) {
	w.render(StyleFile, func(out io.Writer) error {
		css, err := g.Stylesheet(site)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, css)
		return err
	})
}
