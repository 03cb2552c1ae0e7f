package visualize

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

//go:embed templates
var templateFS embed.FS

var webColors = map[Theme]map[string]template.CSS{
	ThemeDark: {
		"bg": "#0d1117", "fg": "#e6edf3", "muted": "#8d96a0", "accent": "#4493f8", "panel": "#161b22",
	},
	ThemeLight: {
		"bg": "#ffffff", "fg": "#1f2328", "muted": "#656d76", "accent": "#1a7f37", "panel": "#f6f8fa",
	},
	ThemeContrast: {
		"bg": "#000000", "fg": "#ffffff", "muted": "#d0d0d0", "accent": "#ff00ff", "panel": "#1a1a1a",
	},
	ThemeTerminal: {
		"bg": "#000000", "fg": "#00ff00", "muted": "#00aa00", "accent": "#00ff00", "panel": "#001100",
	},
}

// SVG layout.
const (
	svgWidth    = 1000
	svgMargin   = 40
	svgLine     = 22
	svgIndent   = 24
	svgBarX     = 640
	svgBarWidth = 300
)

// Row is one positioned line of an SVG diagram.
type Row struct {
	Kind   string
	X, Y   int
	Text   string
	Detail string
	Bar    int
	BarX   int
}

// Exporter renders diagrams as HTML pages or SVG images.
type Exporter struct {
	Theme Theme
	Now   func() time.Time

	tmpl *template.Template
}

// NewExporter parses the embedded templates.
func NewExporter(theme Theme) (*Exporter, error) {
	funcs := sprig.HtmlFuncMap()
	funcs["percent"] = func(v, scale int) int {
		if scale <= 0 {
			return 0
		}
		return max(1, v*100/scale)
	}
	tmpl, err := template.New("visualize").Funcs(funcs).ParseFS(templateFS, "templates/*")
	if err != nil {
		return nil, errors.Wrap(err, "parsing visualization templates")
	}
	return &Exporter{Theme: theme, Now: time.Now, tmpl: tmpl}, nil
}

func (e *Exporter) colors() map[string]template.CSS {
	if c, ok := webColors[e.Theme]; ok {
		return c
	}
	return webColors[ThemeDark]
}

// HTML writes d as a standalone page.
func (e *Exporter) HTML(w io.Writer, d *Diagram) error {
	err := e.tmpl.ExecuteTemplate(w, "page.html", map[string]any{
		"Diagram":   d,
		"Colors":    e.colors(),
		"Scale":     d.MaxValue(),
		"Generated": e.Now(),
	})
	return errors.Wrap(err, "rendering HTML visualization")
}

// Layout positions the lines of d for SVG output.
func Layout(d *Diagram) (rows []Row, height int) {
	y := svgMargin
	rows = append(rows, Row{Kind: "title", X: svgMargin, Y: y, Text: d.Title})
	y += svgLine * 2
	scale := d.MaxValue()

	var walk func(items []Item, depth int)
	walk = func(items []Item, depth int) {
		for _, it := range items {
			text := it.Label
			if it.Icon != "" {
				text = it.Icon + " " + text
			}
			r := Row{Kind: "item", X: svgMargin + depth*svgIndent, Y: y, Text: text, Detail: it.Detail}
			if it.Value > 0 && depth == 0 {
				r.Bar = max(4, it.Value*svgBarWidth/scale)
				r.BarX = svgBarX
			}
			rows = append(rows, r)
			y += svgLine
			walk(it.Children, depth+1)
		}
	}
	for _, s := range d.Sections {
		y += svgLine / 2
		rows = append(rows, Row{Kind: "section", X: svgMargin, Y: y, Text: s.Title})
		y += svgLine + svgLine/2
		walk(s.Items, 0)
	}
	return rows, y + svgMargin
}

// SVG writes d as an SVG image.
func (e *Exporter) SVG(w io.Writer, d *Diagram) error {
	rows, height := Layout(d)
	err := e.tmpl.ExecuteTemplate(w, "diagram.svg", map[string]any{
		"Width":  svgWidth,
		"Height": height,
		"Rows":   rows,
		"Colors": e.colors(),
	})
	return errors.Wrap(err, "rendering SVG visualization")
}

// WriteFile renders d in format to path.
func (e *Exporter) WriteFile(path string, format Format, d *Diagram) error {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatSVG:
		err = e.SVG(&buf, d)
	case FormatWeb:
		err = e.HTML(&buf, d)
	default:
		return errors.Wrapf(errors.ErrInvalidValue, "format %s is not written to a file", format)
	}
	if err != nil {
		return err
	}
	return errors.Wrapf(fileutil.AtomicWriteFile(path, buf.Bytes(), fileutil.DefaultFilePerm), "writing %s", path)
}
