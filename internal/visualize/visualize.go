// Package visualize draws diagrams of the ci command tree, the agent
// ecosystem, common workflows and the current project. Every view is built
// into a Diagram and rendered for the terminal, as an HTML page or as SVG.
package visualize

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
)

// View names a diagram.
type View string

// Views.
const (
	ViewOverview  View = "overview"
	ViewCommands  View = "commands"
	ViewAgents    View = "agents"
	ViewWorkflows View = "workflows"
	ViewProject   View = "project"
)

// Format selects the renderer.
type Format string

// Formats.
const (
	FormatTerminal Format = "terminal"
	FormatWeb      Format = "web"
	FormatSVG      Format = "svg"
)

// Ext returns the file extension written for f.
func (f Format) Ext() string {
	if f == FormatSVG {
		return "svg"
	}
	return "html"
}

// Theme selects the palette.
type Theme string

// Themes.
const (
	ThemeDark     Theme = "dark"
	ThemeLight    Theme = "light"
	ThemeContrast Theme = "contrast"
	ThemeTerminal Theme = "terminal"
)

func invalid(kind, value, valid string) error {
	return errors.WithDetailf(
		errors.Wrapf(errors.ErrInvalidValue, "unknown %s %q", kind, value),
		"Valid options: %s", valid)
}

// ParseFormat validates a --format value. Empty selects the terminal.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTerminal, nil
	case FormatTerminal, FormatWeb, FormatSVG:
		return f, nil
	}
	return "", invalid("format", s, "terminal, web, svg")
}

// ParseTheme validates a --theme value. Empty selects dark.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ThemeDark, nil
	case ThemeDark, ThemeLight, ThemeContrast, ThemeTerminal:
		return t, nil
	}
	return "", invalid("theme", s, "dark, light, contrast, terminal")
}

// Selection holds the raw output flags of a visualize command.
type Selection struct {
	Format string
	Theme  string
	Web    bool
	SVG    bool
	Dark   bool
	Light  bool
}

// Resolve applies the shortcut flags, which win over --format and --theme.
func (s Selection) Resolve() (Format, Theme, error) {
	format, err := ParseFormat(s.Format)
	if err != nil {
		return "", "", err
	}
	theme, err := ParseTheme(s.Theme)
	if err != nil {
		return "", "", err
	}
	switch {
	case s.Web:
		format = FormatWeb
	case s.SVG:
		format = FormatSVG
	}
	switch {
	case s.Dark:
		theme = ThemeDark
	case s.Light:
		theme = ThemeLight
	}
	return format, theme, nil
}

// OutputPath is where a web or SVG rendering of view is written:
// ci_<view>.<ext> in dir when save is set, else in the temp directory.
func OutputPath(view View, format Format, save bool, dir string) string {
	name := "ci_" + string(view) + "." + format.Ext()
	if !save {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name)
}
