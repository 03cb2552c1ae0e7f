package visualize

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/thoreinstein/ci/internal/ui"
)

// headerWidth is the width of the title banner.
const headerWidth = 80

// barWidth is the longest value bar in cells.
const barWidth = 30

type termPalette struct {
	border lipgloss.Color
	title  lipgloss.Color
	label  lipgloss.Color
	bar    lipgloss.Color
}

var termPalettes = map[Theme]termPalette{
	ThemeDark:     {border: ui.Blue, title: ui.Cyan, label: ui.Cyan, bar: ui.Green},
	ThemeLight:    {border: ui.Green, title: ui.Yellow, label: ui.Green, bar: ui.Yellow},
	ThemeContrast: {border: ui.Magenta, title: ui.White, label: ui.Magenta, bar: ui.Magenta},
	ThemeTerminal: {border: ui.White, title: ui.White, label: ui.White, bar: ui.White},
}

// Terminal renders diagrams with lipgloss through a ui.Printer, so color
// follows the printer's terminal detection.
type Terminal struct {
	Printer *ui.Printer
	Theme   Theme
}

func (t *Terminal) style(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Render writes d.
func (t *Terminal) Render(d *Diagram) error {
	p := t.Printer
	pal, ok := termPalettes[t.Theme]
	if !ok {
		pal = termPalettes[ThemeDark]
	}
	out := p.Out()

	banner := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(pal.border).
		Bold(true).
		Foreground(pal.title).
		Width(headerWidth - 2).
		Align(lipgloss.Center)
	if p.Colored() {
		fmt.Fprintln(out, banner.Render(d.Title))
	} else {
		fmt.Fprintln(out, plainBanner(d.Title))
	}

	scale := d.MaxValue()
	for _, s := range d.Sections {
		fmt.Fprintln(out)
		rule := ui.Divider(3)
		fmt.Fprintf(out, "%s %s %s\n",
			p.Style(t.style(pal.border), rule),
			p.Style(t.style(pal.title).Bold(true), s.Title),
			p.Style(t.style(pal.border), ui.Divider(max(3, headerWidth-ansi.StringWidth(s.Title)-8))))
		if len(s.Items) == 0 {
			fmt.Fprintln(out, "  "+p.Style(ui.MutedStyle, "(none)"))
		}
		for _, it := range s.Items {
			t.item(out, pal, it, scale)
			t.children(out, pal, it.Children, "    ")
		}
	}
	return nil
}

func plainBanner(title string) string {
	inner := headerWidth - 2
	pad := max(0, inner-ansi.StringWidth(title))
	left := pad / 2
	return "╔" + strings.Repeat("═", inner) + "╗\n" +
		"║" + strings.Repeat(" ", left) + title + strings.Repeat(" ", pad-left) + "║\n" +
		"╚" + strings.Repeat("═", inner) + "╝"
}

func (t *Terminal) item(out io.Writer, pal termPalette, it Item, scale int) {
	p := t.Printer
	line := "  "
	if it.Icon != "" {
		line += it.Icon + " "
	}
	line += p.Style(t.style(pal.label).Bold(true), it.Label)
	if it.Detail != "" {
		line += " " + p.Style(ui.MutedStyle, it.Detail)
	}
	if it.Value > 0 && len(it.Children) == 0 {
		n := max(1, it.Value*barWidth/scale)
		line += " " + p.Style(t.style(pal.bar), strings.Repeat("█", n))
	}
	fmt.Fprintln(out, line)
}

func (t *Terminal) children(out io.Writer, pal termPalette, items []Item, indent string) {
	p := t.Printer
	for i, c := range items {
		branch, next := "├─ ", "│  "
		if i == len(items)-1 {
			branch, next = "└─ ", "   "
		}
		line := indent + p.Style(t.style(pal.border), branch) + c.Label
		if c.Detail != "" {
			line += p.Style(ui.MutedStyle, " - "+c.Detail)
		}
		fmt.Fprintln(out, line)
		t.children(out, pal, c.Children, indent+next)
	}
}
