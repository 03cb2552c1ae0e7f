package listing

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/thoreinstein/ci/internal/ui"
)

const (
	columnSeparator = " │ "
	minColumnWidth  = 20
)

// Layout renders groups into two columns.
type Layout struct {
	// Width is the terminal width; zero means ui.DefaultWidth.
	Width int

	// Style colors text. Nil renders plain text.
	Style func(lipgloss.Style, string) string
}

// ColumnWidth is the width of each column.
func (l Layout) ColumnWidth() int {
	w := l.Width
	if w <= 0 {
		w = ui.DefaultWidth
	}
	cw := (w - ansi.StringWidth(columnSeparator)) / 2
	if cw < minColumnWidth {
		cw = minColumnWidth
	}
	return cw
}

func (l Layout) style(s lipgloss.Style, text string) string {
	if l.Style == nil {
		return text
	}
	return l.Style(s, text)
}

// Block renders one group: a heading, a rule, then its entries.
func (l Layout) Block(g Group) []string {
	cw := l.ColumnWidth()
	color := g.Kind.Color()
	heading := lipgloss.NewStyle().Bold(true).Foreground(color)
	muted := lipgloss.NewStyle().Foreground(ui.Gray)

	lines := []string{
		l.style(heading, g.Kind.Icon()+" "+strings.ToUpper(g.Kind.Name())) + " " +
			l.style(muted, "("+strconv.Itoa(len(g.Entries))+")"),
		"  " + l.style(lipgloss.NewStyle().Foreground(color).Faint(true), strings.Repeat(kinds[g.Kind].rule, max(cw-4, 0))),
	}

	nameWidth := max(cw-12, 1)
	for _, sg := range Subgroups(g.Entries) {
		titled := sg.Name != "" && len(sg.Entries) < len(g.Entries)
		if titled {
			lines = append(lines, "  "+l.style(muted, "▸ "+sg.Name))
		}
		for _, e := range sg.Entries {
			size := FormatSize(e.Size)
			pre := prefix(e.Name)
			nameStyle := lipgloss.NewStyle().Foreground(color)
			if e.IsDir {
				size = FormatItems(e.Items)
				pre = "📁 "
				nameStyle = lipgloss.NewStyle().Foreground(ui.Blue)
			}
			name := ansi.Truncate(e.Name, nameWidth, "…")
			lines = append(lines, "  "+l.style(muted, size)+" "+pre+l.style(nameStyle, name))
		}
		if titled {
			lines = append(lines, "")
		}
	}
	return lines
}

// Columns assigns each block whole to the shorter column, pads both to the
// same height and joins them row by row.
func (l Layout) Columns(blocks [][]string) []string {
	var left, right []string
	for i, b := range blocks {
		if i < len(blocks)-1 {
			b = append(b, "")
		}
		if len(left) <= len(right) {
			left = append(left, b...)
		} else {
			right = append(right, b...)
		}
	}
	for len(left) < len(right) {
		left = append(left, "")
	}
	for len(right) < len(left) {
		right = append(right, "")
	}

	cw := l.ColumnWidth()
	rows := make([]string, len(left))
	for i := range left {
		rows[i] = Fit(left[i], cw) + columnSeparator + Fit(right[i], cw)
	}
	return rows
}

// Render lays out all groups.
func (l Layout) Render(groups []Group) []string {
	blocks := make([][]string, 0, len(groups))
	for _, g := range groups {
		if len(g.Entries) > 0 {
			blocks = append(blocks, l.Block(g))
		}
	}
	if len(blocks) == 0 {
		return nil
	}
	return l.Columns(blocks)
}

// Fit pads or truncates s to exactly width cells, ignoring escape sequences.
func Fit(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		s = ansi.Truncate(s, width, "…")
		w = ansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
