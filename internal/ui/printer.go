package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thoreinstein/ci/internal/logging"
)

// Printer writes status lines such as "✓ Agent loaded".
// Errors go to a separate writer so scripts can capture stdout alone.
type Printer struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// NewPrinter returns a Printer writing to out and errOut, coloring only when
// out supports it.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut, color: logging.SupportsColor(out)}
}

// Stdout returns a Printer on os.Stdout and os.Stderr.
func Stdout() *Printer {
	return NewPrinter(os.Stdout, os.Stderr)
}

// Plain returns a Printer that never colors, writing everything to w.
func Plain(w io.Writer) *Printer {
	return &Printer{out: w, err: w}
}

// Out returns the standard output writer.
func (p *Printer) Out() io.Writer { return p.out }

// Colored reports whether output is styled.
func (p *Printer) Colored() bool { return p.color }

// Style renders s with style when coloring is enabled.
func (p *Printer) Style(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Success prints a "✓" line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.Style(SuccessStyle, "✓ "+fmt.Sprintf(format, args...)))
}

// Error prints a "✗" line to the error writer.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.err, p.Style(ErrorStyle, "✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a "!" line.
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.out, p.Style(WarningStyle, "! "+fmt.Sprintf(format, args...)))
}

// Info prints an "ℹ" line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.Style(InfoStyle, "ℹ "+fmt.Sprintf(format, args...)))
}

// Header prints a command title followed by a rule.
func (p *Printer) Header(title string) {
	fmt.Fprintln(p.out, p.Style(HeaderStyle, title))
	fmt.Fprintln(p.out, p.Style(MutedStyle, Divider(lipgloss.Width(title))))
}

// KeyValue prints "key: value" with the key highlighted.
func (p *Printer) KeyValue(key string, value any) {
	fmt.Fprintf(p.out, "%s %v\n", p.Style(KeyStyle, key+":"), value)
}

// Muted prints a dimmed line.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.out, p.Style(MutedStyle, fmt.Sprintf(format, args...)))
}

// Println writes an unstyled line.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Printf writes unstyled formatted text.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Panel prints title and lines inside the rounded Box. Without color the
// title is printed as is with lines indented below it.
func (p *Printer) Panel(title string, lines ...string) {
	if !p.color {
		fmt.Fprintln(p.out, title)
		for _, l := range lines {
			fmt.Fprintln(p.out, "  "+l)
		}
		return
	}
	body := TitleStyle.Render(title)
	if len(lines) > 0 {
		body += "\n" + strings.Join(lines, "\n")
	}
	fmt.Fprintln(p.out, Box.Render(body))
}
