// Package ui holds the lipgloss palette and print helpers shared by the ci
// commands. Output degrades to plain text when the writer is not a color
// capable terminal.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette.
var (
	Blue    = lipgloss.Color("#5DADE2")
	Cyan    = lipgloss.Color("#76D7C4")
	Green   = lipgloss.Color("#58D68D")
	Yellow  = lipgloss.Color("#F4D03F")
	Red     = lipgloss.Color("#EC7063")
	Magenta = lipgloss.Color("#E91E8C")
	Purple  = lipgloss.Color("#9B59B6")
	Gray    = lipgloss.Color("#AAB7B8")
	Dim     = lipgloss.Color("#5D6D7E")
	White   = lipgloss.Color("#FDFEFE")
)

// Text styles.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(Blue)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(Yellow)
	InfoStyle    = lipgloss.NewStyle().Foreground(Blue)
	MutedStyle   = lipgloss.NewStyle().Foreground(Gray)
	KeyStyle     = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	CodeStyle    = lipgloss.NewStyle().Foreground(Magenta)
)

// Box is the rounded panel used for summaries.
var Box = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Dim).
	Padding(0, 1)

// DefaultWidth is assumed when the terminal size is unknown.
const DefaultWidth = 80

// TerminalWidth returns the width of stdout, or DefaultWidth when stdout is
// not a terminal. COLUMNS overrides detection.
func TerminalWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return DefaultWidth
}

// Divider returns a horizontal rule of width cells.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("─", width)
}
