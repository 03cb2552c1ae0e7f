package agent

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/thoreinstein/ci/pkg/frontmatter"
)

// NoDescription is shown for agents whose README yields no description.
const NoDescription = "No description available"

// SummaryWidth is the display width of descriptions in listings.
const SummaryWidth = 80

// OverviewLines caps the README lines shown by Overview.
const OverviewLines = 5

var rolePrefixes = []string{
	"- **Role**:", "**Role**:",
	"- **Expertise**:", "**Expertise**:",
}

type readmeMatter struct {
	Description string `yaml:"description"`
}

// Describe extracts a one-line description from README content.
//
// The frontmatter description wins. Otherwise the first text line after a
// "# " heading is used, skipping headings and "---" rules. A "**Role**:" or
// "**Expertise**:" line is the last resort. It returns "" when none match.
func Describe(content string) string {
	var matter readmeMatter
	body, err := frontmatter.Parse(strings.NewReader(content), &matter)
	if err != nil {
		body = []byte(content)
	}
	if d := strings.TrimSpace(matter.Description); d != "" {
		return d
	}

	lines := splitLines(string(body))
	for i, line := range lines {
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next == "" || strings.HasPrefix(next, "#") || strings.HasPrefix(next, "---") {
				continue
			}
			return next
		}
		break
	}

	for _, line := range lines {
		for _, prefix := range rolePrefixes {
			if rest, ok := strings.CutPrefix(line, prefix); ok {
				return strings.TrimSpace(rest)
			}
		}
	}
	return ""
}

// Summary is Describe truncated to SummaryWidth, with NoDescription as the
// fallback.
func Summary(content string) string {
	d := Describe(content)
	if d == "" {
		return NoDescription
	}
	return Truncate(d, SummaryWidth)
}

// Truncate shortens s to width display cells, ending in "..." when cut.
func Truncate(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "...")
}

// Overview returns the README lines between the title and the first "## "
// section, at most OverviewLines of them. more reports whether lines were
// left out.
func Overview(content string) (lines []string, more bool) {
	inBody := false
	for _, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			inBody = true
			continue
		}
		if !inBody {
			continue
		}
		if strings.HasPrefix(trimmed, "## ") {
			break
		}
		if trimmed == "" {
			continue
		}
		if len(lines) == OverviewLines {
			return lines, true
		}
		lines = append(lines, line)
	}
	return lines, false
}

// CountLines counts lines the way editors do: a trailing newline does not
// start a new line.
func CountLines(content string) int {
	return len(splitLines(content))
}
