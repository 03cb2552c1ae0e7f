package agent

import "strings"

// ToolkitPlaceholder stands in for the toolkit path when it is not yet known.
const ToolkitPlaceholder = "[Will be set when the agent is loaded]"

// Extract builds the memory document for name from agents index content.
//
// The document starts with "# Agent Memory: <name>". The matching "### "
// heading is rewritten as a "## " heading and the lines under it are copied
// until the next "### " or "## " heading. A blank line followed by text gets
// one extra newline. The usage footer is always appended, so an unknown agent
// yields the header and footer only.
func Extract(content, name, toolkitPath string) string {
	var b strings.Builder
	b.WriteString("# Agent Memory: ")
	b.WriteString(name)
	b.WriteString("\n\n")

	lines := splitLines(content)
	found, collecting := false, false
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, entryPrefix):
			e, _ := parseEntry(line)
			if strings.EqualFold(e.Name, name) {
				found, collecting = true, true
				b.WriteString(sectionPrefix)
				b.WriteString(e.Heading)
				b.WriteString("\n\n")
				continue
			}
			if found {
				collecting = false
			}
		case strings.HasPrefix(line, sectionPrefix):
			if found {
				collecting = false
			}
		case collecting:
			b.WriteString(line)
			b.WriteByte('\n')
			if line == "" && i+1 < len(lines) && lines[i+1] != "" {
				b.WriteByte('\n')
			}
		}
	}

	writeFooter(&b, toolkitPath)
	return b.String()
}

func writeFooter(b *strings.Builder, toolkitPath string) {
	if toolkitPath == "" {
		toolkitPath = ToolkitPlaceholder
	}
	b.WriteString("\n\n## Agent Usage Instructions\n\n")
	b.WriteString("This agent has been loaded into the current Claude Code session.\n")
	b.WriteString("You can interact with it as usual, and the agent will have access to its own memory and capabilities.\n\n")
	b.WriteString("The agent has its own toolkit directory at:\n")
	b.WriteString("```\n")
	b.WriteString(toolkitPath)
	b.WriteString("\n```\n\n")
	b.WriteString("**IMPORTANT:** The agent will prioritize resources in its own toolkit before checking the parent repository.\n")
	b.WriteString("This allows the agent to operate with its own specialized tools and knowledge.\n")
}
