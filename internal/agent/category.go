package agent

import "strings"

// GeneralCategory holds agents no keyword matches.
const GeneralCategory = "General"

// categoryKeywords are checked in order; the first category with a keyword
// contained in the lowercased agent name wins.
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{"Architecture", []string{"architect", "topology", "design", "system"}},
	{"Testing", []string{"test", "qa", "verif", "quality"}},
	{"Analysis", []string{"analy", "research", "audit", "insight", "data"}},
	{"Documentation", []string{"doc", "writer", "scribe", "librarian", "memory", "knowledge"}},
	{"Operations", []string{"ops", "deploy", "infra", "monitor", "release", "manager", "coordinator"}},
	{"Visualization", []string{"visual", "graph", "diagram"}},
	{"Development", []string{"develop", "engineer", "code", "program", "build", "debug", "refactor", "fix"}},
}

// Category classifies an agent by keywords in its name.
func Category(name string) string {
	lower := strings.ToLower(name)
	for _, c := range categoryKeywords {
		for _, k := range c.keywords {
			if strings.Contains(lower, k) {
				return c.name
			}
		}
	}
	return GeneralCategory
}

// Categories lists every category in display order, General last.
func Categories() []string {
	names := make([]string, 0, len(categoryKeywords)+1)
	for _, c := range categoryKeywords {
		names = append(names, c.name)
	}
	return append(names, GeneralCategory)
}

// Group buckets names by Category. Categories with no agents have no key.
func Group(names []string) map[string][]string {
	groups := map[string][]string{}
	for _, n := range names {
		c := Category(n)
		groups[c] = append(groups[c], n)
	}
	return groups
}
