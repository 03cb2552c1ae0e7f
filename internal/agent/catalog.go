package agent

import (
	"sort"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

const (
	entryPrefix   = "### "
	sectionPrefix = "## "
	nameSeparator = " - "
)

// Entry is one "### Name - description" heading of the agents index.
type Entry struct {
	// Name is the heading text before the first " - ", trimmed.
	Name string

	// Description is the heading text after the first " - ", if any.
	Description string

	// Heading is the full heading text without the "### " prefix.
	Heading string
}

// Catalog is the parsed agents index (AGENTS.md).
type Catalog struct {
	content string
	entries []Entry
}

// ParseCatalog scans content for agent headings.
func ParseCatalog(content string) *Catalog {
	c := &Catalog{content: content}
	for _, line := range splitLines(content) {
		if e, ok := parseEntry(line); ok {
			c.entries = append(c.entries, e)
		}
	}
	return c
}

// LoadCatalog reads and parses the agents index at path.
func LoadCatalog(path string) (*Catalog, error) {
	content, err := fileutil.ReadString(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading agents index %s", path)
	}
	return ParseCatalog(content), nil
}

// Content returns the raw index text.
func (c *Catalog) Content() string { return c.content }

// Entries returns the headings in document order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Find returns the entry for name, compared case-insensitively.
func (c *Catalog) Find(name string) (Entry, bool) {
	for _, e := range c.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Exists reports whether name has a heading in the index.
func (c *Catalog) Exists(name string) bool {
	_, ok := c.Find(name)
	return ok
}

// List returns the agent names sorted.
func (c *Catalog) List() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Extract returns the memory document for name built from this index.
func (c *Catalog) Extract(name, toolkitPath string) string {
	return Extract(c.content, name, toolkitPath)
}

func parseEntry(line string) (Entry, bool) {
	if !strings.HasPrefix(line, entryPrefix) {
		return Entry{}, false
	}
	heading := strings.TrimSpace(strings.TrimPrefix(line, entryPrefix))
	name, desc, _ := strings.Cut(heading, nameSeparator)
	return Entry{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(desc),
		Heading:     heading,
	}, true
}

// splitLines splits on newlines, dropping a trailing empty line and any
// carriage returns.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
