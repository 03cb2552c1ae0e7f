// Package ignore adds the standard ignore patterns to a .gitignore file.
package ignore

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// FileName is the ignore file written into the repository root.
const FileName = ".gitignore"

// Comments written around the added patterns.
const (
	Header    = "# Collaborative Intelligence - Generated .gitignore"
	Separator = "# Added by Collaborative Intelligence"
)

// Patterns are the entries every CI project ignores.
var Patterns = []string{
	// ci state
	".ci/",
	".ci-config.json",
	"CLAUDE.local.md",

	// environment
	".env",
	".env.local",
	".env.development.local",
	".env.test.local",
	".env.production.local",

	// secrets
	"*.pem",
	"*.key",
	"*.crt",

	// logs
	"logs/",
	"*.log",
	"npm-debug.log*",
	"yarn-debug.log*",
	"yarn-error.log*",

	// build output
	"dist/",
	"build/",
	"out/",

	// dependencies
	"node_modules/",
	"__pycache__/",
	"target/",
	"vendor/",

	// lock files
	"package-lock.json",
	"yarn.lock",
	"Cargo.lock",

	// OS
	".DS_Store",
	"Thumbs.db",

	// editors
	".idea/",
	".vscode/",
	"*.swp",
	"*.swo",
	".vim/",
	"*.sublime-workspace",

	// caches
	".cache/",
	".pytest_cache/",
	".eslintcache",
	".parcel-cache/",

	// python
	"*.py[cod]",
	"*$py.class",
	".Python",
	"env/",
	"venv/",
	"ENV/",
	"*.egg-info/",
	"*.egg",
}

// Result describes what Apply changed.
type Result struct {
	Path    string
	Created bool
	Added   []string
}

// Existing returns the non-comment, non-blank lines of content.
func Existing(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	return out
}

// Merge returns content with every missing pattern appended, and the
// patterns that were added. Missing content gets a header; existing content
// gets a separator comment. Nothing changes when all patterns are present.
func Merge(content string, exists bool, patterns []string) (string, []string) {
	have := Existing(content)
	var added []string
	for _, p := range patterns {
		if !slices.Contains(have, p) && !slices.Contains(added, p) {
			added = append(added, p)
		}
	}
	if len(added) == 0 {
		return content, nil
	}

	var b strings.Builder
	if exists {
		b.WriteString(content)
		if content != "" && !strings.HasSuffix(content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n" + Separator + "\n")
	} else {
		b.WriteString(Header + "\n\n")
	}
	for _, p := range added {
		b.WriteString(p + "\n")
	}
	return b.String(), added
}

// Apply merges Patterns into dir/.gitignore.
func Apply(dir string) (*Result, error) {
	return ApplyPatterns(dir, Patterns)
}

// ApplyPatterns merges patterns into dir/.gitignore.
func ApplyPatterns(dir string, patterns []string) (*Result, error) {
	path := filepath.Join(dir, FileName)
	res := &Result{Path: path}

	content, err := fileutil.ReadString(path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	updated, added := Merge(content, exists, patterns)
	if len(added) == 0 {
		return res, nil
	}
	if err := fileutil.AtomicWriteFile(path, []byte(updated), fileutil.DefaultFilePerm); err != nil {
		return nil, errors.Wrapf(err, "writing %s", path)
	}
	res.Created = !exists
	res.Added = added
	return res, nil
}
