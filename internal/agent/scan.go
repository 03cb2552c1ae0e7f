package agent

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Well-known files inside an agent directory.
const (
	ReadmeFile   = "README.md"
	MemoryFile   = "MEMORY.md"
	LearningFile = "ContinuousLearning.md"
	MetadataFile = "metadata.json"

	// SessionDirsName holds one directory per recorded session.
	SessionDirsName = "Sessions"

	// SessionLogsName holds the JSON session records written by load.
	SessionLogsName = "sessions"
)

// Agent describes one directory under AGENTS/.
type Agent struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
	HasReadme   bool   `json:"has_readme"`
	Sessions    int    `json:"sessions"`
}

// ScanOptions tune Scan.
type ScanOptions struct {
	// SkipManager leaves out the Manager directory.
	SkipManager bool

	// RequireReadme leaves out directories without a README.md.
	RequireReadme bool
}

// Scan lists agent directories under dir sorted by name. Hidden directories
// are always skipped.
func Scan(dir string, opts ScanOptions) ([]Agent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading agents directory %s", dir)
	}

	var agents []Agent
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if opts.SkipManager && name == paths.ManagerAgent {
			continue
		}
		a, err := Inspect(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if opts.RequireReadme && !a.HasReadme {
			continue
		}
		agents = append(agents, *a)
	}

	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	return agents, nil
}

// Inspect reads the README and session records of a single agent directory.
func Inspect(dir string) (*Agent, error) {
	a := &Agent{
		Name:        filepath.Base(dir),
		Path:        dir,
		Description: NoDescription,
	}
	content, err := fileutil.ReadString(filepath.Join(dir, ReadmeFile))
	switch {
	case err == nil:
		a.HasReadme = true
		a.Description = Summary(content)
	case !errors.Is(err, os.ErrNotExist):
		return nil, errors.Wrapf(err, "reading README for %s", a.Name)
	}
	a.Sessions = len(Sessions(dir))
	return a, nil
}

// Sessions returns the recorded session names of an agent, newest first.
// Directories under Sessions/ and JSON records under sessions/ both count.
// Names are deduplicated, so case-insensitive filesystems that merge the two
// directories do not count a session twice.
func Sessions(agentDir string) []string {
	seen := map[string]bool{}
	var names []string
	for _, sub := range []string{SessionDirsName, SessionLogsName} {
		entries, err := os.ReadDir(filepath.Join(agentDir, sub))
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			switch {
			case e.IsDir():
			case strings.HasSuffix(name, ".json"):
				name = strings.TrimSuffix(name, ".json")
			default:
				continue
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}
