// Package legacy keeps the command names of the original CI shell tooling
// working. Each legacy name maps to a ci command; the mapping is reachable
// through "ci legacy run" and through symlinks named after legacy commands.
package legacy

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
)

var commandMap = map[string]string{
	"status":    "status",
	"init":      "init",
	"integrate": "integrate",
	"detach":    "detach",
	"verify":    "verify",
	"agents":    "agents",
	"load":      "load",
	"commit":    "commit",

	"push":              "deploy",
	"stage-commit":      "commit",
	"stage-commit-push": "deploy",
	"update-gitignore":  "ignore",
}

// ErrUnknown is returned for names that are not legacy commands.
var ErrUnknown = errors.New("unknown legacy command")

// Lookup returns the ci command for a legacy name.
func Lookup(name string) (string, bool) {
	cmd, ok := commandMap[name]
	return cmd, ok
}

// Names returns every legacy name, sorted.
func Names() []string {
	names := make([]string, 0, len(commandMap))
	for n := range commandMap {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Mapping pairs a legacy name with its ci command.
type Mapping struct {
	Legacy  string `json:"legacy"`
	Command string `json:"command"`
}

// Group is a titled set of mappings.
type Group struct {
	Title    string    `json:"title"`
	Icon     string    `json:"icon"`
	Mappings []Mapping `json:"mappings"`
}

func groupOf(name string) int {
	switch name {
	case "status", "agents", "load":
		return 0
	case "init", "integrate", "detach", "verify":
		return 1
	}
	return 2
}

// Groups returns the mappings grouped as basic, lifecycle and git.
func Groups() []Group {
	groups := []Group{
		{Title: "Basic Commands", Icon: "📋"},
		{Title: "Lifecycle Commands", Icon: "🔄"},
		{Title: "Git Commands", Icon: "🌿"},
	}
	for _, n := range Names() {
		g := &groups[groupOf(n)]
		g.Mappings = append(g.Mappings, Mapping{Legacy: n, Command: commandMap[n]})
	}
	return groups
}

// Resolve maps a legacy invocation to ci arguments. available reports
// whether a ci command exists in this build.
func Resolve(name string, args []string, available func(string) bool) ([]string, error) {
	cmd, ok := Lookup(name)
	if !ok {
		return nil, errors.NewUserError(
			errors.Wrapf(ErrUnknown, "%q", name),
			"Run 'ci legacy list' to see supported legacy commands")
	}
	if available != nil && !available(cmd) {
		return nil, errors.NewUserError(
			errors.Newf("legacy command %q maps to 'ci %s', which this build does not provide", name, cmd),
			"Run 'ci --help' to see available commands")
	}
	return append([]string{cmd}, args...), nil
}

// Run re-executes exe with the mapped command, attached to the process
// stdio. No shell is involved.
func Run(ctx context.Context, r proc.Runner, exe string, argv []string) error {
	return r.Run(ctx, proc.Cmd{
		Name:   exe,
		Args:   argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
}

// binaryName strips the directory and a Windows .exe suffix.
func binaryName(argv0 string) string {
	return strings.TrimSuffix(filepath.Base(argv0), ".exe")
}

// RewriteArgs turns an invocation through a legacy symlink into a ci
// invocation: ["push", "-f"] becomes ["push", "deploy", "-f"]. Any other
// argv is returned unchanged.
func RewriteArgs(argv []string) []string {
	if len(argv) == 0 {
		return argv
	}
	cmd, ok := Lookup(binaryName(argv[0]))
	if !ok {
		return argv
	}
	out := make([]string, 0, len(argv)+1)
	out = append(out, argv[0], cmd)
	return append(out, argv[1:]...)
}

// LinkResult lists what Link did.
type LinkResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// Link creates a symlink to target in binDir for every legacy name. Existing
// paths are skipped.
func Link(binDir, target string) (*LinkResult, error) {
	if _, err := os.Stat(target); err != nil {
		return nil, errors.Wrapf(err, "ci binary not found at %s", target)
	}
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", binDir)
	}
	res := &LinkResult{Created: []string{}, Skipped: []string{}}
	for _, n := range Names() {
		link := filepath.Join(binDir, n)
		if _, err := os.Lstat(link); err == nil {
			res.Skipped = append(res.Skipped, n)
			continue
		}
		if err := os.Symlink(target, link); err != nil {
			return res, errors.Wrapf(err, "linking %s", link)
		}
		res.Created = append(res.Created, n)
	}
	return res, nil
}

// Unlink removes the legacy symlinks from binDir. Regular files with legacy
// names are left alone.
func Unlink(binDir string) ([]string, error) {
	removed := []string{}
	for _, n := range Names() {
		link := filepath.Join(binDir, n)
		info, err := os.Lstat(link)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			continue
		}
		if err := os.Remove(link); err != nil {
			return removed, errors.Wrapf(err, "removing %s", link)
		}
		removed = append(removed, n)
	}
	return removed, nil
}
