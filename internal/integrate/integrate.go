// Package integrate wires a project into the CollaborativeIntelligence
// system through its CLAUDE.md file.
//
// Standalone integration replaces CLAUDE.md with a CI-managed file and keeps
// the previous one as CLAUDE.md.bak. Override integration leaves CLAUDE.md in
// place, adds a load directive pointing at CLAUDE.i.md and writes that file
// with a reference to the CI repository. Both record the integration type in
// .ci-config.json and update .gitignore.
package integrate

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/ignore"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/project"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Files managed by integration.
const (
	ClaudeFile   = "CLAUDE.md"
	OverrideFile = "CLAUDE.i.md"
	BackupSuffix = ".bak"
)

// Directive lines added to CLAUDE.md by override integration.
const (
	DirectiveHeader = "# Load CI Configuration"
	Directive       = "_CI.load('CLAUDE.i.md')_"
)

const stampLayout = "2006-01-02 15:04:05"

// ErrNotOverride is returned by Detach for projects without CLAUDE.i.md.
var ErrNotOverride = errors.New("project does not use override integration")

// Options controls Integrate.
type Options struct {
	// Type is standalone or override. Empty selects standalone.
	Type string

	// Agents replaces the active agents. Nil keeps the configured agents, or
	// the defaults for a new configuration.
	Agents []string

	FastActivation bool

	// CIPath is the CI repository referenced by CLAUDE.i.md. Required for
	// override integration.
	CIPath string

	// Version is stamped into a new .ci-config.json.
	Version string

	Now time.Time
}

// Result lists the files Integrate touched.
type Result struct {
	Dir     string
	Type    string
	Agents  []string
	Created []string
	Updated []string
	Backup  string
	Ignore  *ignore.Result
}

// ParseType normalizes an integration type name.
func ParseType(s string) (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(s)); t {
	case "", project.IntegrationStandalone:
		return project.IntegrationStandalone, nil
	case project.IntegrationOverride:
		return t, nil
	}
	return "", errors.Wrapf(errors.ErrInvalidValue, "integration type %q (valid: %s, %s)",
		s, project.IntegrationStandalone, project.IntegrationOverride)
}

// Integrate sets up dir for the requested integration type.
func Integrate(dir string, opts Options) (*Result, error) {
	kind, err := ParseType(opts.Type)
	if err != nil {
		return nil, err
	}
	if !paths.IsDir(dir) {
		return nil, errors.Wrapf(errors.ErrNotFound, "target directory %s", dir)
	}
	if kind == project.IntegrationOverride && opts.CIPath == "" {
		return nil, errors.Wrap(errors.ErrInvalidValue, "override integration needs the CI repository path")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	res := &Result{Dir: dir, Type: kind}
	cfgPath := filepath.Join(dir, project.FileName)
	cfg, cfgExists, err := loadOrNew(cfgPath, filepath.Base(dir), opts)
	if err != nil {
		return nil, err
	}
	if opts.Agents != nil {
		cfg.ActiveAgents = opts.Agents
	}
	cfg.FastActivation = opts.FastActivation
	cfg.SetMetadata(project.KeyIntegrationType, kind)
	res.Agents = cfg.ActiveAgents

	if kind == project.IntegrationOverride {
		err = integrateOverride(res, cfg.ProjectName, opts)
	} else {
		err = integrateStandalone(res, cfg, opts)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Save(cfgPath); err != nil {
		return nil, err
	}
	if cfgExists {
		res.Updated = append(res.Updated, cfgPath)
	} else {
		res.Created = append(res.Created, cfgPath)
	}

	patterns := ignore.Patterns
	if kind == project.IntegrationOverride {
		patterns = append(slices.Clone(patterns), OverrideFile+BackupSuffix)
	}
	if res.Ignore, err = ignore.ApplyPatterns(dir, patterns); err != nil {
		return nil, err
	}
	return res, nil
}

func loadOrNew(path, name string, opts Options) (*project.Config, bool, error) {
	if paths.Exists(path) {
		cfg, err := project.Load(path)
		return cfg, true, err
	}
	return project.New(name, opts.Version, opts.Agents, opts.FastActivation), false, nil
}

func integrateStandalone(res *Result, cfg *project.Config, opts Options) error {
	path := filepath.Join(res.Dir, ClaudeFile)
	if paths.Exists(path) {
		backup := path + BackupSuffix
		if err := os.Rename(path, backup); err != nil {
			return errors.Wrapf(err, "backing up %s", path)
		}
		res.Backup = backup
	}
	if err := write(path, StandaloneContent(cfg.ProjectName, cfg.ActiveAgents, opts.Now)); err != nil {
		return err
	}
	res.Created = append(res.Created, path)
	return nil
}

func integrateOverride(res *Result, name string, opts Options) error {
	path := filepath.Join(res.Dir, ClaudeFile)
	content, err := fileutil.ReadString(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := write(path, OverrideClaudeContent(name, opts.Now)); err != nil {
			return err
		}
		res.Created = append(res.Created, path)
	case err != nil:
		return errors.Wrapf(err, "reading %s", path)
	default:
		if updated, changed := AddDirective(content); changed {
			if err := write(path, updated); err != nil {
				return err
			}
			res.Updated = append(res.Updated, path)
		}
	}

	override := filepath.Join(res.Dir, OverrideFile)
	if err := write(override, OverrideContent(name, opts.CIPath, opts.Now)); err != nil {
		return err
	}
	res.Created = append(res.Created, override)
	return nil
}

func write(path, content string) error {
	return errors.Wrapf(
		fileutil.AtomicWriteFile(path, []byte(content), fileutil.DefaultFilePerm),
		"writing %s", path)
}

// StandaloneContent is the CLAUDE.md written by standalone integration.
func StandaloneContent(name string, agents []string, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Project: %s\n# Created: %s\n# Integration: Standalone\n\n", name, at.Format(stampLayout))
	b.WriteString("# Collaborative Intelligence Configuration\n")
	b.WriteString("This project uses the CI tool in standalone mode. Directives are processed\n")
	b.WriteString("by ci itself; no CollaborativeIntelligence checkout is referenced.\n\n")
	fmt.Fprintf(&b, "_CI.config('project_name', '%s')_\n", name)
	fmt.Fprintf(&b, "_CI.config('integration_type', '%s')_\n\n", project.IntegrationStandalone)
	b.WriteString("## Active Agents\n")
	for _, a := range agents {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	return b.String()
}

// OverrideClaudeContent is the CLAUDE.md created by override integration
// when the project has none.
func OverrideClaudeContent(name string, at time.Time) string {
	return fmt.Sprintf("# Project: %s\n# Created: %s\n\n%s\n%s\n\n# Project Information\nAdd your project-specific information here.\n",
		name, at.Format(stampLayout), DirectiveHeader, Directive)
}

// OverrideContent is the CLAUDE.i.md written by override integration.
func OverrideContent(name, ciPath string, at time.Time) string {
	return fmt.Sprintf(`# CI Integration: %s
# Integrated: %s

# Load CollaborativeIntelligence System
When starting, immediately:
1. Load %s
2. Use this as the primary configuration source
3. Defer all project management functions to the CollaborativeIntelligence system
`, name, at.Format(stampLayout), filepath.Join(ciPath, ClaudeFile))
}

func splitLines(content string) []string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// AddDirective inserts the load directive after the leading heading block of
// content. It reports false when the directive is already present.
func AddDirective(content string) (string, bool) {
	if strings.Contains(content, Directive) {
		return content, false
	}
	lines := splitLines(content)
	i := 0
	for i < len(lines) && (lines[i] == "" || strings.HasPrefix(lines[i], "#")) {
		i++
	}
	if i == len(lines) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, DirectiveHeader, Directive)
	} else {
		lines = slices.Insert(lines, i, DirectiveHeader, Directive, "")
	}
	return strings.Join(lines, "\n") + "\n", true
}

// RemoveDirective drops the directive and its heading from content. It
// reports false when there was nothing to remove.
func RemoveDirective(content string) (string, bool) {
	if !strings.Contains(content, Directive) {
		return content, false
	}
	lines := splitLines(content)
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		switch {
		case lines[i] == DirectiveHeader && i+1 < len(lines) && lines[i+1] == Directive:
			i++
		case lines[i] == Directive:
		default:
			out = append(out, lines[i])
			continue
		}
		// Collapse the blank line that separated the directive block.
		if i+1 < len(lines) && lines[i+1] == "" && (len(out) == 0 || out[len(out)-1] == "") {
			i++
		}
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n", true
}

// DetachResult describes what Detach changed.
type DetachResult struct {
	ClaudePath string
	Backup     string
}

// Detach removes the override directive from CLAUDE.md and renames
// CLAUDE.i.md to CLAUDE.i.md.bak. .ci-config.json is kept.
func Detach(dir string) (*DetachResult, error) {
	override := filepath.Join(dir, OverrideFile)
	if !paths.Exists(override) {
		return nil, errors.Wrapf(ErrNotOverride, "%s not found", override)
	}
	path := filepath.Join(dir, ClaudeFile)
	content, err := fileutil.ReadString(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	if updated, changed := RemoveDirective(content); changed {
		if err := write(path, updated); err != nil {
			return nil, err
		}
	}
	backup := override + BackupSuffix
	if err := os.Rename(override, backup); err != nil {
		return nil, errors.Wrapf(err, "renaming %s", override)
	}
	return &DetachResult{ClaudePath: path, Backup: backup}, nil
}
