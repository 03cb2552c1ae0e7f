package doctor

import (
	"fmt"
	"os"
	"strings"

	"github.com/thoreinstein/ci/internal/agent"
	agentvalidator "github.com/thoreinstein/ci/internal/agent/validator"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/project"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Check categories.
const (
	CategoryRepository = "repository"
	CategoryProject    = "project"
	CategoryTools      = "tools"
)

// CIPathCheck reports the outcome of CI repository discovery.
func CIPathCheck(root string, resolveErr error) Check {
	return NewFunc("ci-path", CategoryRepository, func() *CheckResult {
		if resolveErr != nil {
			return &CheckResult{
				Status:  SeverityError,
				Message: resolveErr.Error(),
				FixHint: "Set CI_PATH or pass --ci-path to point at your CollaborativeIntelligence checkout",
			}
		}
		return &CheckResult{
			Status:  SeverityPass,
			Message: "CI repository found at " + root,
			Details: map[string]any{"path": root},
		}
	})
}

// AgentsDirCheck verifies AGENTS/ exists and counts the agent directories.
func AgentsDirCheck(repo paths.Repo) Check {
	return NewFunc("agents-dir", CategoryRepository, func() *CheckResult {
		dir := repo.AgentsDir()
		agents, err := agent.Scan(dir, agent.ScanOptions{SkipManager: true})
		if err != nil {
			return &CheckResult{
				Status:  SeverityError,
				Message: "agents directory not readable: " + dir,
				Details: map[string]any{"error": err.Error()},
				FixHint: "Check that the CI repository checkout is complete",
			}
		}
		var broken []string
		v := agentvalidator.New(false)
		for _, a := range agents {
			if res, err := v.Validate(a.Path); err != nil || !res.Valid {
				broken = append(broken, a.Name)
			}
		}
		if len(broken) > 0 {
			return &CheckResult{
				Status:  SeverityWarning,
				Message: fmt.Sprintf("%d of %d agents have problems: %s", len(broken), len(agents), strings.Join(broken, ", ")),
				Details: map[string]any{"count": len(agents), "broken": broken},
				FixHint: "Run: ci agent info <name>",
			}
		}
		return &CheckResult{
			Status:  SeverityPass,
			Message: fmt.Sprintf("%d agent directories in %s", len(agents), dir),
			Details: map[string]any{"count": len(agents)},
		}
	})
}

// AgentsIndexCheck verifies AGENTS.md exists and lists at least one agent.
func AgentsIndexCheck(repo paths.Repo) Check {
	return NewFunc("agents-index", CategoryRepository, func() *CheckResult {
		path := repo.AgentsIndex()
		catalog, err := agent.LoadCatalog(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return &CheckResult{
				Status:  SeverityWarning,
				Message: paths.AgentsIndexFile + " not found",
				FixHint: "Agents still load from AGENTS/<name>/<name>.md",
			}
		case err != nil:
			return &CheckResult{Status: SeverityError, Message: err.Error()}
		}
		n := len(catalog.Entries())
		if n == 0 {
			return &CheckResult{
				Status:  SeverityWarning,
				Message: paths.AgentsIndexFile + " has no \"### Name\" agent headings",
			}
		}
		return &CheckResult{
			Status:  SeverityPass,
			Message: fmt.Sprintf("%s lists %d agents", paths.AgentsIndexFile, n),
			Details: map[string]any{"count": n},
		}
	})
}

// ProjectConfigCheck validates the nearest .ci-config.json above dir against
// the schema. A missing file is informational.
func ProjectConfigCheck(dir string) Check {
	return NewFunc("project-config", CategoryProject, func() *CheckResult {
		path, err := project.FindNearestPath(dir)
		if err != nil {
			return &CheckResult{
				Status:  SeverityInfo,
				Message: "no " + project.FileName + " found",
				FixHint: "Run: ci config init",
			}
		}
		content, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			return &CheckResult{Status: SeverityError, Message: err.Error()}
		}
		res, err := project.Validate(path, content)
		if err != nil {
			return &CheckResult{Status: SeverityError, Message: err.Error()}
		}
		if !res.Valid {
			problems := make([]string, 0, len(res.Issues))
			for _, e := range res.Errors() {
				problems = append(problems, e.Field+": "+e.Message)
			}
			return &CheckResult{
				Status:  SeverityError,
				Message: fmt.Sprintf("%s does not match the schema (%d problems)", path, len(problems)),
				Details: map[string]any{"path": path, "errors": problems},
				FixHint: "Run: ci config validate " + path,
			}
		}
		if w := res.Warnings(); len(w) > 0 {
			return &CheckResult{
				Status:  SeverityWarning,
				Message: path + ": " + w[0].Message,
				Details: map[string]any{"path": path},
				FixHint: "Run: ci agent enable <name>",
			}
		}
		return &CheckResult{
			Status:  SeverityPass,
			Message: path + " is valid",
			Details: map[string]any{"path": path},
		}
	})
}

// ToolCheck reports whether program is on PATH. Missing programs are
// reported with missing severity.
func ToolCheck(r proc.Runner, program, hint string, missing Severity) Check {
	return NewFunc("tool-"+program, CategoryTools, func() *CheckResult {
		path, err := r.LookPath(program)
		if err != nil {
			return &CheckResult{
				Status:  missing,
				Message: program + " not found on PATH",
				FixHint: hint,
			}
		}
		return &CheckResult{
			Status:  SeverityPass,
			Message: program + " found",
			Details: map[string]any{"path": path},
		}
	})
}
