// Package agent provides the "ci agent" commands for managing the agents of
// a CI repository and their enablement in the current project.
package agent

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/cli/prompt"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/project"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Replaceable in tests.
var (
	now   = time.Now
	getwd = os.Getwd
	pick  = prompt.Pick
)

// Cmd is the root agent command.
var Cmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage agents",
	Long: `Manage the agents of the CI repository.

Agents live under AGENTS/<Name>/ in the repository. Enabling and disabling an
agent changes the active_agents list of the nearest .ci-config.json, so the
choice is per project.`,
	Example: `  # List agents and their project status
  ci agent list

  # Show details for one agent
  ci agent info Athena

  # Start several agents side by side
  ci agent launch Athena Tester Architect

  See Also:
    ci agent list   - List agents
    ci agent create - Scaffold a new agent
    ci agent switch - Change the current agent
    ci load         - Load an agent into a session`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// requireAgent returns the toolkit directory of name or a not-found error.
func requireAgent(repo paths.Repo, name string) (string, error) {
	dir := repo.AgentDir(name)
	if !paths.IsDir(dir) {
		return "", errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "agent %q", name),
			"Use 'ci agent list' to see available agents",
		)
	}
	return dir, nil
}

// nearestProject loads the .ci-config.json governing the working directory.
func nearestProject() (string, *project.Config, error) {
	wd, err := getwd()
	if err != nil {
		return "", nil, errors.Wrap(err, "getting working directory")
	}
	path, cfg, err := project.FindNearest(wd)
	if err != nil {
		return "", nil, errors.NewUserError(err, "Run: ci config init")
	}
	return path, cfg, nil
}

// Choices lists the agents of repo for interactive selection. The AGENTS.md
// catalog is used when present, otherwise the agent directories.
func Choices(repo paths.Repo) ([]prompt.Choice, error) {
	if catalog, err := agent.LoadCatalog(repo.AgentsIndex()); err == nil && len(catalog.Entries()) > 0 {
		entries := catalog.Entries()
		choices := make([]prompt.Choice, 0, len(entries))
		for _, e := range entries {
			choices = append(choices, prompt.Choice{Name: e.Name, Description: e.Description})
		}
		sort.Slice(choices, func(i, j int) bool {
			return strings.ToLower(choices[i].Name) < strings.ToLower(choices[j].Name)
		})
		return choices, nil
	}

	agents, err := agent.Scan(repo.AgentsDir(), agent.ScanOptions{SkipManager: true})
	if err != nil {
		return nil, err
	}
	choices := make([]prompt.Choice, 0, len(agents))
	for _, a := range agents {
		choices = append(choices, prompt.Choice{Name: a.Name, Description: a.Description})
	}
	return choices, nil
}

// Pick opens the fuzzy finder over the agents of repo.
func Pick(repo paths.Repo, title string) (string, error) {
	choices, err := Choices(repo)
	if err != nil {
		return "", err
	}
	name, err := pick(title, choices)
	if errors.Is(err, prompt.ErrNoChoices) {
		return "", errors.NewUserError(err, "No agents found; check --ci-path")
	}
	return name, err
}

// readOptional returns the content of path, or "" when it does not exist.
func readOptional(path string) (string, error) {
	content, err := fileutil.ReadString(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	return content, errors.Wrapf(err, "reading %s", path)
}
