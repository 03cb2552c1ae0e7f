package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

var agentsJSON bool

func init() {
	agentsCmd.Flags().BoolVar(&agentsJSON, "json", false, "print the scanned agent directories as JSON")
	rootCmd.AddCommand(agentsCmd)
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the available agents",
	Long: `Print the agent catalog of the CI repository.

The manager's AGENTS/Manager/AGENTS_FULL.md is shown when present, then
AGENTS.md. Without either, the AGENTS/ directory is scanned and each agent is
listed with the description from its README.`,
	Example: `  # Show the catalog
  ci agents

  # Scan agent directories as JSON
  ci agents --json

  See Also: ci load, ci agent list`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runAgentsWithWriter(c.OutOrStdout(), repo)
	},
}

func runAgentsWithWriter(w io.Writer, repo paths.Repo) error {
	if !agentsJSON {
		for _, path := range []string{repo.AgentsFull(), repo.AgentsIndex()} {
			content, err := fileutil.ReadString(path)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return errors.Wrapf(err, "reading %s", path)
			}
			fmt.Fprint(w, content)
			return nil
		}
	}

	agents, err := agent.Scan(repo.AgentsDir(), agent.ScanOptions{SkipManager: true})
	if err != nil {
		return errors.NewUserError(err, "Check --ci-path or CI_PATH points at a CollaborativeIntelligence checkout")
	}
	if agents == nil {
		agents = []agent.Agent{}
	}

	if agentsJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(agents), "encoding output")
	}

	p := ui.NewPrinter(w, w)
	p.Header("Available Agents")
	if len(agents) == 0 {
		p.Muted("No agents found in %s", repo.AgentsDir())
		return nil
	}
	for _, a := range agents {
		p.Printf("  %s\n", p.Style(ui.KeyStyle, a.Name))
		p.Muted("    %s", agent.Truncate(a.Description, agent.SummaryWidth))
	}
	p.Println()
	p.Muted("%d agents", len(agents))
	return nil
}
