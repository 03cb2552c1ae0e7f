package agent

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/project"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	listJSON        bool
	listEnabledOnly bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listEnabledOnly, "enabled-only", false, "Only list agents enabled in the current project")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents and their project status",
	Long: `List the agent directories of the CI repository.

When the working directory belongs to a project with a .ci-config.json, each
agent is marked enabled, disabled or available for that project.`,
	Example: `  # List all agents
  ci agent list

  # Only the agents active in this project
  ci agent list --enabled-only

  See Also:
    ci agent enable  - Enable an agent
    ci agent disable - Disable an agent`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		// A missing project config only hides the status column.
		_, cfg, _ := nearestProject()
		return runListWithWriter(cmd.OutOrStdout(), repo, cfg)
	},
}

// listEntry represents an agent in list output.
type listEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	Sessions    int    `json:"sessions"`
	Path        string `json:"path"`
}

// runListWithWriter allows injecting a writer for testing. cfg may be nil.
func runListWithWriter(w io.Writer, repo paths.Repo, cfg *project.Config) error {
	agents, err := agent.Scan(repo.AgentsDir(), agent.ScanOptions{SkipManager: true})
	if err != nil {
		return errors.NewUserError(err, "Check --ci-path or CI_PATH points at a CollaborativeIntelligence checkout")
	}
	if listEnabledOnly && cfg == nil {
		return errors.NewUserError(project.ErrNoConfig, "Run: ci config init")
	}

	entries := make([]listEntry, 0, len(agents))
	for _, a := range agents {
		e := listEntry{Name: a.Name, Description: a.Description, Sessions: a.Sessions, Path: a.Path}
		if cfg != nil {
			e.Status = cfg.AgentStatus(a.Name)
		}
		if listEnabledOnly && e.Status != project.StatusEnabled {
			continue
		}
		entries = append(entries, e)
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding output")
	}

	p := ui.NewPrinter(w, w)
	if len(entries) == 0 {
		p.Muted("No agents found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if cfg != nil {
		fmt.Fprintln(tw, "NAME\tSTATUS\tSESSIONS\tDESCRIPTION")
	} else {
		fmt.Fprintln(tw, "NAME\tSESSIONS\tDESCRIPTION")
	}
	for _, e := range entries {
		desc := agent.Truncate(e.Description, 60)
		if cfg != nil {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Name, e.Status, e.Sessions, desc)
		} else {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Name, e.Sessions, desc)
		}
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "flushing tabwriter")
	}
	fmt.Fprintln(w)
	p.Muted("%d agents", len(entries))
	return nil
}
