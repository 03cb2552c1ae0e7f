package session

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	listAgent  string
	listStatus string
	listRecent int
	listJSON   bool
)

func init() {
	listCmd.Flags().StringVarP(&listAgent, "agent", "a", "", "only agents whose name contains this text")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only sessions with this status: active, completed or archived")
	listCmd.Flags().IntVarP(&listRecent, "recent", "n", 10, "show at most this many sessions (0 for all)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent sessions",
	Example: `  ci session list
  ci session list --agent athena --recent 25
  ci session list --status archived --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runListWithWriter(cmd.OutOrStdout(), repo)
	},
}

type listEntry struct {
	Agent   string  `json:"agent"`
	ID      string  `json:"id"`
	Status  string  `json:"status"`
	Started string  `json:"start_time"`
	Ended   *string `json:"end_time"`
	Context *string `json:"context"`
	Path    string  `json:"path"`
}

func parseStatus(s string) (string, error) {
	switch s {
	case "", agent.SessionActive, agent.SessionCompleted, agent.SessionArchived:
		return s, nil
	}
	return "", errors.NewUserError(
		errors.Wrapf(errors.ErrInvalidValue, "status %q", s),
		"Use active, completed or archived",
	)
}

func runListWithWriter(w io.Writer, repo paths.Repo) error {
	status, err := parseStatus(listStatus)
	if err != nil {
		return err
	}
	if listRecent < 0 {
		return errors.NewUserError(errors.Wrapf(errors.ErrInvalidValue, "--recent %d", listRecent), "Pass 0 to list every session")
	}
	records, err := agent.ListSessions(repo.AgentsDir(), listAgent)
	if err != nil {
		return errors.NewUserError(err, "Check --ci-path points at a CollaborativeIntelligence checkout")
	}

	var selected []agent.SessionRecord
	for _, r := range records {
		if status != "" && r.State() != status {
			continue
		}
		if listRecent > 0 && len(selected) == listRecent {
			break
		}
		selected = append(selected, r)
	}

	if listJSON {
		entries := make([]listEntry, 0, len(selected))
		for _, r := range selected {
			entries = append(entries, listEntry{
				Agent:   r.AgentName,
				ID:      r.ID,
				Status:  r.State(),
				Started: r.StartTime,
				Ended:   r.EndTime,
				Context: r.Context,
				Path:    r.Path,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding sessions")
	}

	p := ui.NewPrinter(w, w)
	if len(selected) == 0 {
		p.Muted("No sessions found")
		p.Muted("Sessions are recorded by: ci load <agent>")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tSESSION\tSTATUS\tSTARTED")
	for _, r := range selected {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.AgentName, r.ID, r.State(), started(r))
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing table")
	}
	p.Println()
	p.Muted("%s", english.Plural(len(selected), "session", ""))
	return nil
}

func started(r agent.SessionRecord) string {
	t := r.Started()
	if t.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(t, now(), "ago", "from now")
}
