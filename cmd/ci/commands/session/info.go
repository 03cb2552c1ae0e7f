package session

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <agent> <session>",
	Short: "Show one session record",
	Example: `  ci session info Athena 1778051289

  See Also:
    ci session list - Find session IDs`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runInfoWithWriter(cmd.OutOrStdout(), repo, args[0], args[1])
	},
}

func runInfoWithWriter(w io.Writer, repo paths.Repo, name, id string) error {
	rec, err := findSession(repo, name, id)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(w, w)
	p.Header("Session: " + rec.ID)
	p.KeyValue("Agent", rec.AgentName)
	p.KeyValue("Status", p.Style(stateStyle(rec.State()), rec.State()))
	if t := rec.Started(); !t.IsZero() {
		p.KeyValue("Started", t.Format("2006-01-02 15:04:05 MST")+" ("+started(*rec)+")")
	}
	if rec.EndTime != nil {
		p.KeyValue("Ended", *rec.EndTime)
	}
	if rec.Context != nil {
		p.KeyValue("Context", *rec.Context)
	}
	if rec.OutputPath != nil {
		p.KeyValue("Output", *rec.OutputPath)
	}
	p.KeyValue("Path", rec.Path)
	p.KeyValue("Size", humanize.IBytes(uint64(rec.Size)))
	if rec.Invalid {
		p.Println()
		p.Warning("Record is not valid JSON; only file details are shown")
	}
	return nil
}
