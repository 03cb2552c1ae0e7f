package session

import (
	"io"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	cleanupDays   int
	cleanupDryRun bool
)

func init() {
	cleanupCmd.Flags().IntVarP(&cleanupDays, "days", "d", 30, "archive sessions started more than this many days ago")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "show what would be archived without changing anything")
	Cmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Archive old sessions",
	Long: `Archive every session started more than --days days ago. Records are
marked archived, not deleted.`,
	Example: `  ci session cleanup
  ci session cleanup --days 7 --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runCleanupWithWriter(cmd.OutOrStdout(), repo)
	},
}

func runCleanupWithWriter(w io.Writer, repo paths.Repo) error {
	if cleanupDays < 0 {
		return errors.NewUserError(errors.Wrapf(errors.ErrInvalidValue, "--days %d", cleanupDays), "Pass a positive number of days")
	}
	records, err := agent.ListSessions(repo.AgentsDir(), "")
	if err != nil {
		return errors.NewUserError(err, "Check --ci-path points at a CollaborativeIntelligence checkout")
	}

	p := ui.NewPrinter(w, w)
	p.Header("Sessions older than " + english.Plural(cleanupDays, "day", ""))
	if cleanupDryRun {
		p.Warning("Dry run: no changes will be made")
	}

	cutoff := now().Add(-time.Duration(cleanupDays) * 24 * time.Hour)
	stale, err := agent.CleanupSessions(records, cutoff, cleanupDryRun)
	for _, r := range stale {
		p.Printf("  %s / %s\n", r.AgentName, r.ID)
	}
	if err != nil {
		return err
	}

	p.Println()
	if cleanupDryRun {
		p.Info("Would archive %s", english.Plural(len(stale), "session", ""))
	} else {
		p.Success("Archived %s", english.Plural(len(stale), "session", ""))
	}
	return nil
}
