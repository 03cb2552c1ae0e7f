package commands

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/project"
	"github.com/thoreinstein/ci/internal/ui"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show repository and project status",
	Long: `Show the git status of the current repository (branch, changes, commit
count, origin) together with a summary of the project configuration.`,
	Example: `  ci status
  ci status --json

See Also: ci commit, ci config show`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		return runStatusWithWriter(c.OutOrStdout(), wd)
	},
}

// statusReport is the --json form of "ci status".
type statusReport struct {
	Git     *git.Status     `json:"git,omitempty"`
	Project *project.Config `json:"project,omitempty"`
	Config  string          `json:"config_file,omitempty"`
}

func runStatusWithWriter(w io.Writer, dir string) error {
	var report statusReport
	st, gitErr := git.Inspect(dir)
	if gitErr != nil && !errors.Is(gitErr, errors.ErrNotGitRepo) {
		return gitErr
	}
	report.Git = st
	if path, cfg, err := project.FindNearest(dir); err == nil {
		report.Config = path
		report.Project = cfg
	} else if !errors.Is(err, project.ErrNoConfig) {
		return err
	}

	if statusJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding status")
	}

	p := ui.NewPrinter(w, w)
	p.Header("Repository")
	if st == nil {
		p.Warning("Not a git repository")
	} else {
		printGitStatus(p, st)
	}

	p.Println()
	p.Header("Project")
	if report.Project == nil {
		p.Muted("No %s found (run: ci config init)", project.FileName)
		return nil
	}
	p.KeyValue("Name", report.Project.ProjectName)
	p.KeyValue("Config", report.Config)
	p.KeyValue("Active agents", strings.Join(report.Project.ActiveAgents, ", "))
	p.KeyValue("Fast activation", report.Project.FastActivation)
	return nil
}

func printGitStatus(p *ui.Printer, st *git.Status) {
	branch := st.Branch
	if st.Detached {
		branch = "detached at " + st.Head
	}
	p.KeyValue("Root", st.Root)
	p.KeyValue("Branch", branch)
	p.KeyValue("Commits", st.Commits)
	if st.Origin != "" {
		p.KeyValue("Origin", st.Origin)
	}
	if st.Clean {
		p.Success("Working tree clean")
		return
	}
	p.Warning("%d uncommitted changes", len(st.Changes))
	for _, c := range st.Changes {
		p.Printf("  %s%s %s\n", c.Staging, c.Worktree, c.Path)
	}
	if msg := git.SuggestMessage(st.Changes); msg != "" {
		p.Muted("Suggested commit message: %s", msg)
	}
}
