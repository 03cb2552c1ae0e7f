package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/brain"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/doctor"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/launcher"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/repo"
	"github.com/thoreinstein/ci/internal/ui"
)

var verifyJSON bool

// toolRunner resolves external programs for the top-level commands.
var toolRunner proc.Runner = proc.Default

func init() {
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false,
		"output results as JSON")
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:     "verify",
	Aliases: []string{"doctor"},
	Short:   "Verify the CI installation",
	Long: `Run diagnostic checks on the CI repository, the BRAIN registration, the
nearest project configuration and the external tools ci relies on.

Output modes:
  (default)   Show errors and warnings
  -v          Show all checks including passed ones
  -q          No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - No errors (warnings allowed)
  2 - Errors present`,
	Example: `  # Check the installation
  ci verify

  # Machine-readable report
  ci verify --json

  See Also: ci brain health, ci config validate`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		report := verifyChecks(toolRunner, ciPathFlag, wd).Run()
		return runVerifyWithWriter(c.OutOrStdout(), report)
	},
}

// verifyChecks assembles the checks run by "ci verify".
func verifyChecks(r proc.Runner, ciPath, wd string) *doctor.Runner {
	runner := doctor.NewRunner()

	root, err := config.ResolveCIPath(ciPath)
	runner.AddCheck(doctor.CIPathCheck(root, err))
	if err == nil {
		repository := paths.NewRepo(root)
		runner.AddCheck(
			doctor.AgentsDirCheck(repository),
			doctor.AgentsIndexCheck(repository),
		)
	}

	runner.AddCheck(
		brain.RegistrationCheck(brain.NewRegistry(config.Current().BrainConfig)),
		doctor.ProjectConfigCheck(wd),
		doctor.ToolCheck(r, git.Program, git.InstallHint, doctor.SeverityError),
		doctor.ToolCheck(r, repo.Program, repo.InstallURL, doctor.SeverityWarning),
		doctor.ToolCheck(r, launcher.DefaultCommand, launcher.InstallHint, doctor.SeverityWarning),
		doctor.ToolCheck(r, "npm", "Install Node.js: https://nodejs.org", doctor.SeverityWarning),
	)
	return runner
}

func runVerifyWithWriter(w io.Writer, report *doctor.Report) error {
	switch {
	case verifyJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	case quiet:
	default:
		printVerifyReport(ui.NewPrinter(w, w), report, verbosity > 0)
	}

	if report.HasErrors() {
		return errors.NewExitError(errVerifyFailed, errors.ExitSystem)
	}
	return nil
}

func printVerifyReport(p *ui.Printer, report *doctor.Report, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		line := fmt.Sprintf("[%s] %s: %s", result.Category, result.Name, result.Message)
		switch result.Status {
		case doctor.SeverityPass:
			p.Success("%s", line)
		case doctor.SeverityInfo:
			p.Info("%s", line)
		case doctor.SeverityWarning:
			p.Warning("%s", line)
		default:
			p.Error("%s", line)
		}

		if result.FixHint != "" && problem {
			p.Muted("  hint: %s", result.FixHint)
		}
	}

	if hasOutput || showAll {
		p.Println()
	}

	p.Panel(fmt.Sprintf("Summary: %d passed, %d info, %d warnings, %d errors (%.0f%%)",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors,
		report.PassRate()))
}

// errVerifyFailed is returned when any check reports an error.
var errVerifyFailed = errors.New("verification failed")
