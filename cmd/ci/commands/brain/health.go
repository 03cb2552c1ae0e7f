package brain

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/brain"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(healthCmd, testCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the registered BRAIN is usable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHealthWithWriter(cmd.OutOrStdout(), registry())
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run functional tests against the registered BRAIN",
	Long: `Run four functional tests: path access, BRAIN directory, file
readability and an environment variable round trip. Exits non-zero when any
test fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTestWithWriter(cmd.OutOrStdout(), registry(), brain.OSEnv)
	},
}

// errChecksFailed is returned when a BRAIN check fails.
var errChecksFailed = errors.New("BRAIN checks failed")

func runHealthWithWriter(w io.Writer, r *brain.Registry) error {
	root, err := registeredRoot(r)
	if err != nil {
		return err
	}
	p := ui.NewPrinter(w, w)
	p.Header("BRAIN health")
	report := run(brain.HealthChecks(root))
	printResults(p, report)
	if report.HasErrors() {
		return errors.NewUserError(errChecksFailed, "Re-register with: ci brain register <path>")
	}
	p.Println()
	p.Success("BRAIN is healthy")
	return nil
}

func runTestWithWriter(w io.Writer, r *brain.Registry, env brain.Env) error {
	root, err := registeredRoot(r)
	if err != nil {
		return err
	}
	p := ui.NewPrinter(w, w)
	p.Header("BRAIN functional tests")
	report := run(brain.FunctionalChecks(root, env))
	printResults(p, report)

	total := report.Summary.Total()
	p.Println()
	p.Printf("Results: %d/%d tests passed (%.0f%%)\n", report.Summary.Passed, total, report.PassRate())
	if report.HasErrors() {
		return errors.NewSystemError(errChecksFailed, "Run: ci brain health")
	}
	return nil
}
