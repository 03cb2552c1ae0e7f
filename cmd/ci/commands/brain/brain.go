// Package brain provides the "ci brain" commands for registering and checking
// the BRAIN knowledge directory.
package brain

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/brain"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/doctor"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/ui"
)

// Cmd is the root brain command.
var Cmd = &cobra.Command{
	Use:   "brain",
	Short: "Manage the BRAIN knowledge directory",
	Long: `Manage the BRAIN knowledge directory shared by agents.

A BRAIN is a directory containing BRAIN/ with markdown files. Registering it
records its absolute path in ~/.ci_brain_config so agents and tools can find
it.`,
	Example: `  ci brain register ~/CollaborativeIntelligence
  ci brain status
  ci brain health

  See Also:
    ci brain source - List BRAIN content
    ci verify       - Check the whole installation`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func registry() *brain.Registry {
	return brain.NewRegistry(config.Current().BrainConfig)
}

// registeredRoot returns the registered BRAIN root as a user error when
// nothing is registered.
func registeredRoot(r *brain.Registry) (string, error) {
	root, err := r.Path()
	if errors.Is(err, errors.ErrNotRegistered) {
		return "", errors.NewUserError(err, "Run: ci brain register <path>")
	}
	return root, err
}

// printResults prints one line per check result.
func printResults(p *ui.Printer, report *doctor.Report) {
	for _, r := range report.Results {
		switch r.Status {
		case doctor.SeverityPass:
			p.Success("%s", r.Message)
		case doctor.SeverityInfo:
			p.Info("%s", r.Message)
		case doctor.SeverityWarning:
			p.Warning("%s", r.Message)
		default:
			p.Error("%s", r.Message)
		}
	}
}

func run(checks []doctor.Check) *doctor.Report {
	runner := doctor.NewRunner()
	runner.AddCheck(checks...)
	return runner.Run()
}
