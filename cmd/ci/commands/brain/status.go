package brain

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/brain"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/ui"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	Cmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the BRAIN registration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStatusWithWriter(cmd.OutOrStdout(), registry(), brain.OSEnv)
	},
}

func runStatusWithWriter(w io.Writer, r *brain.Registry, env brain.Env) error {
	s := brain.CurrentStatus(r, env)
	if statusJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(s), "encoding JSON")
	}

	p := ui.NewPrinter(w, w)
	p.Header("BRAIN status")
	if !s.Registered {
		p.Warning("No BRAIN registered")
		p.Println()
		p.Println("Register one with:")
		p.Println("  ci brain register <path>")
		p.Muted("The path must contain a BRAIN/ directory with markdown files.")
		return nil
	}

	p.KeyValue("Path", s.Path)
	p.KeyValue("BRAIN directory", s.Dir)
	p.KeyValue("Config file", s.ConfigFile)
	p.KeyValue("Accessible", s.Accessible)
	p.KeyValue("Markdown files", s.Files)
	p.KeyValue(brain.EnvPath, orUnset(s.EnvPath))
	p.KeyValue(brain.EnvAvailable, orUnset(s.EnvAvail))
	if !s.Accessible {
		p.Println()
		p.Warning("BRAIN directory is not accessible; run: ci brain health")
	}
	return nil
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
