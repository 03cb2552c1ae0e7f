package brain

import (
	"encoding/json"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/brain"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/ui"
)

var sourceJSON bool

func init() {
	sourceCmd.Flags().BoolVar(&sourceJSON, "json", false, "output as JSON")
	Cmd.AddCommand(sourceCmd)
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "List the content of the registered BRAIN",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSourceWithWriter(cmd.OutOrStdout(), registry())
	},
}

func runSourceWithWriter(w io.Writer, r *brain.Registry) error {
	root, err := registeredRoot(r)
	if err != nil {
		return err
	}
	src, err := brain.Inspect(root)
	if err != nil {
		return errors.NewUserError(err, "Run: ci brain health")
	}
	if sourceJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(src), "encoding JSON")
	}

	p := ui.NewPrinter(w, w)
	p.Header("BRAIN: " + src.Dir)
	if len(src.Files) > 0 {
		p.Println()
		p.Println("Files:")
		for _, f := range src.Files {
			p.Printf("  📄 %s (%s)\n", f.Name, humanize.IBytes(uint64(f.Size)))
		}
	}
	if len(src.Dirs) > 0 {
		p.Println()
		p.Println("Directories:")
		for _, d := range src.Dirs {
			p.Printf("  📁 %s/ (%d files)\n", d.Name, d.Count)
		}
	}
	p.Println()
	p.KeyValue("Total markdown files", src.Total)
	return nil
}
