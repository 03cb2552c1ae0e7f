package agent

import (
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	agentvalidator "github.com/thoreinstein/ci/internal/agent/validator"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

func init() {
	Cmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details for an agent",
	Long: `Show the description, README overview, memory files and usage history of an agent.

Problems with the agent directory, such as a missing README.md or an empty
memory file, are listed at the end.`,
	Example: `  ci agent info Athena

  See Also:
    ci agent activate - Print the agent's memory`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runInfoWithWriter(cmd.OutOrStdout(), repo, args[0])
	},
}

func runInfoWithWriter(w io.Writer, repo paths.Repo, name string) error {
	dir, err := requireAgent(repo, name)
	if err != nil {
		return err
	}
	a, err := agent.Inspect(dir)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(w, w)
	p.Header("Agent: " + a.Name)
	p.KeyValue("Description", a.Description)
	p.KeyValue("Path", a.Path)
	p.KeyValue("Category", agent.Category(a.Name))
	p.KeyValue("Sessions", a.Sessions)

	for _, f := range []string{agent.MemoryFile, agent.LearningFile} {
		content, err := readOptional(filepath.Join(dir, f))
		if err != nil {
			return err
		}
		if content == "" {
			p.KeyValue(f, "missing")
			continue
		}
		p.KeyValue(f, humanize.Comma(int64(agent.CountLines(content)))+" lines")
	}

	if md, ok := agent.LoadMetadata(filepath.Join(dir, agent.MetadataFile)); ok {
		p.KeyValue("Loaded", humanize.Comma(int64(md.UsageCount))+" times")
		if md.LastUsed != nil {
			if t, err := time.Parse(time.RFC3339, *md.LastUsed); err == nil {
				p.KeyValue("Last used", humanize.RelTime(t, now(), "ago", "from now"))
			}
		}
	}

	if a.HasReadme {
		readme, err := readOptional(filepath.Join(dir, agent.ReadmeFile))
		if err != nil {
			return err
		}
		lines, more := agent.Overview(readme)
		if len(lines) > 0 {
			p.Println()
			p.Header("Overview")
			for _, l := range lines {
				p.Println(l)
			}
			if more {
				p.Muted("...")
			}
		}
	}
	res, err := agentvalidator.New(false).Validate(dir)
	if err != nil {
		return err
	}
	if issues := append(res.Errors(), res.Warnings()...); len(issues) > 0 {
		p.Println()
		p.Header("Problems")
		for _, i := range issues {
			p.Warning("%s: %s", i.Field, i.Message)
		}
	}
	return nil
}
