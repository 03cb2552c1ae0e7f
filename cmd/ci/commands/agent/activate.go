package agent

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/ui"
)

var activateContext string

func init() {
	activateCmd.Flags().StringVarP(&activateContext, "context", "c", "", "Describe the task the agent is activated for")
	Cmd.AddCommand(activateCmd)
}

var activateCmd = &cobra.Command{
	Use:   "activate <name>",
	Short: "Print an agent's memory with the signature protocol",
	Long: `Print the activation banner, the expected response signature, the agent's
MEMORY.md and its ContinuousLearning.md, ready to paste into an assistant
session.`,
	Example: `  ci agent activate Athena --context "release planning"

  See Also:
    ci load - Load an agent and launch a session`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := flags.Repo()
		if err != nil {
			return err
		}
		return runActivateWithWriter(cmd.OutOrStdout(), repo, args[0], activateContext)
	},
}

// Signature returns the response format an activated agent is expected to
// use.
func Signature(name string) string {
	tag := strings.ToUpper(name)
	return fmt.Sprintf("[%s]: <content> -- [%s]", tag, tag)
}

func runActivateWithWriter(w io.Writer, repo paths.Repo, name, context string) error {
	dir, err := requireAgent(repo, name)
	if err != nil {
		return err
	}
	memory, err := readOptional(filepath.Join(dir, agent.MemoryFile))
	if err != nil {
		return err
	}
	learning, err := readOptional(filepath.Join(dir, agent.LearningFile))
	if err != nil {
		return err
	}

	p := ui.NewPrinter(w, w)
	p.Header("Activating Agent: " + name)
	if context != "" {
		p.KeyValue("Context", context)
	}
	p.Printf("🤖 Agent Activation: %s\n", name)
	p.Printf("Expected signature format: %s\n", Signature(name))

	if memory != "" {
		p.Println(memory)
	}
	if learning != "" {
		p.Println()
		p.Println("# Continuous Learning")
		p.Println()
		p.Println(learning)
	}

	p.Println()
	p.Success("Agent '%s' is now active", name)
	p.Muted("You can interact with this agent directly in Claude Code")
	return nil
}
