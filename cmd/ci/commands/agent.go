package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/agent"

func init() {
	rootCmd.AddCommand(agent.Cmd)
}
