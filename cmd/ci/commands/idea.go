package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/idea"

func init() {
	rootCmd.AddCommand(idea.Cmd)
}
