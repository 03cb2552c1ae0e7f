package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/brain"

func init() {
	rootCmd.AddCommand(brain.Cmd)
}
