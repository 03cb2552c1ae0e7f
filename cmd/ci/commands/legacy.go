package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/legacy"

func init() {
	rootCmd.AddCommand(legacy.Cmd)
}
