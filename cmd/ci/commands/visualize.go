package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/visualize"

func init() {
	rootCmd.AddCommand(visualize.Cmd)
}
