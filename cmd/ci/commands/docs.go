package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/docs"

func init() {
	rootCmd.AddCommand(docs.Cmd)
}
