package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/session"

func init() {
	rootCmd.AddCommand(session.Cmd)
}
