package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/repo"

func init() {
	rootCmd.AddCommand(repo.Cmd)
}
