package commands

import "github.com/thoreinstein/ci/cmd/ci/commands/web"

func init() {
	rootCmd.AddCommand(web.Cmd)
}
