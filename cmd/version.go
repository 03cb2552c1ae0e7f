// Package cmd holds build metadata stamped in by the release pipeline:
//
//	go build -ldflags "-X github.com/thoreinstein/ci/cmd.Version=v1.2.0"
package cmd

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
