// Package config provides configuration management for the ci CLI.
//
// Settings come from Viper: a YAML file (./config.yaml, $CI_CONFIG_DIR, or
// <ConfigHome>/ci/config.yaml), CI_-prefixed environment variables
// (CI_LAUNCH_DELAY, CI_DOCS_PORT, ...) and the defaults installed by [Init].
//
//	ci_path: ~/Projects/CollaborativeIntelligence
//	launch:
//	  delay: 2s
//	  command: claude
//	docs:
//	  port: 8080
//	  theme: dark
//	legacy:
//	  bin_dir: ~/.local/bin
//	ideas:
//	  file: ~/notes/ideas.json
//
// This is distinct from the per-project .ci-config.json handled by the
// project package.
//
// [Resolver] locates the CollaborativeIntelligence repository every
// agent-facing command reads from.
package config
