// Package commands implements the CLI commands for ci.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd"
	"github.com/thoreinstein/ci/cmd/ci/commands/flags"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// ciPathFlag holds the value of the --ci-path flag.
var ciPathFlag string

// assumeYes holds the value of the -y/--yes flag.
var assumeYes bool

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// skipConfigCheck lists commands that must run even with a broken config
// file.
var skipConfigCheck = map[string]bool{
	"help":    true,
	"version": true,
	"verify":  true,
	"path":    true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&ciPathFlag, "ci-path", "",
		"path to the CollaborativeIntelligence repository (overrides CI_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"assume yes on confirmation prompts")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("ci version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	_, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "ci",
	Short: "Collaborative Intelligence command line",
	Long: `ci drives a CollaborativeIntelligence repository: it loads agents and
launches Claude Code sessions with their memory, manages the BRAIN knowledge
directory, tracks ideas, and wraps everyday git and GitHub chores.

The repository is located from --ci-path, the CI_PATH environment variable,
the ci_path config key, or a checkout in one of the usual locations.`,
	Example: `  # List available agents
  ci agents

  # Load an agent into a new session
  ci load Athena --context "API review"

  # Check the installation
  ci verify

  See Also: ci init, ci verify, ci config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		flags.SetCIPath(ciPathFlag)
		flags.SetYes(assumeYes)

		if configLoadErr != nil && !skipConfigCheck[cmd.Name()] {
			return errors.NewConfigError(configLoadErr)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}
	format, ok := logging.ParseFormat(logFormat)
	if !ok {
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat), "Use --log-format text or json")
	}

	level := slog.LevelError
	if !quiet {
		v := verbosity
		if v == 0 {
			v = logging.VerbosityFromEnv(os.LookupEnv)
		}
		level = logging.LevelFromVerbosity(v)
	}

	cfg := logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Root returns the root command. The docs and visualize commands walk it.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
