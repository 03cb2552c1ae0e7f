// Package config provides configuration management for ci using Viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// Config keys.
const (
	KeyCIPath        = "ci_path"
	KeyBrainConfig   = "brain_config"
	KeyLaunchDelay   = "launch.delay"
	KeyLaunchCommand = "launch.command"
	KeyDocsPort      = "docs.port"
	KeyDocsTheme     = "docs.theme"
	KeyLegacyBinDir  = "legacy.bin_dir"
	KeyIdeasFile     = "ideas.file"
)

// Defaults applied by Init.
const (
	DefaultLaunchDelay   = time.Second
	DefaultLaunchCommand = "claude"
	DefaultDocsPort      = 8080
	DefaultDocsTheme     = "auto"
)

// Config represents the application configuration.
type Config struct {
	CIPath      string       `mapstructure:"ci_path" yaml:"ci_path"`
	BrainConfig string       `mapstructure:"brain_config" yaml:"brain_config"`
	Launch      LaunchConfig `mapstructure:"launch" yaml:"launch"`
	Docs        DocsConfig   `mapstructure:"docs" yaml:"docs"`
	Legacy      LegacyConfig `mapstructure:"legacy" yaml:"legacy"`
	Ideas       IdeasConfig  `mapstructure:"ideas" yaml:"ideas"`
}

// LaunchConfig controls how agent sessions are started.
type LaunchConfig struct {
	Delay   time.Duration `mapstructure:"delay" yaml:"delay"`
	Command string        `mapstructure:"command" yaml:"command"`
}

// DocsConfig controls documentation rendering and preview.
type DocsConfig struct {
	Port  int    `mapstructure:"port" yaml:"port"`
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LegacyConfig controls the legacy command symlinks.
type LegacyConfig struct {
	BinDir string `mapstructure:"bin_dir" yaml:"bin_dir"`
}

// IdeasConfig overrides where ideas are stored.
type IdeasConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// Init resets Viper and installs the search paths, env binding and defaults.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	if dir := os.Getenv("CI_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	viper.SetEnvPrefix("CI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyCIPath, "")
	viper.SetDefault(KeyBrainConfig, paths.BrainConfigPath())
	viper.SetDefault(KeyLaunchDelay, DefaultLaunchDelay)
	viper.SetDefault(KeyLaunchCommand, DefaultLaunchCommand)
	viper.SetDefault(KeyDocsPort, DefaultDocsPort)
	viper.SetDefault(KeyDocsTheme, DefaultDocsTheme)
	viper.SetDefault(KeyLegacyBinDir, "")
	viper.SetDefault(KeyIdeasFile, "")
}

// Load reads the configuration file.
// An explicit path must exist. Without one, the default locations are
// searched and a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	cfg := Current()
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}
	return cfg, nil
}

// Current decodes the active Viper state into a Config.
func Current() *Config {
	return &Config{
		CIPath:      viper.GetString(KeyCIPath),
		BrainConfig: viper.GetString(KeyBrainConfig),
		Launch: LaunchConfig{
			Delay:   viper.GetDuration(KeyLaunchDelay),
			Command: viper.GetString(KeyLaunchCommand),
		},
		Docs: DocsConfig{
			Port:  viper.GetInt(KeyDocsPort),
			Theme: viper.GetString(KeyDocsTheme),
		},
		Legacy: LegacyConfig{BinDir: viper.GetString(KeyLegacyBinDir)},
		Ideas:  IdeasConfig{File: viper.GetString(KeyIdeasFile)},
	}
}

// FileUsed returns the config file Viper loaded, or "" when running on defaults.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// DefaultFile returns where "ci config path" reports the config lives when
// no file has been loaded.
func DefaultFile() string {
	return filepath.Join(paths.AppConfigDir(), "config.yaml")
}

// WriteFile saves c as YAML at path, creating the parent directory. Durations
// are written in Go notation ("1s") so the file stays hand-editable.
func (c *Config) WriteFile(path string) error {
	doc := map[string]any{
		KeyCIPath:      c.CIPath,
		KeyBrainConfig: c.BrainConfig,
		"launch":       map[string]any{"delay": c.Launch.Delay.String(), "command": c.Launch.Command},
		"docs":         map[string]any{"port": c.Docs.Port, "theme": c.Docs.Theme},
		"legacy":       map[string]any{"bin_dir": c.Legacy.BinDir},
		"ideas":        map[string]any{"file": c.Ideas.File},
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteYAML(path, doc, fileutil.DefaultFilePerm)
}
