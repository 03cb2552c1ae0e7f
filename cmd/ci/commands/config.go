package commands

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd"
	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/editor"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/project"
	"github.com/thoreinstein/ci/internal/translate"
	"github.com/thoreinstein/ci/internal/ui"
	"github.com/thoreinstein/ci/internal/validator"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

var (
	configInitName   string
	configInitAgents string
	configInitFast   bool
	configInitForce  bool
	configInitUser   bool
	configShowFormat string

	configValidateFormat string
)

func init() {
	configInitCmd.Flags().StringVarP(&configInitName, "name", "n", "", "project name (default: directory name)")
	configInitCmd.Flags().StringVarP(&configInitAgents, "agents", "a", "", "comma separated active agents (default: "+strings.Join(project.DefaultAgents, ",")+")")
	configInitCmd.Flags().BoolVar(&configInitFast, "fast", true, "enable fast agent activation")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing configuration")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "write the application config.yaml instead of .ci-config.json")
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "text", "output format: text, json, yaml, toml")
	configValidateCmd.Flags().StringVar(&configValidateFormat, "format", "text", "report format: text, json")

	configCmd.AddCommand(
		configInitCmd,
		configGetCmd,
		configSetCmd,
		configShowCmd,
		configValidateCmd,
		configPathCmd,
		configEditCmd,
		aliasCommand("integration", project.KeyIntegrationType, "Show or set the integration type (standalone, override)"),
		aliasCommand("agents", project.KeyActiveAgents, "Show or replace the active agents"),
		aliasCommand("project", project.KeyProjectName, "Show or set the project name"),
	)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the project configuration",
	Long: `Manage the project configuration stored in .ci-config.json.

Commands operate on the nearest .ci-config.json found in the working
directory or its parents. Application settings live in
~/.config/ci/config.yaml; see "ci config path".

Without a subcommand, shows the project configuration.`,
	Example: `  # Create a configuration for this project
  ci config init --agents Athena,Tester

  # Read and change values
  ci config get active_agents
  ci config set fast_activation off

  # Export as YAML
  ci config show --format yaml

See Also: ci init, ci verify`,
	RunE: func(c *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		return runConfigShowWithWriter(c.OutOrStdout(), wd, configShowFormat)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .ci-config.json in the current directory",
	Long: `Create a project configuration in the current directory.

The project name defaults to the directory name and the active agents to
` + strings.Join(project.DefaultAgents, " and ") + `. An existing file is kept unless --force is given.

With --user, the application config.yaml is written instead, holding the
settings currently in effect.`,
	Example: `  ci config init
  ci config init --name api --agents Athena,Tester --fast=false
  ci config init --user

See Also: ci init, ci config show`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		if configInitUser {
			return runConfigInitUserWithWriter(c.OutOrStdout(), config.DefaultFile(), configInitForce)
		}
		_, err = runConfigInitWithWriter(c.OutOrStdout(), wd, configInitOptions{
			Name:      configInitName,
			Agents:    configInitAgents,
			AgentsSet: c.Flags().Changed("agents"),
			Fast:      configInitFast,
			Force:     configInitForce,
		})
		return err
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a value of the project configuration.

The keys project_name, active_agents, fast_activation, ci_version,
created_at, updated_at and integration_type are built in. Any other key is
read from metadata and printed as JSON.`,
	Example: `  ci config get project_name
  ci config get integration_type

See Also: ci config set, ci config show`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		return runConfigGetWithWriter(c.OutOrStdout(), wd, args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a value of the project configuration.

active_agents takes a comma separated list. fast_activation accepts
true/yes/1/on and false/no/0/off. integration_type must be standalone or
override. Other keys are stored in metadata; values that parse as JSON are
stored as JSON, anything else as a string.`,
	Example: `  ci config set active_agents Athena,Tester
  ci config set integration_type override
  ci config set limits '{"sessions": 3}'

See Also: ci config get`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		return runConfigSetWithWriter(c.OutOrStdout(), wd, args[0], args[1])
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the project configuration",
	Example: `  ci config show
  ci config show --format toml

See Also: ci config get`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		return runConfigShowWithWriter(c.OutOrStdout(), wd, configShowFormat)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a configuration file against the schema",
	Long: `Validate .ci-config.json against its JSON Schema and list every field
error. Without a path the nearest .ci-config.json is checked. A configuration
without active agents passes with a warning.`,
	Example: `  ci config validate
  ci config validate ../other/.ci-config.json --format json

See Also: ci verify`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "getting working directory")
			}
			if path, err = project.FindNearestPath(wd); err != nil {
				return errors.NewUserError(err, "Run: ci config init")
			}
		}
		return runConfigValidateWithWriter(c.OutOrStdout(), path, configValidateFormat)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file locations",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		return runConfigPathWithWriter(c.OutOrStdout(), wd)
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open .ci-config.json in $EDITOR",
	Long: `Open the nearest .ci-config.json in your editor.

Uses $EDITOR, then $VISUAL, then nano or vi.`,
	Example: `  ci config edit
  EDITOR=code ci config edit

See Also: ci config validate`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		path, err := project.FindNearestPath(wd)
		if err != nil {
			return errors.NewUserError(err, "Run: ci config init")
		}
		return editor.Open(c.Context(), toolRunner, path)
	},
}

// aliasCommand reads key without an argument and sets it with one.
func aliasCommand(use, key, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [value]",
		Short: short,
		Long:  fmt.Sprintf("Shortcut for \"ci config get %[1]s\" and \"ci config set %[1]s <value>\".", key),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "getting working directory")
			}
			if len(args) == 0 {
				return runConfigGetWithWriter(c.OutOrStdout(), wd, key)
			}
			return runConfigSetWithWriter(c.OutOrStdout(), wd, key, args[0])
		},
	}
}

// configInitOptions are the inputs of "ci config init".
type configInitOptions struct {
	Name      string
	Agents    string
	AgentsSet bool
	Fast      bool
	Force     bool
}

// runConfigInitUserWithWriter writes the active application settings to path.
func runConfigInitUserWithWriter(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrAlreadyExists, "%s", path),
			"Use --force to overwrite it",
		)
	}
	if err := config.Current().WriteFile(path); err != nil {
		return err
	}
	ui.NewPrinter(w, w).Success("Created %s", path)
	return nil
}

// runConfigInitWithWriter writes dir/.ci-config.json and returns its path.
func runConfigInitWithWriter(w io.Writer, dir string, opts configInitOptions) (string, error) {
	path := filepath.Join(dir, project.FileName)
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", errors.NewUserError(
			errors.Wrapf(errors.ErrAlreadyExists, "%s", path),
			"Use --force to overwrite it",
		)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(dir)
	}
	var agents []string
	if opts.AgentsSet {
		agents = project.SplitList(opts.Agents)
	}

	cfg := project.New(name, cmd.Version, agents, opts.Fast)
	if err := cfg.Save(path); err != nil {
		return "", err
	}

	p := ui.NewPrinter(w, w)
	p.Success("Created %s", path)
	p.KeyValue("Project", cfg.ProjectName)
	p.KeyValue("Active agents", strings.Join(cfg.ActiveAgents, ", "))
	p.KeyValue("Fast activation", cfg.FastActivation)
	return path, nil
}

// loadProject finds the configuration governing dir.
func loadProject(dir string) (string, *project.Config, error) {
	path, cfg, err := project.FindNearest(dir)
	if err != nil {
		return "", nil, errors.NewUserError(err, "Run: ci config init")
	}
	return path, cfg, nil
}

func runConfigGetWithWriter(w io.Writer, dir, key string) error {
	_, cfg, err := loadProject(dir)
	if err != nil {
		return err
	}
	value, err := cfg.Get(key)
	if err != nil {
		return errors.NewUserError(err, "Run 'ci config show' to list the configured keys")
	}
	fmt.Fprintln(w, value)
	return nil
}

func runConfigSetWithWriter(w io.Writer, dir, key, value string) error {
	path, cfg, err := loadProject(dir)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return errors.NewUserError(err, "")
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	shown, _ := cfg.Get(key)
	p := ui.NewPrinter(w, w)
	p.Success("Set %s = %s", key, shown)
	if key == project.KeyIntegrationType {
		p.Info("CLAUDE.md is unchanged; run: ci integrate --integration %s", shown)
	}
	return nil
}

func runConfigShowWithWriter(w io.Writer, dir, format string) error {
	f, err := translate.ParseFormat(format)
	if err != nil {
		return errors.NewUserError(err, "Use --format text, json, yaml or toml")
	}
	path, cfg, err := loadProject(dir)
	if err != nil {
		return err
	}

	if f != translate.FormatText {
		data, err := translate.Marshal(cfg, f)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return errors.Wrap(err, "writing output")
	}

	p := ui.NewPrinter(w, w)
	p.Header("Project configuration")
	p.KeyValue("File", path)
	p.KeyValue("Project", cfg.ProjectName)
	p.KeyValue("CI version", cfg.CIVersion)
	p.KeyValue("Created", cfg.CreatedAt)
	p.KeyValue("Updated", cfg.UpdatedAt)
	p.KeyValue("Active agents", strings.Join(cfg.ActiveAgents, ", "))
	p.KeyValue("Fast activation", cfg.FastActivation)
	p.KeyValue("Auto accept", describeAutoAccept(cfg.AutoAccept))
	if len(cfg.Metadata) > 0 {
		p.Println()
		p.Header("Metadata")
		for _, k := range slices.Sorted(maps.Keys(cfg.Metadata)) {
			p.KeyValue(k, project.FormatValue(cfg.Metadata[k]))
		}
	}
	return nil
}

func describeAutoAccept(a project.AutoAccept) string {
	var parts []string
	if a.Global {
		parts = append(parts, "global")
	}
	if a.AgentLoad {
		parts = append(parts, "agent load")
	}
	if a.AgentActivate {
		parts = append(parts, "agent activate")
	}
	if len(a.Agents) > 0 {
		parts = append(parts, "agents: "+strings.Join(a.Agents, ", "))
	}
	if len(parts) == 0 {
		return "off"
	}
	return strings.Join(parts, "; ")
}

func runConfigValidateWithWriter(w io.Writer, path, format string) error {
	content, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "reading %s", path), "")
	}
	res, err := project.Validate(path, content)
	if err != nil {
		return err
	}
	f, err := validator.ParseFormat(format)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	if err := validator.NewReporter(w, f).Report(res); err != nil {
		return err
	}
	if !res.Valid {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrInvalidConfig, "%d schema errors in %s", len(res.Errors()), path),
			"Fix the fields above or recreate the file with: ci config init --force",
		)
	}
	return nil
}

func runConfigPathWithWriter(w io.Writer, dir string) error {
	p := ui.NewPrinter(w, w)
	appFile := config.FileUsed()
	if appFile == "" {
		appFile = config.DefaultFile() + " (not created, run: ci config init --user)"
	}
	p.KeyValue("Application config", appFile)

	if path, err := project.FindNearestPath(dir); err == nil {
		p.KeyValue("Project config", path)
	} else {
		p.KeyValue("Project config", "none (run: ci config init)")
	}
	return nil
}
