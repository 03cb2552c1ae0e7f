package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	initAgents string
	initFast   bool
	initForce  bool
)

func init() {
	initCmd.Flags().StringVarP(&initAgents, "agents", "a", "", "comma separated active agents")
	initCmd.Flags().BoolVar(&initFast, "fast", true, "enable fast agent activation")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Set up the current directory as a CI project",
	Long: `Create .ci-config.json in the current directory and add the standard
patterns to .gitignore.

The project name defaults to the directory name. Inside a git repository the
.gitignore at the repository root is updated; elsewhere one is written to the
current directory.`,
	Example: `  ci init
  ci init api --agents Athena,Tester

See Also: ci config init, ci ignore`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		opts := configInitOptions{
			Agents:    initAgents,
			AgentsSet: c.Flags().Changed("agents"),
			Fast:      initFast,
			Force:     initForce,
		}
		if len(args) == 1 {
			opts.Name = args[0]
		}
		return runInitWithWriter(c.OutOrStdout(), wd, opts)
	},
}

func runInitWithWriter(w io.Writer, dir string, opts configInitOptions) error {
	if _, err := runConfigInitWithWriter(w, dir, opts); err != nil {
		return err
	}
	target := dir
	if root, err := git.Root(dir); err == nil {
		target = root
	}
	p := ui.NewPrinter(w, w)
	if err := applyIgnore(p, target); err != nil {
		return err
	}
	p.Println()
	p.Info("Next: ci agent enable <name>, then ci load <name>")
	return nil
}
