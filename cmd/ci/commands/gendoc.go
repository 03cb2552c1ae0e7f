package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/cmd"
	"github.com/thoreinstein/ci/internal/docs"
	"github.com/thoreinstein/ci/internal/errors"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		outputDir, _ := c.Flags().GetString("dir")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --dir DIR")
		}

		gen, err := docs.NewGenerator(rootCmd, nil, cmd.Version)
		if err != nil {
			return err
		}
		files, err := gen.Reference(outputDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s (%d files)\n", outputDir, len(files))
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "d", "", "Output directory for documentation")
	rootCmd.AddCommand(genDocCmd)
}
