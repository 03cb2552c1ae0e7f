package docs

import (
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/docs"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	generateOutput      string
	generateInteractive bool
	generateAgents      bool
	generateTheme       string

	appOutput      string
	appInteractive bool
	appExamples    bool
	appVisualizer  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", DefaultSiteDir, "output directory")
	generateCmd.Flags().BoolVarP(&generateInteractive, "interactive", "i", false, "include the interactive command builder")
	generateCmd.Flags().BoolVarP(&generateAgents, "agents", "a", false, "include the agent gallery")
	generateCmd.Flags().StringVar(&generateTheme, "theme", "", "auto, light or dark (default: docs.theme)")

	appCmd.Flags().StringVarP(&appOutput, "output", "o", DefaultAppDir, "output directory")
	appCmd.Flags().BoolVarP(&appInteractive, "interactive", "i", false, "include the command builder")
	appCmd.Flags().BoolVarP(&appExamples, "examples", "e", false, "include usage examples")
	appCmd.Flags().BoolVar(&appVisualizer, "visualizer", false, "include the agent visualizer")

	Cmd.AddCommand(generateCmd, appCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the static documentation site",
	Long: `Write index.html, the stylesheet and a markdown reference for every
command. --interactive adds interactive.html and --agents adds agents.html.`,
	Example: `  ci docs generate
  ci docs generate -o site --interactive --agents --theme dark`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		g, err := newGenerator(c)
		if err != nil {
			return err
		}
		t, err := theme(generateTheme)
		if err != nil {
			return err
		}
		return runGenerateWithWriter(c.OutOrStdout(), g, generateOutput, docs.GenerateOptions{
			Interactive: generateInteractive,
			Agents:      generateAgents,
			Theme:       t,
		})
	},
}

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Write the single-page documentation app",
	Example: `  ci docs app --interactive --examples --visualizer
  ci docs app -o public`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		g, err := newGenerator(c)
		if err != nil {
			return err
		}
		return runAppWithWriter(c.OutOrStdout(), g, appOutput, docs.AppOptions{
			Interactive: appInteractive,
			Examples:    appExamples,
			Visualizer:  appVisualizer,
		})
	},
}

func runGenerateWithWriter(w io.Writer, g *docs.Generator, dir string, opts docs.GenerateOptions) error {
	files, err := g.Generate(dir, opts)
	if err != nil {
		return err
	}
	printFiles(ui.NewPrinter(w, w), "Documentation generated", dir, files)
	return nil
}

func runAppWithWriter(w io.Writer, g *docs.Generator, dir string, opts docs.AppOptions) error {
	files, err := g.App(dir, opts)
	if err != nil {
		return err
	}
	printFiles(ui.NewPrinter(w, w), "Documentation app generated", dir, files)
	return nil
}

// printFiles lists the pages and assets written, summarizing the markdown
// reference in one line.
func printFiles(p *ui.Printer, title, dir string, files []string) {
	p.Success("%s in %s", title, dir)
	refs := 0
	for _, f := range files {
		if filepath.Dir(f) == docs.ReferenceDir {
			refs++
			continue
		}
		p.Printf("  %s\n", f)
	}
	if refs > 0 {
		p.Printf("  %s/ (%d commands)\n", docs.ReferenceDir, refs)
	}
}
