package repo

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/repo"
	"github.com/thoreinstein/ci/internal/ui"
)

var (
	createDescription string
	createPrivate     bool
)

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "repository description")
	createCmd.Flags().BoolVar(&createPrivate, "private", false, "create a private repository")
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a repository on GitHub",
	Example: `  ci repo create tools
  ci repo create tools -d "Shared tooling" --private`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateWithWriter(cmd.Context(), cmd.OutOrStdout(), github(), repo.CreateOptions{
			Name:        args[0],
			Description: createDescription,
			Private:     createPrivate,
		})
	},
}

func runCreateWithWriter(ctx context.Context, w io.Writer, gh *repo.GitHub, opts repo.CreateOptions) error {
	d, err := gh.Create(ctx, opts)
	if err != nil {
		return userError(err)
	}
	p := ui.NewPrinter(w, w)
	p.Success("Created repository %s", d.Name)
	p.KeyValue("URL", d.URL)
	p.KeyValue("Visibility", d.Visibility)
	p.Println()
	p.Info("Clone it with: ci repo clone %s", d.Name)
	return nil
}
