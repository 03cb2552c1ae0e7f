package web

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/ui"
	"github.com/thoreinstein/ci/internal/web"
)

func init() {
	Cmd.AddCommand(deployCmd)
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Build and deploy the portal",
	Long: `Build the portal with "npm run build" and publish it.

Projects linked to Vercel (a .vercel/ directory) are deployed with
"vercel --prod --yes". Otherwise a "deploy" script in package.json is run.
Without either, the build output is left for manual deployment.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := findDir()
		if err != nil {
			return err
		}
		return runDeployWithWriter(cmd.Context(), cmd.OutOrStdout(), dir)
	},
}

func runDeployWithWriter(ctx context.Context, w io.Writer, dir string) error {
	p, err := portal(dir)
	if err != nil {
		return err
	}
	p.Stdout, p.Stderr = w, w
	pr := ui.NewPrinter(w, w)
	pr.Info("Building web portal in %s", dir)

	res, err := p.Deploy(ctx)
	if err != nil {
		return err
	}
	switch res.Target {
	case web.TargetVercel:
		pr.Success("Deployed to Vercel")
	case web.TargetScript:
		pr.Success("Deployed with npm run deploy")
	default:
		pr.Success("Build complete")
		if res.BuildDir != "" {
			pr.KeyValue("Build output", res.BuildDir)
		}
		pr.Info("No deployment target configured; link one with: vercel link")
	}
	return nil
}
