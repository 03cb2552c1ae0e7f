package docs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Deployment defaults.
const (
	DefaultPagesBranch = "gh-pages"
	DeployMessage      = "Deploy Collaborative Intelligence documentation"
	Vercel             = "vercel"
	noJekyll           = ".nojekyll"
)

// Deployer publishes a generated site directory.
type Deployer struct {
	Runner proc.Runner
	Stdout io.Writer
	Stderr io.Writer
}

func requireSite(src string) error {
	if !paths.Exists(filepath.Join(src, IndexFile)) {
		return errors.WithDetailf(
			errors.Wrapf(errors.ErrNotFound, "no %s in %s", IndexFile, src),
			"Run: ci docs generate -o %s", src)
	}
	return nil
}

// Local copies src to dest, or links dest to src when symlink is set.
// An existing dest is never replaced by a link.
func (d *Deployer) Local(src, dest string, symlink bool) error {
	if err := requireSite(src); err != nil {
		return err
	}
	if !symlink {
		return fileutil.CopyDir(src, dest)
	}
	if _, err := os.Lstat(dest); err == nil {
		return errors.Wrapf(errors.ErrAlreadyExists, "%s", dest)
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", src)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrap(err, "creating parent directory")
	}
	return errors.Wrapf(os.Symlink(abs, dest), "linking %s", dest)
}

// GitHubPages commits the site to a fresh repository in a temp directory and
// force-pushes it to branch of repoURL.
func (d *Deployer) GitHubPages(ctx context.Context, src, repoURL, branch string) error {
	if err := requireSite(src); err != nil {
		return err
	}
	if err := git.ValidateURL(repoURL); err != nil {
		return err
	}
	if branch == "" {
		branch = DefaultPagesBranch
	}
	if !proc.Has(d.Runner, git.Program) {
		return errors.NewToolError(git.Program, "Install git from https://git-scm.com")
	}

	work, err := os.MkdirTemp("", "ci-pages-*")
	if err != nil {
		return errors.Wrap(err, "creating work directory")
	}
	defer os.RemoveAll(work)

	if err := fileutil.CopyDir(src, work); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteFile(filepath.Join(work, noJekyll), nil, fileutil.DefaultFilePerm); err != nil {
		return errors.Wrap(err, "writing "+noJekyll)
	}

	c := &git.Client{Runner: d.Runner, Dir: work}
	steps := []func() error{
		func() error { return c.Init(ctx) },
		func() error { return c.CheckoutNew(ctx, branch) },
		func() error { return c.AddAll(ctx) },
		func() error { return c.Commit(ctx, DeployMessage) },
		func() error { return c.ForcePush(ctx, repoURL, branch) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Vercel deploys src to production, linking it to project first when one
// is named.
func (d *Deployer) Vercel(ctx context.Context, src, project string) error {
	if err := requireSite(src); err != nil {
		return err
	}
	if !proc.Has(d.Runner, Vercel) {
		return errors.NewToolError(Vercel, "Install the Vercel CLI: npm install -g vercel")
	}
	run := func(args ...string) error {
		return d.Runner.Run(ctx, proc.Cmd{Name: Vercel, Args: args, Dir: src, Stdout: d.Stdout, Stderr: d.Stderr})
	}
	if project != "" {
		if err := run("link", "--yes", "--project", project); err != nil {
			return errors.Wrapf(err, "linking vercel project %s", project)
		}
	}
	return errors.Wrap(run("deploy", "--prod", "--yes"), "vercel deploy failed")
}
