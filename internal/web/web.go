// Package web runs and deploys the CollaborativeIntelligence web portal, a
// Node project living in the repository's web/ directory.
package web

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Programs used by the portal.
const (
	NPM    = "npm"
	Vercel = "vercel"
)

// PackageFile is the Node manifest required in the web directory.
const PackageFile = "package.json"

// ErrNoPackage is returned when the web directory has no package.json.
var ErrNoPackage = errors.New("package.json not found in web directory")

// buildDirs are checked, in order, for build output.
var buildDirs = []string{"build", "dist", "out"}

// Finder locates the web directory.
type Finder struct {
	Cwd    string
	Home   string
	CIPath string
}

// Find walks up from Cwd looking for CollaborativeIntelligence/web and stops
// at Home. It then tries CIPath/web and the conventional checkout under
// ~/Documents/Projects.
func (f Finder) Find() (string, error) {
	cur := filepath.Clean(f.Cwd)
	for cur != "" {
		candidate := filepath.Join(cur, paths.RepoDirName, "web")
		if paths.IsDir(candidate) {
			return candidate, nil
		}
		if cur == f.Home {
			break
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	var fallbacks []string
	if f.CIPath != "" {
		fallbacks = append(fallbacks, paths.NewRepo(f.CIPath).WebDir())
	}
	if f.Home != "" {
		fallbacks = append(fallbacks, filepath.Join(f.Home, "Documents", "Projects", paths.RepoDirName, "web"))
	}
	for _, dir := range fallbacks {
		if paths.IsDir(dir) {
			return dir, nil
		}
	}
	return "", errors.Wrap(errors.ErrNotFound, "web directory not found in CollaborativeIntelligence project")
}

// Portal runs npm and vercel in the web directory.
type Portal struct {
	Runner proc.Runner
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Portal for dir after checking it has a package.json.
func New(dir string) (*Portal, error) {
	if !paths.Exists(filepath.Join(dir, PackageFile)) {
		return nil, errors.Wrapf(ErrNoPackage, "%s", dir)
	}
	return &Portal{Runner: proc.Default, Dir: dir, Stdout: os.Stdout, Stderr: os.Stderr}, nil
}

func (p *Portal) run(ctx context.Context, name string, args ...string) error {
	if !proc.Has(p.Runner, name) {
		return errors.NewToolError(name, "Install "+name+" and make sure it is on PATH")
	}
	return p.Runner.Run(ctx, proc.Cmd{
		Name:   name,
		Args:   args,
		Dir:    p.Dir,
		Stdin:  os.Stdin,
		Stdout: p.Stdout,
		Stderr: p.Stderr,
	})
}

// Start runs "npm start" and blocks until it exits.
func (p *Portal) Start(ctx context.Context) error {
	return errors.Wrap(p.run(ctx, NPM, "start"), "starting development server")
}

// Build runs "npm run build".
func (p *Portal) Build(ctx context.Context) error {
	return errors.Wrap(p.run(ctx, NPM, "run", "build"), "build failed, cannot proceed with deployment")
}

// Target is where Deploy published the build.
type Target string

// Deploy targets.
const (
	TargetVercel Target = "vercel"
	TargetScript Target = "npm-script"
	TargetManual Target = "manual"
)

// DeployResult reports how the portal was deployed.
type DeployResult struct {
	Target Target

	// BuildDir is the detected build output for manual deployment.
	BuildDir string
}

// Deploy builds the portal and publishes it: with vercel when .vercel/
// exists, with "npm run deploy" when package.json declares that script, and
// otherwise leaves the build for manual deployment.
func (p *Portal) Deploy(ctx context.Context) (*DeployResult, error) {
	if err := p.Build(ctx); err != nil {
		return nil, err
	}

	if paths.IsDir(filepath.Join(p.Dir, ".vercel")) {
		if err := p.run(ctx, Vercel, "--prod", "--yes"); err != nil {
			return nil, errors.Wrap(err, "vercel deployment failed")
		}
		return &DeployResult{Target: TargetVercel}, nil
	}

	ok, err := HasScript(filepath.Join(p.Dir, PackageFile), "deploy")
	if err != nil {
		return nil, err
	}
	if ok {
		if err := p.run(ctx, NPM, "run", "deploy"); err != nil {
			return nil, errors.Wrap(err, "deployment script failed")
		}
		return &DeployResult{Target: TargetScript}, nil
	}

	res := &DeployResult{Target: TargetManual}
	for _, d := range buildDirs {
		if dir := filepath.Join(p.Dir, d); paths.IsDir(dir) {
			res.BuildDir = dir
			break
		}
	}
	return res, nil
}

// HasScript reports whether the package.json at path declares script.
func HasScript(path, script string) (bool, error) {
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if _, err := fileutil.ReadJSON(path, &pkg); err != nil {
		return false, err
	}
	_, ok := pkg.Scripts[script]
	return ok, nil
}
