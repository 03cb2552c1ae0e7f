// Package repo manages GitHub repositories through the gh CLI.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
)

// Program is the GitHub CLI executable.
const Program = "gh"

// InstallURL is where users are sent when gh is missing.
const InstallURL = "https://cli.github.com/"

// DefaultLimit caps the repositories returned by List.
const DefaultLimit = 30

const (
	listFields = "name,description,url,visibility,isArchived,isFork"
	viewFields = "name,description,url,visibility,stargazerCount,forkCount,defaultBranchRef,isArchived,isFork,owner,createdAt,updatedAt,languages"
)

// Repo is a repository as listed by gh.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Visibility  string `json:"visibility"`
	IsArchived  bool   `json:"isArchived"`
	IsFork      bool   `json:"isFork"`
}

// Details is the full view of a repository.
type Details struct {
	Repo
	StargazerCount   int    `json:"stargazerCount"`
	ForkCount        int    `json:"forkCount"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
	DefaultBranchRef *struct {
		Name string `json:"name"`
	} `json:"defaultBranchRef"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Languages []struct {
		Size int `json:"size"`
		Node struct {
			Name string `json:"name"`
		} `json:"node"`
	} `json:"languages"`
}

// DefaultBranch returns the default branch name, or "" when unknown.
func (d *Details) DefaultBranch() string {
	if d.DefaultBranchRef == nil {
		return ""
	}
	return d.DefaultBranchRef.Name
}

// LanguageNames returns the repository languages in gh order.
func (d *Details) LanguageNames() []string {
	out := make([]string, 0, len(d.Languages))
	for _, l := range d.Languages {
		out = append(out, l.Node.Name)
	}
	return out
}

// GitHub runs gh commands.
type GitHub struct {
	Runner proc.Runner
}

// New returns a GitHub client using the real gh binary.
func New() *GitHub {
	return &GitHub{Runner: proc.Default}
}

// Check returns a tool error when gh is not installed.
func (g *GitHub) Check() error {
	if proc.Has(g.Runner, Program) {
		return nil
	}
	return errors.NewToolError(Program, "Install GitHub CLI from "+InstallURL)
}

func (g *GitHub) json(ctx context.Context, v any, args ...string) error {
	if err := g.Check(); err != nil {
		return err
	}
	out, err := g.Runner.Output(ctx, proc.Cmd{Name: Program, Args: args})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, v); err != nil {
		return errors.Wrapf(err, "parsing output of gh %s", strings.Join(args[:2], " "))
	}
	return nil
}

// List returns up to limit repositories of the authenticated user.
func (g *GitHub) List(ctx context.Context, limit int) ([]Repo, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var repos []Repo
	err := g.json(ctx, &repos, "repo", "list", "--limit", strconv.Itoa(limit), "--json", listFields)
	return repos, errors.Wrap(err, "listing repositories")
}

// View returns details of repo, given as NAME or OWNER/NAME.
func (g *GitHub) View(ctx context.Context, repo string) (*Details, error) {
	if repo == "" {
		return nil, errors.Wrap(errors.ErrMissingName, "repository is required")
	}
	var d Details
	if err := g.json(ctx, &d, "repo", "view", repo, "--json", viewFields); err != nil {
		return nil, errors.Wrapf(err, "viewing %s", repo)
	}
	return &d, nil
}

// CreateOptions configures Create.
type CreateOptions struct {
	Name        string
	Description string
	Private     bool
}

// Create makes a new repository and returns its details.
func (g *GitHub) Create(ctx context.Context, opts CreateOptions) (*Details, error) {
	if opts.Name == "" {
		return nil, errors.Wrap(errors.ErrMissingName, "repository name is required")
	}
	if err := g.Check(); err != nil {
		return nil, err
	}
	args := []string{"repo", "create", opts.Name}
	if opts.Description != "" {
		args = append(args, "--description", opts.Description)
	}
	if opts.Private {
		args = append(args, "--private")
	} else {
		args = append(args, "--public")
	}
	if _, err := g.Runner.Output(ctx, proc.Cmd{Name: Program, Args: args}); err != nil {
		return nil, errors.Wrapf(err, "creating %s", opts.Name)
	}
	return g.View(ctx, opts.Name)
}

// Clone clones repo into dir, or into a directory named after the
// repository when dir is empty. A positive depth makes a shallow clone.
func (g *GitHub) Clone(ctx context.Context, repo, dir string, depth int) error {
	if repo == "" {
		return errors.Wrap(errors.ErrMissingName, "repository is required")
	}
	if err := g.Check(); err != nil {
		return err
	}
	args := []string{"repo", "clone", repo}
	if dir != "" {
		args = append(args, dir)
	}
	if depth > 0 {
		args = append(args, "--", fmt.Sprintf("--depth=%d", depth))
	}
	err := g.Runner.Run(ctx, proc.Cmd{Name: Program, Args: args, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
	return errors.Wrapf(err, "cloning %s", repo)
}

// CloneDir is the directory Clone uses when none is given.
func CloneDir(repo, dir string) string {
	if dir != "" {
		return dir
	}
	name := strings.TrimSuffix(repo, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
