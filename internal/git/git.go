// Package git wraps the git operations ci needs.
//
// Read-only inspection (repository root, branch, status, history, remotes)
// uses go-git. Operations that change the repository or talk to remotes shell
// out to the git binary so they pick up the user's hooks and credentials.
package git

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
)

// Program is the git executable name.
const Program = "git"

// InstallHint is the suggestion shown when git is missing.
const InstallHint = "Install git: https://git-scm.com/downloads"

var (
	allowedSchemes = map[string]bool{"https": true, "http": true, "ssh": true, "git": true, "file": true}
	scpLikeRegex   = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[A-Za-z0-9._~/-]+\.git$`)
)

// IsURL returns true if s looks like a git repository URL.
// It checks for:
//   - URLs containing "://" (e.g., https://, git://)
//   - URLs ending with ".git"
//   - SSH-style URLs starting with "git@"
func IsURL(s string) bool {
	return strings.Contains(s, "://") || strings.HasSuffix(s, ".git") || strings.HasPrefix(s, "git@")
}

// ValidateURL rejects URLs that git could interpret as options or as a
// transport helper. Accepted forms are http(s), ssh, git and file URLs plus
// scp-like user@host:path.git.
func ValidateURL(raw string) error {
	if raw == "" {
		return errors.Wrap(errors.ErrInvalidValue, "empty repository URL")
	}
	if strings.HasPrefix(raw, "-") {
		return errors.Wrapf(errors.ErrInvalidValue, "repository URL %q looks like an option", raw)
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidValue, "repository URL %q: %v", raw, err)
		}
		if !allowedSchemes[u.Scheme] {
			return errors.Wrapf(errors.ErrInvalidValue, "unsupported URL scheme %q", u.Scheme)
		}
		return nil
	}
	if !scpLikeRegex.MatchString(raw) {
		return errors.Wrapf(errors.ErrInvalidValue, "unrecognized repository URL %q", raw)
	}
	return nil
}

// Client runs git commands in Dir.
type Client struct {
	Runner proc.Runner
	Dir    string
}

// New returns a Client for dir backed by the real git binary.
func New(dir string) *Client {
	return &Client{Runner: proc.Default, Dir: dir}
}

// Available reports whether git is on PATH.
func (c *Client) Available() bool {
	return proc.Has(c.Runner, Program)
}

func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	out, err := c.Runner.Output(ctx, proc.Cmd{Name: Program, Args: args, Dir: c.Dir})
	return strings.TrimSpace(string(out)), err
}

// interactive runs git attached to the terminal so credential prompts work.
func (c *Client) interactive(ctx context.Context, args ...string) error {
	return c.Runner.Run(ctx, proc.Cmd{
		Name:   Program,
		Args:   args,
		Dir:    c.Dir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
}

// Clone clones url into dest with the given depth. A depth of zero clones
// the full history.
func (c *Client) Clone(ctx context.Context, rawURL, dest string, depth int) error {
	if err := ValidateURL(rawURL); err != nil {
		return err
	}
	args := []string{"clone"}
	if depth > 0 {
		args = append(args, fmt.Sprintf("--depth=%d", depth))
	}
	args = append(args, "--", rawURL)
	if dest != "" {
		args = append(args, dest)
	}
	return errors.Wrap(c.interactive(ctx, args...), "git clone failed")
}

// Init creates a repository in Dir.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.output(ctx, "init")
	return errors.Wrap(err, "git init failed")
}

// AddAll stages every change in the work tree.
func (c *Client) AddAll(ctx context.Context) error {
	_, err := c.output(ctx, "add", "-A")
	return errors.Wrap(err, "staging changes")
}

// Staged lists the paths staged for commit.
func (c *Client) Staged(ctx context.Context) ([]string, error) {
	out, err := c.output(ctx, "diff", "--staged", "--name-only")
	if err != nil {
		return nil, errors.Wrap(err, "checking staged changes")
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Commit records the staged changes with message.
func (c *Client) Commit(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.Wrap(errors.ErrInvalidValue, "commit message is empty")
	}
	_, err := c.output(ctx, "commit", "-m", message)
	return errors.Wrap(err, "creating commit")
}

// Push pushes the current branch to its upstream.
func (c *Client) Push(ctx context.Context) error {
	return errors.Wrap(c.interactive(ctx, "push"), "pushing to remote")
}

// CheckoutNew creates and switches to branch.
func (c *Client) CheckoutNew(ctx context.Context, branch string) error {
	_, err := c.output(ctx, "checkout", "-b", branch)
	return errors.Wrapf(err, "creating branch %s", branch)
}

// ForcePush replaces branch on the remote at url with HEAD.
func (c *Client) ForcePush(ctx context.Context, url, branch string) error {
	if err := ValidateURL(url); err != nil {
		return err
	}
	return errors.Wrapf(c.interactive(ctx, "push", "--force", url, "HEAD:"+branch),
		"pushing to %s", branch)
}
