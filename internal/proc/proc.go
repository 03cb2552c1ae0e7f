// Package proc runs external programs such as git, gh, npm and claude.
//
// Commands go through the Runner interface so callers can be tested without
// the programs installed.
package proc

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/logging"
)

// Cmd describes one invocation.
type Cmd struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current one.
	Dir string

	// Env entries are appended to the parent environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line for logs and messages.
func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes commands.
type Runner interface {
	// Run starts the command and waits for it to exit.
	Run(ctx context.Context, c Cmd) error

	// Start launches the command without waiting for it.
	Start(ctx context.Context, c Cmd) error

	// Output runs the command and returns its standard output.
	Output(ctx context.Context, c Cmd) ([]byte, error)

	// LookPath reports the path of an executable on PATH.
	LookPath(name string) (string, error)
}

// Exec runs commands with os/exec.
type Exec struct{}

// Default is the Runner used outside tests.
var Default Runner = Exec{}

// Run implements Runner.
func (Exec) Run(ctx context.Context, c Cmd) error {
	cmd := build(ctx, c, true)
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed", c.Name)
	}
	return nil
}

// Start implements Runner. The child is released so it outlives ci.
func (Exec) Start(ctx context.Context, c Cmd) error {
	cmd := build(ctx, c, false)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting %s", c.Name)
	}
	logging.FromContext(ctx).Debug("started process", "cmd", c.Name, "pid", cmd.Process.Pid)
	return errors.Wrap(cmd.Process.Release(), "releasing process")
}

// Output implements Runner. Standard error is included in the returned
// error when the command fails.
func (Exec) Output(ctx context.Context, c Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	if c.Stderr == nil {
		c.Stderr = &stderr
	}
	c.Stdout = nil
	cmd := build(ctx, c, true)
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, errors.Wrapf(err, "%s failed: %s", c.Name, msg)
		}
		return out, errors.Wrapf(err, "%s failed", c.Name)
	}
	return out, nil
}

// LookPath implements Runner.
func (Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Has reports whether name is on PATH according to r.
func Has(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}

// build prepares c. Unbound commands are not killed when ctx ends.
func build(ctx context.Context, c Cmd, bound bool) *exec.Cmd {
	logging.FromContext(ctx).Debug("exec", "cmd", c.String(), "dir", c.Dir)

	var cmd *exec.Cmd
	if bound {
		cmd = exec.CommandContext(ctx, c.Name, c.Args...)
	} else {
		cmd = exec.Command(c.Name, c.Args...)
	}
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd
}

// OpenCommand returns the command that opens target with the desktop's
// default handler on goos.
func OpenCommand(goos, target string) Cmd {
	switch goos {
	case "darwin":
		return Cmd{Name: "open", Args: []string{target}}
	case "windows":
		return Cmd{Name: "cmd", Args: []string{"/c", "start", target}}
	default:
		return Cmd{Name: "xdg-open", Args: []string{target}}
	}
}

// Open launches the default handler for a URL or file without waiting.
func Open(ctx context.Context, r Runner, target string) error {
	c := OpenCommand(runtime.GOOS, target)
	if !Has(r, c.Name) {
		return errors.Wrapf(errors.ErrToolNotFound, "%s is not available to open %s", c.Name, target)
	}
	return r.Start(ctx, c)
}
