// Package launcher starts the assistant CLI with an agent's working memory on
// its standard input.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/logging"
	"github.com/thoreinstein/ci/internal/proc"
)

// DefaultCommand is the assistant executable.
const DefaultCommand = "claude"

// DefaultDelay separates spawns in LaunchAll.
const DefaultDelay = time.Second

// InstallHint is shown when the assistant is not installed.
const InstallHint = "Install Claude Code: https://docs.anthropic.com/claude-code"

// Launcher runs the assistant CLI.
type Launcher struct {
	Runner  proc.Runner
	Command string
	Delay   time.Duration

	// Sleep waits between spawns; replaceable in tests.
	Sleep func(time.Duration)

	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Launcher for command using the default runner.
func New(command string, delay time.Duration) *Launcher {
	if command == "" {
		command = DefaultCommand
	}
	return &Launcher{
		Runner:  proc.Default,
		Command: command,
		Delay:   delay,
		Sleep:   time.Sleep,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Available reports whether the assistant is on PATH.
func (l *Launcher) Available() bool {
	return proc.Has(l.Runner, l.Command)
}

// ManualInstructions lists the commands a user can run to start the
// assistant with memoryPath themselves.
func (l *Launcher) ManualInstructions(memoryPath string) []string {
	return []string{
		fmt.Sprintf("cat %s | %s code", memoryPath, l.Command),
		"# or",
		fmt.Sprintf("%s code < %s", l.Command, memoryPath),
	}
}

// Launch runs "<command> code" with memoryPath on stdin and waits for it to
// exit.
func (l *Launcher) Launch(ctx context.Context, memoryPath string, env []string) error {
	if !l.Available() {
		return errors.NewToolError(l.Command, InstallHint)
	}
	f, err := os.Open(memoryPath)
	if err != nil {
		return errors.Wrap(err, "opening working memory")
	}
	defer f.Close()

	return l.Runner.Run(ctx, proc.Cmd{
		Name:   l.Command,
		Args:   []string{"code"},
		Env:    env,
		Stdin:  f,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	})
}

// Job is one agent started by LaunchAll.
type Job struct {
	Agent      string
	MemoryPath string
	Env        []string
}

// Result reports the outcome of starting one Job.
type Result struct {
	Job Job
	Err error
}

// LaunchAll spawns one assistant per job in order, sleeping Delay between
// spawns. It does not wait for the children. A failed spawn is reported in
// its Result and does not stop the remaining jobs.
func (l *Launcher) LaunchAll(ctx context.Context, jobs []Job) ([]Result, error) {
	if !l.Available() {
		return nil, errors.NewToolError(l.Command, InstallHint)
	}
	logger := logging.FromContext(ctx)

	results := make([]Result, 0, len(jobs))
	for i, job := range jobs {
		if i > 0 && l.Delay > 0 {
			l.Sleep(l.Delay)
		}
		err := l.start(ctx, job)
		if err != nil {
			logger.Warn("agent launch failed", "agent", job.Agent, "error", err)
		} else {
			logger.Info("agent launched", "agent", job.Agent)
		}
		results = append(results, Result{Job: job, Err: err})
	}
	return results, nil
}

func (l *Launcher) start(ctx context.Context, job Job) error {
	f, err := os.Open(job.MemoryPath)
	if err != nil {
		return errors.Wrapf(err, "opening working memory for %s", job.Agent)
	}
	// The child holds its own descriptor once started.
	defer f.Close()

	return l.Runner.Start(ctx, proc.Cmd{
		Name:   l.Command,
		Args:   []string{"code"},
		Env:    job.Env,
		Stdin:  f,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	})
}
