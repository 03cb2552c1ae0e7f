package proc

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/term"
)

// Fake is a Runner that records commands instead of running them.
type Fake struct {
	mu sync.Mutex

	// Calls lists every command passed to Run, Start or Output.
	Calls []Cmd

	// Paths maps program names to the path LookPath returns. Missing names
	// are reported as not found.
	Paths map[string]string

	// Outputs maps a command line (Cmd.String) to its standard output.
	Outputs map[string]string

	// Errors maps a command line to the error it fails with.
	Errors map[string]error

	// Stdin captures what each command would have read from its stdin.
	// Commands attached to a terminal file are not read.
	Stdin []string
}

// NewFake returns a Fake that finds the given programs on PATH.
func NewFake(programs ...string) *Fake {
	f := &Fake{Paths: map[string]string{}, Outputs: map[string]string{}, Errors: map[string]error{}}
	for _, p := range programs {
		f.Paths[p] = "/usr/bin/" + p
	}
	return f
}

func (f *Fake) record(c Cmd) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
	if c.Stdin != nil && !isTerminal(c.Stdin) {
		data, _ := io.ReadAll(c.Stdin)
		f.Stdin = append(f.Stdin, string(data))
	}
	if out, ok := f.Outputs[c.String()]; ok && c.Stdout != nil {
		_, _ = io.WriteString(c.Stdout, out)
	}
	return f.Errors[c.String()]
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, c Cmd) error { return f.record(c) }

// Start implements Runner.
func (f *Fake) Start(_ context.Context, c Cmd) error { return f.record(c) }

// Output implements Runner.
func (f *Fake) Output(_ context.Context, c Cmd) ([]byte, error) {
	c.Stdout = nil
	err := f.record(c)
	f.mu.Lock()
	defer f.mu.Unlock()
	return []byte(f.Outputs[c.String()]), err
}

// LookPath implements Runner.
func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "", exec.ErrNotFound
}

// Lines returns the recorded command lines.
func (f *Fake) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}
