package visualize

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/visualize"
)

func reset(t *testing.T) *proc.Fake {
	t.Helper()
	fake := proc.NewFake("open", "xdg-open", "cmd")
	old := runner
	runner = fake
	sel = visualize.Selection{Format: "terminal", Theme: "dark"}
	save = false
	opts = visualize.Options{}
	t.Cleanup(func() {
		runner = old
		sel = visualize.Selection{Format: "terminal", Theme: "dark"}
		save = false
		opts = visualize.Options{}
	})
	return fake
}

func sources(t *testing.T) visualize.Sources {
	t.Helper()
	root := &cobra.Command{Use: "ci"}
	agentCmd := &cobra.Command{Use: "agent", Short: "Manage agents"}
	agentCmd.AddCommand(&cobra.Command{Use: "list", Short: "List agents", Run: func(*cobra.Command, []string) {}})
	root.AddCommand(agentCmd, &cobra.Command{Use: "load", Short: "Load an agent", Run: func(*cobra.Command, []string) {}})
	return visualize.Sources{Root: root, Agents: []string{"Athena", "Tester"}, ProjectDir: t.TempDir()}
}

func TestTerminal(t *testing.T) {
	reset(t)
	var buf bytes.Buffer
	err := runVisualizeWithWriter(context.Background(), &buf, visualize.ViewCommands, sources(t), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "CI Commands Overview")
	assert.Contains(t, buf.String(), "agent")
}

func TestWebSave(t *testing.T) {
	fake := reset(t)
	sel.Web = true
	sel.Light = true
	save = true
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, runVisualizeWithWriter(context.Background(), &buf, visualize.ViewAgents, sources(t), dir))
	path := filepath.Join(dir, "ci_agents.html")
	assert.FileExists(t, path)
	assert.Contains(t, buf.String(), "Wrote "+path)
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, []string{path}, fake.Calls[0].Args[len(fake.Calls[0].Args)-1:])
}

func TestOpenFailureIsWarning(t *testing.T) {
	reset(t)
	runner = proc.NewFake()
	sel.SVG = true
	save = true

	var buf bytes.Buffer
	require.NoError(t, runVisualizeWithWriter(context.Background(), &buf, visualize.ViewWorkflows, sources(t), t.TempDir()))
	assert.Contains(t, buf.String(), "Could not open")
}

func TestInvalidInput(t *testing.T) {
	reset(t)
	sel.Format = "pdf"
	err := runVisualizeWithWriter(context.Background(), &bytes.Buffer{}, visualize.ViewOverview, sources(t), t.TempDir())
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.ErrorIs(t, err, errors.ErrInvalidValue)

	reset(t)
	opts.Group = "nope"
	err = runVisualizeWithWriter(context.Background(), &bytes.Buffer{}, visualize.ViewCommands, sources(t), t.TempDir())
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}
