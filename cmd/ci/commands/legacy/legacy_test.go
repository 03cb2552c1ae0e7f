package legacy

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
)

func testRoot() *cobra.Command {
	root := &cobra.Command{Use: "ci"}
	for _, name := range []string{"status", "deploy", "commit", "ignore"} {
		root.AddCommand(&cobra.Command{Use: name, Run: func(*cobra.Command, []string) {}})
	}
	return root
}

func TestAvailable(t *testing.T) {
	has := available(testRoot())
	assert.True(t, has("deploy"))
	assert.False(t, has("integrate"))
}

func TestRun(t *testing.T) {
	fake := proc.NewFake()
	oldRunner, oldExe := runner, executable
	runner = fake
	executable = func() (string, error) { return "/opt/ci", nil }
	t.Cleanup(func() { runner, executable = oldRunner, oldExe })

	require.NoError(t, runRun(context.Background(), "stage-commit-push", []string{"-m", "x"}, available(testRoot())))
	assert.Equal(t, []string{"/opt/ci deploy -m x"}, fake.Lines())

	err := runRun(context.Background(), "integrate", nil, available(testRoot()))
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	err = runRun(context.Background(), "bogus", nil, available(testRoot()))
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Len(t, fake.Calls, 1)
}

func TestList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runListWithWriter(&buf, available(testRoot())))
	out := buf.String()
	assert.Contains(t, out, "Git Commands")
	assert.Contains(t, out, "ci deploy")
	assert.Contains(t, out, "ci integrate (not available)")
}

func TestLinkUnlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ci")
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0o755))
	bin := filepath.Join(dir, "bin")

	var buf bytes.Buffer
	require.NoError(t, runLinkWithWriter(&buf, bin, target))
	assert.Contains(t, buf.String(), "Linked 12 legacy commands")

	buf.Reset()
	require.NoError(t, runLinkWithWriter(&buf, bin, target))
	assert.Contains(t, buf.String(), "Skipped existing")

	buf.Reset()
	require.NoError(t, runUnlinkWithWriter(&buf, bin))
	assert.Contains(t, buf.String(), "Removed 12 legacy symlinks")

	buf.Reset()
	require.NoError(t, runUnlinkWithWriter(&buf, bin))
	assert.Contains(t, buf.String(), "No legacy symlinks")
}

func TestResolveBinDir(t *testing.T) {
	assert.Equal(t, "/flag", resolveBinDir("/flag"))
	assert.NotEmpty(t, resolveBinDir(""))
}
