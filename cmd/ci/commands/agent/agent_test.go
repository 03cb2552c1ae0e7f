package agent

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/cli/prompt"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/launcher"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/internal/proc"
	"github.com/thoreinstein/ci/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newRepo creates a CI repository with Athena and Tester agent directories.
func newRepo(t *testing.T) paths.Repo {
	t.Helper()
	repo := paths.NewRepo(t.TempDir())
	writeFile(t, filepath.Join(repo.AgentDir("Athena"), "README.md"), "# Athena\n\nMemory keeper\n")
	writeFile(t, filepath.Join(repo.AgentDir("Athena"), "MEMORY.md"), "athena memory\n")
	writeFile(t, filepath.Join(repo.AgentDir("Athena"), "ContinuousLearning.md"), "lesson one\n")
	writeFile(t, filepath.Join(repo.AgentDir("Tester"), "README.md"), "# Tester\n\nWrites tests\n")
	require.NoError(t, os.MkdirAll(repo.AgentDir("Manager"), 0o755))
	writeFile(t, repo.AgentsIndex(), "# Agents\n\n### Athena - Memory keeper\nYou are Athena.\n\n### Tester - Writes tests\nYou test.\n")
	return repo
}

// inProject points the working directory at a fresh project and returns its
// config path.
func inProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, project.FileName)
	require.NoError(t, project.New("demo", "1.0.0", []string{"Athena"}, true).Save(path))

	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
	return path
}

func TestRunListWithWriter(t *testing.T) {
	repo := newRepo(t)
	cfg := project.New("demo", "1.0.0", []string{"Athena"}, true)

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runListWithWriter(&buf, repo, cfg))
		out := buf.String()
		assert.Contains(t, out, "STATUS")
		assert.Contains(t, out, "Athena")
		assert.Contains(t, out, "enabled")
		assert.Contains(t, out, "available")
		assert.NotContains(t, out, "Manager")
		assert.Contains(t, out, "2 agents")
	})

	t.Run("enabled only json", func(t *testing.T) {
		listJSON, listEnabledOnly = true, true
		t.Cleanup(func() { listJSON, listEnabledOnly = false, false })

		var buf bytes.Buffer
		require.NoError(t, runListWithWriter(&buf, repo, cfg))
		var got []listEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Athena", got[0].Name)
		assert.Equal(t, project.StatusEnabled, got[0].Status)
	})

	t.Run("enabled only without project", func(t *testing.T) {
		listEnabledOnly = true
		t.Cleanup(func() { listEnabledOnly = false })
		err := runListWithWriter(&bytes.Buffer{}, repo, nil)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	})
}

func TestRunInfoWithWriter(t *testing.T) {
	repo := newRepo(t)

	var buf bytes.Buffer
	require.NoError(t, runInfoWithWriter(&buf, repo, "Athena"))
	out := buf.String()
	assert.Contains(t, out, "Agent: Athena")
	assert.Contains(t, out, "Memory keeper")
	assert.Contains(t, out, "MEMORY.md: 1 lines")
	assert.NotContains(t, out, "Problems")

	buf.Reset()
	require.NoError(t, runInfoWithWriter(&buf, repo, "Tester"))
	assert.Contains(t, buf.String(), "Problems")
	assert.Contains(t, buf.String(), "memory: no memory file")

	err := runInfoWithWriter(&bytes.Buffer{}, repo, "Nobody")
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Contains(t, errors.SuggestionOf(err), "ci agent list")
}

func TestRunCreateWithWriter(t *testing.T) {
	repo := newRepo(t)
	cfgPath := inProject(t)

	createEnable = true
	t.Cleanup(func() { createEnable = false })

	var buf bytes.Buffer
	require.NoError(t, runCreateWithWriter(&buf, repo, "Reviewer"))
	assert.Contains(t, buf.String(), "Created agent Reviewer")
	assert.Contains(t, buf.String(), "enabled in current project")
	assert.DirExists(t, repo.AgentDir("Reviewer"))

	cfg, err := project.Load(cfgPath)
	require.NoError(t, err)
	assert.True(t, cfg.HasAgent("Reviewer"))

	err = runCreateWithWriter(&bytes.Buffer{}, repo, "Reviewer")
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)

	err = runCreateWithWriter(&bytes.Buffer{}, repo, "9lives")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestRunEnableWithWriter(t *testing.T) {
	repo := newRepo(t)
	cfgPath := inProject(t)

	var buf bytes.Buffer
	require.NoError(t, runEnableWithWriter(&buf, repo, "Tester", true))
	assert.Contains(t, buf.String(), "enabled")

	buf.Reset()
	require.NoError(t, runEnableWithWriter(&buf, repo, "Tester", true))
	assert.Contains(t, buf.String(), "already enabled")

	require.NoError(t, runEnableWithWriter(&bytes.Buffer{}, repo, "Athena", false))
	cfg, err := project.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tester"}, cfg.ActiveAgents)
	assert.Equal(t, project.StatusDisabled, cfg.AgentStatus("Athena"))

	assert.Error(t, runEnableWithWriter(&bytes.Buffer{}, repo, "Nobody", true))
}

func TestRunActivateWithWriter(t *testing.T) {
	repo := newRepo(t)

	var buf bytes.Buffer
	require.NoError(t, runActivateWithWriter(&buf, repo, "Athena", "review"))
	out := buf.String()
	assert.Contains(t, out, "Context: review")
	assert.Contains(t, out, "[ATHENA]: <content> -- [ATHENA]")
	assert.Contains(t, out, "athena memory")
	assert.Contains(t, out, "# Continuous Learning")
	assert.Contains(t, out, "lesson one")
}

func TestSwitchAndCurrent(t *testing.T) {
	repo := newRepo(t)
	file := filepath.Join(t.TempDir(), "state", "current_agent")

	var buf bytes.Buffer
	require.NoError(t, runCurrentWithWriter(&buf, file))
	assert.Contains(t, buf.String(), "No current agent")

	require.NoError(t, runSwitchWithWriter(&bytes.Buffer{}, repo, "Athena", file))
	buf.Reset()
	require.NoError(t, runSwitchWithWriter(&buf, repo, "tester", file))
	assert.Contains(t, buf.String(), "Switched from Athena to Tester")

	buf.Reset()
	require.NoError(t, runCurrentWithWriter(&buf, file))
	assert.Equal(t, "Tester\n", buf.String())

	assert.ErrorIs(t, runSwitchWithWriter(&bytes.Buffer{}, repo, "Nobody", file), errors.ErrNotFound)
}

func TestRunLaunchWithWriter(t *testing.T) {
	repo := newRepo(t)
	orig := now
	now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })

	fake := proc.NewFake("claude")
	l := launcher.New("claude", time.Second)
	l.Runner = fake
	var slept []time.Duration
	l.Sleep = func(d time.Duration) { slept = append(slept, d) }

	var buf bytes.Buffer
	require.NoError(t, runLaunchWithWriter(t.Context(), &buf, repo, l, []string{"Athena", "Tester"}))
	assert.Equal(t, []string{"claude code", "claude code"}, fake.Lines())
	assert.Equal(t, []time.Duration{time.Second}, slept)
	assert.Contains(t, buf.String(), "Launched Athena")

	err := runLaunchWithWriter(t.Context(), &bytes.Buffer{}, repo, l, []string{"Ghost"})
	assert.Contains(t, errors.SuggestionOf(err), "Athena, Tester")

	l.Runner = proc.NewFake()
	err = runLaunchWithWriter(t.Context(), &bytes.Buffer{}, repo, l, []string{"Athena"})
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
}

func TestChoicesAndPick(t *testing.T) {
	repo := newRepo(t)

	choices, err := Choices(repo)
	require.NoError(t, err)
	assert.Equal(t, []prompt.Choice{
		{Name: "Athena", Description: "Memory keeper"},
		{Name: "Tester", Description: "Writes tests"},
	}, choices)

	require.NoError(t, os.Remove(repo.AgentsIndex()))
	choices, err = Choices(repo)
	require.NoError(t, err)
	require.Len(t, choices, 2)
	assert.Equal(t, "Writes tests", choices[1].Description)

	orig := pick
	pick = func(_ string, c []prompt.Choice) (string, error) { return c[1].Name, nil }
	t.Cleanup(func() { pick = orig })
	name, err := Pick(repo, "Agent")
	require.NoError(t, err)
	assert.Equal(t, "Tester", name)
}

func TestSignature(t *testing.T) {
	assert.Equal(t, "[CODER]: <content> -- [CODER]", Signature("Coder"))
}
