package agent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
)

var loadTime = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	root := t.TempDir()
	l := NewLoader(root)
	l.Now = func() time.Time { return loadTime }
	l.Getwd = func() (string, error) { return "/work", nil }
	return l, root
}

func TestLoader_Resolve(t *testing.T) {
	l, root := newTestLoader(t)

	_, err := l.Resolve("Athena")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Empty(t, nf.Available)

	writeFile(t, filepath.Join(root, "AGENTS.md"), sampleIndex)
	src, err := l.Resolve("Athena")
	require.NoError(t, err)
	assert.Equal(t, SourceIndex, src.Kind)

	_, err = l.Resolve("Nobody")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"Athena", "Tester", "Écrivain"}, nf.Available)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	writeFile(t, filepath.Join(root, "AGENTS", "Athena", "Athena_memory.md"), "cached")
	src, err = l.Resolve("Athena")
	require.NoError(t, err)
	assert.Equal(t, SourceMemory, src.Kind)

	writeFile(t, filepath.Join(root, "AGENTS", "Athena", "Athena.md"), "direct")
	src, err = l.Resolve("Athena")
	require.NoError(t, err)
	assert.Equal(t, SourceDirect, src.Kind)
	assert.Equal(t, filepath.Join(root, "AGENTS", "Athena", "Athena.md"), src.Path)

	writeFile(t, filepath.Join(root, "AGENTS", "Tester", MemoryFile), "not a load source")
	src, err = l.Resolve("Tester")
	require.NoError(t, err)
	assert.Equal(t, SourceIndex, src.Kind)
}

func TestLoader_LoadFromIndex(t *testing.T) {
	l, root := newTestLoader(t)
	writeFile(t, filepath.Join(root, "AGENTS.md"), sampleIndex)

	res, err := l.Load("Athena", LoadOptions{Context: "review"})
	require.NoError(t, err)

	toolkit := filepath.Join(root, "AGENTS", "Athena")
	assert.True(t, res.CreatedToolkit)
	assert.Equal(t, toolkit, res.ToolkitPath)
	assert.Equal(t, filepath.Join(toolkit, "working_1778051289.md"), res.WorkingPath)
	assert.Equal(t, []string{
		"CI_AGENT_CONTEXT=true",
		"CI_AGENT_TOOLKIT_PATH=" + toolkit,
		"CI_AGENT_NAME=Athena",
		"CI_AGENT_CONTEXT_TYPE=review",
	}, res.Env)

	assert.True(t, strings.HasPrefix(res.Content, "# Agent Memory: Athena\n\n## Athena - Memory architect"))
	assert.Contains(t, res.Content, "```\n"+toolkit+"\n```")
	assert.Contains(t, res.Content, "# Agent Context Information")
	assert.Contains(t, res.Content, "- Context: review")
	assert.Contains(t, res.Content, "- Working directory: /work")

	working, err := os.ReadFile(res.WorkingPath)
	require.NoError(t, err)
	assert.Equal(t, res.Content, string(working))

	cached, err := os.ReadFile(filepath.Join(toolkit, "Athena_memory.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(cached), "Agent Context Information")

	md, ok := LoadMetadata(filepath.Join(toolkit, MetadataFile))
	require.True(t, ok)
	assert.Equal(t, 1, md.UsageCount)
	assert.Equal(t, "Agent Athena", md.Description)
	assert.Equal(t, MetadataVersion, md.Version)
	require.NotNil(t, md.LastUsed)
	assert.Equal(t, "2026-05-06T07:08:09Z", *md.LastUsed)

	var s Session
	data, err := os.ReadFile(res.SessionPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, "Athena", s.AgentName)
	require.NotNil(t, s.Context)
	assert.Equal(t, "review", *s.Context)
	assert.Nil(t, s.EndTime)
}

func TestLoader_LoadDirectWithLearning(t *testing.T) {
	l, root := newTestLoader(t)
	toolkit := filepath.Join(root, "AGENTS", "Tester")
	writeFile(t, filepath.Join(toolkit, "Tester.md"), "# Tester\nRole: Quality guardian\n")
	writeFile(t, filepath.Join(toolkit, LearningFile), "Learned things\n")
	out := filepath.Join(t.TempDir(), "out.md")

	res, err := l.Load("Tester", LoadOptions{OutputPath: out})
	require.NoError(t, err)

	assert.False(t, res.CreatedToolkit)
	assert.Equal(t, out, res.WorkingPath)
	assert.Contains(t, res.Content, "\n\n# Continuous Learning\n\nLearned things\n")
	assert.Contains(t, res.Content, "Role: Quality guardian")
	assert.Len(t, res.Env, 3)
	assert.Equal(t, "Quality guardian", res.Metadata.Description)

	res, err = l.Load("Tester", LoadOptions{OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Metadata.UsageCount)
	assert.Contains(t, res.Content, "- Previous sessions: 2")
}

func TestLoader_LoadNotFound(t *testing.T) {
	l, root := newTestLoader(t)
	writeFile(t, filepath.Join(root, "AGENTS.md"), sampleIndex)

	_, err := l.Load("Ghost", LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.NoDirExists(t, filepath.Join(root, "AGENTS", "Ghost"))
}

func TestFinishSession(t *testing.T) {
	dir := t.TempDir()
	path, s, err := StartSession(dir, "Athena", "", loadTime)
	require.NoError(t, err)
	assert.Nil(t, s.Context)
	assert.Equal(t, filepath.Join(dir, SessionLogsName, "1778051289.json"), path)

	require.NoError(t, FinishSession(path, loadTime.Add(time.Hour)))

	var got Session
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	require.NotNil(t, got.EndTime)
	assert.Equal(t, "2026-05-06T08:08:09Z", *got.EndTime)

	assert.ErrorIs(t, FinishSession(filepath.Join(dir, "none.json"), loadTime), errors.ErrNotFound)
}

func TestCurrent(t *testing.T) {
	file := filepath.Join(t.TempDir(), "state", "current_agent")

	name, err := Current(file)
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, SaveCurrent(file, "Athena"))
	name, err = Current(file)
	require.NoError(t, err)
	assert.Equal(t, "Athena", name)
}

func TestMetadata_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), MetadataFile)
	writeFile(t, path, "{not json")
	_, ok := LoadMetadata(path)
	assert.False(t, ok)
}
