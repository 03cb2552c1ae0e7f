package session

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
)

var fixedNow = time.Date(2026, 5, 6, 12, 0, 0, 0, time.UTC)

// newRepo records a fresh Athena session, a 45 day old finished Athena session
// and a two hour old Tester session.
func newRepo(t *testing.T) (paths.Repo, map[string]string) {
	t.Helper()
	repo := paths.NewRepo(t.TempDir())
	ids := map[string]string{}

	record := func(key, name string, at time.Time, finish bool) {
		path, _, err := agent.StartSession(repo.AgentDir(name), name, "", at)
		require.NoError(t, err)
		if finish {
			require.NoError(t, agent.FinishSession(path, at.Add(time.Hour)))
		}
		ids[key] = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	record("fresh", "Athena", fixedNow.Add(-10*time.Minute), false)
	record("old", "Athena", fixedNow.Add(-45*24*time.Hour), true)
	record("tester", "Tester", fixedNow.Add(-2*time.Hour), true)

	orig := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = orig })
	return repo, ids
}

func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		listAgent, listStatus, listRecent, listJSON = "", "", 10, false
		cleanupDays, cleanupDryRun = 30, false
	}
	reset()
	t.Cleanup(reset)
}

func TestList(t *testing.T) {
	repo, ids := newRepo(t)

	t.Run("table", func(t *testing.T) {
		resetFlags(t)
		var buf bytes.Buffer
		require.NoError(t, runListWithWriter(&buf, repo))
		out := buf.String()
		assert.Contains(t, out, "AGENT")
		assert.Contains(t, out, ids["fresh"])
		assert.Contains(t, out, "10 minutes ago")
		assert.Contains(t, out, "3 sessions")
	})

	t.Run("filters", func(t *testing.T) {
		resetFlags(t)
		listAgent, listStatus = "athena", "completed"
		var buf bytes.Buffer
		require.NoError(t, runListWithWriter(&buf, repo))
		out := buf.String()
		assert.Contains(t, out, ids["old"])
		assert.NotContains(t, out, ids["fresh"])
		assert.Contains(t, out, "1 session\n")
	})

	t.Run("recent json", func(t *testing.T) {
		resetFlags(t)
		listRecent, listJSON = 2, true
		var buf bytes.Buffer
		require.NoError(t, runListWithWriter(&buf, repo))
		var got []listEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, ids["fresh"], got[0].ID)
		assert.Equal(t, agent.SessionActive, got[0].Status)
		assert.Equal(t, "Tester", got[1].Agent)
	})

	t.Run("none", func(t *testing.T) {
		resetFlags(t)
		listStatus = "archived"
		var buf bytes.Buffer
		require.NoError(t, runListWithWriter(&buf, repo))
		assert.Contains(t, buf.String(), "No sessions found")
	})

	t.Run("bad status", func(t *testing.T) {
		resetFlags(t)
		listStatus = "paused"
		err := runListWithWriter(&bytes.Buffer{}, repo)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	})
}

func TestInfoAndArchive(t *testing.T) {
	repo, ids := newRepo(t)

	var buf bytes.Buffer
	require.NoError(t, runInfoWithWriter(&buf, repo, "Athena", ids["old"]))
	out := buf.String()
	assert.Contains(t, out, "Session: "+ids["old"])
	assert.Contains(t, out, "Status: completed")
	assert.Contains(t, out, "Ended:")

	buf.Reset()
	require.NoError(t, runArchiveWithWriter(&buf, repo, "Athena", ids["old"]))
	assert.Contains(t, buf.String(), "Archived session "+ids["old"]+" of Athena")

	buf.Reset()
	require.NoError(t, runArchiveWithWriter(&buf, repo, "Athena", ids["old"]))
	assert.Contains(t, buf.String(), "already archived")

	buf.Reset()
	require.NoError(t, runInfoWithWriter(&buf, repo, "Athena", ids["old"]))
	assert.Contains(t, buf.String(), "Status: archived")

	err := runInfoWithWriter(&bytes.Buffer{}, repo, "Athena", "42")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	err = runArchiveWithWriter(&bytes.Buffer{}, repo, "Ghost", ids["old"])
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestInfo_InvalidRecord(t *testing.T) {
	repo, _ := newRepo(t)
	path := filepath.Join(repo.AgentDir("Tester"), agent.SessionLogsName, "1700000000.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, runInfoWithWriter(&buf, repo, "Tester", "1700000000"))
	assert.Contains(t, buf.String(), "not valid JSON")

	err := runArchiveWithWriter(&bytes.Buffer{}, repo, "Tester", "1700000000")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestCleanup(t *testing.T) {
	repo, ids := newRepo(t)

	resetFlags(t)
	cleanupDryRun = true
	var buf bytes.Buffer
	require.NoError(t, runCleanupWithWriter(&buf, repo))
	out := buf.String()
	assert.Contains(t, out, "Dry run")
	assert.Contains(t, out, "Athena / "+ids["old"])
	assert.Contains(t, out, "Would archive 1 session")

	cleanupDryRun = false
	buf.Reset()
	require.NoError(t, runCleanupWithWriter(&buf, repo))
	assert.Contains(t, buf.String(), "Archived 1 session")

	rec, err := agent.FindSession(repo.AgentDir("Athena"), ids["old"])
	require.NoError(t, err)
	assert.Equal(t, agent.SessionArchived, rec.State())

	cleanupDays = 0
	buf.Reset()
	require.NoError(t, runCleanupWithWriter(&buf, repo))
	assert.Contains(t, buf.String(), "Archived 2 sessions")
}
