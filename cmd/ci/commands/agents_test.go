package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/paths"
)

func TestAgents(t *testing.T) {
	origJSON := agentsJSON
	t.Cleanup(func() { agentsJSON = origJSON })
	agentsJSON = false

	root := newRepo(t)
	repo := paths.NewRepo(root)

	var buf bytes.Buffer
	require.NoError(t, runAgentsWithWriter(&buf, repo))
	assert.Contains(t, buf.String(), "### Athena - Memory architect")

	require.NoError(t, os.Remove(filepath.Join(root, "AGENTS.md")))
	buf.Reset()
	require.NoError(t, runAgentsWithWriter(&buf, repo))
	assert.Contains(t, buf.String(), "Available Agents")
	assert.Contains(t, buf.String(), "Athena")
	assert.Contains(t, buf.String(), "1 agents")

	agentsJSON = true
	buf.Reset()
	require.NoError(t, runAgentsWithWriter(&buf, repo))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
}
