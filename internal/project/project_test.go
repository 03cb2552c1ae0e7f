package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
)

func fixedClock(t *testing.T, ts time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
}

func TestNew_Defaults(t *testing.T) {
	fixedClock(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	cfg := New("demo", "1.2.0", nil, true)

	assert.Equal(t, "demo", cfg.ProjectName)
	assert.Equal(t, "1.2.0", cfg.CIVersion)
	assert.Equal(t, []string{"Athena", "ProjectArchitect"}, cfg.ActiveAgents)
	assert.True(t, cfg.FastActivation)
	assert.Equal(t, "2026-01-02T03:04:05Z", cfg.CreatedAt)
	assert.Equal(t, cfg.CreatedAt, cfg.UpdatedAt)
	assert.NotNil(t, cfg.Metadata)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	fixedClock(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	path := filepath.Join(t.TempDir(), FileName)

	cfg := New("demo", "1.0.0", []string{"Athena", "Tester"}, false)
	cfg.AutoAccept = AutoAccept{AgentLoad: true, Agents: []string{"Athena"}}
	cfg.SetMetadata("integration_type", "override")
	cfg.SetMetadata("limits", map[string]any{"max": float64(3)})
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"project_name\": \"demo\"")
	assert.Contains(t, string(data), "\"auto_accept\": {")
}

func TestSave_BumpsUpdatedAt(t *testing.T) {
	fixedClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := New("demo", "1.0.0", nil, true)

	fixedClock(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, cfg.Save(filepath.Join(t.TempDir(), FileName)))

	assert.Equal(t, "2026-01-01T00:00:00Z", cfg.CreatedAt)
	assert.Equal(t, "2026-02-01T00:00:00Z", cfg.UpdatedAt)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestLoad_MinimalFileNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"project_name":"x","ci_version":"0.1","created_at":"","updated_at":"","active_agents":null,"fast_activation":true}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{}, cfg.ActiveAgents)
	assert.Equal(t, map[string]any{}, cfg.Metadata)
	assert.False(t, cfg.AutoAccept.Global)
}

func TestFindNearest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg := New("root", "1.0.0", nil, true)
	require.NoError(t, cfg.Save(filepath.Join(root, FileName)))

	// unparseable file in between is skipped
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", FileName), []byte("not json"), 0o644))

	path, got, err := FindNearest(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
	assert.Equal(t, "root", got.ProjectName)
}

func TestFindNearest_None(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := FindNearest(filepath.Dir(dir)); err == nil {
		t.Skip("a .ci-config.json exists above the temp dir")
	}
	_, _, err := FindNearest(dir)
	assert.True(t, errors.Is(err, ErrNoConfig))
}

func TestAutoAccept_ShouldAutoAccept(t *testing.T) {
	tests := []struct {
		name   string
		a      AutoAccept
		agent  string
		action string
		want   bool
	}{
		{"global", AutoAccept{Global: true}, "Any", "other", true},
		{"agent listed case-insensitive", AutoAccept{Agents: []string{"athena"}}, "Athena", "other", true},
		{"load switch", AutoAccept{AgentLoad: true}, "X", "load", true},
		{"activate switch", AutoAccept{AgentActivate: true}, "X", "activate", true},
		{"load switch does not cover activate", AutoAccept{AgentLoad: true}, "X", "activate", false},
		{"unknown action", AutoAccept{AgentLoad: true, AgentActivate: true}, "X", "delete", false},
		{"nothing set", AutoAccept{}, "X", "load", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ShouldAutoAccept(tt.agent, tt.action))
		})
	}
}

func TestEnableDisableAgent(t *testing.T) {
	cfg := New("demo", "1", []string{"Athena"}, true)

	assert.True(t, cfg.EnableAgent("Tester"))
	assert.False(t, cfg.EnableAgent("tester"), "already enabled, case-insensitive")
	assert.Equal(t, []string{"Athena", "Tester"}, cfg.ActiveAgents)

	assert.True(t, cfg.DisableAgent("ATHENA"))
	assert.False(t, cfg.DisableAgent("Ghost"))
	assert.Equal(t, []string{"Tester"}, cfg.ActiveAgents)
}

func TestAgentStatus(t *testing.T) {
	cfg := New("demo", "1", []string{"Athena"}, true)

	assert.Equal(t, StatusEnabled, cfg.AgentStatus("athena"))
	assert.Equal(t, StatusAvailable, cfg.AgentStatus("Tester"))

	cfg.DisableAgent("Tester")
	cfg.DisableAgent("tester")
	assert.Equal(t, StatusDisabled, cfg.AgentStatus("Tester"))
	assert.Equal(t, []string{"tester"}, cfg.DisabledAgents())

	cfg.EnableAgent("Tester")
	assert.Equal(t, StatusEnabled, cfg.AgentStatus("Tester"))
	assert.Empty(t, cfg.DisabledAgents())
	assert.NotContains(t, cfg.Metadata, MetaDisabledAgents)
}
