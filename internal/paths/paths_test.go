package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
		return
	}
	want, _ := os.UserHomeDir()
	assert.Equal(t, want, got)
}

func TestXDGDirs(t *testing.T) {
	tests := []struct {
		name string
		fn   func() string
	}{
		{"ConfigHome", ConfigHome},
		{"DataHome", DataHome},
		{"StateHome", StateHome},
		{"CacheHome", CacheHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn()
			if got == "" || !filepath.IsAbs(got) {
				t.Errorf("%s() = %q, want absolute path", tt.name, got)
			}
		})
	}
}

func TestAppDirs(t *testing.T) {
	tests := []struct {
		name   string
		got    string
		base   string
		suffix string
	}{
		{"AppConfigDir", AppConfigDir(), ConfigHome(), "ci"},
		{"AppDataDir", AppDataDir(), DataHome(), "ci"},
		{"DefaultIdeasFile", DefaultIdeasFile(), DataHome(), filepath.Join("ci", "ideas.json")},
		{"CurrentAgentFile", CurrentAgentFile(), StateHome(), filepath.Join("ci", "current_agent")},
		{"DocsCacheDir", DocsCacheDir(), CacheHome(), filepath.Join("ci", "docs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(tt.got, tt.base), "%s = %q, want under %q", tt.name, tt.got, tt.base)
			assert.True(t, strings.HasSuffix(tt.got, tt.suffix), "%s = %q, want suffix %q", tt.name, tt.got, tt.suffix)
		})
	}
}

func TestBrainConfigPath(t *testing.T) {
	home := Home()
	if home == "" {
		t.Skip("Could not determine home directory")
	}
	assert.Equal(t, filepath.Join(home, ".ci_brain_config"), BrainConfigPath())
}

func TestCandidateRepoPaths(t *testing.T) {
	got := CandidateRepoPaths("/home/u")
	want := []string{
		"/home/u/Documents/Projects/CollaborativeIntelligence",
		"/home/u/Projects/CollaborativeIntelligence",
		"/home/u/CollaborativeIntelligence",
		"/usr/local/share/CollaborativeIntelligence",
	}
	assert.Equal(t, want, got)

	assert.Equal(t, []string{"/usr/local/share/CollaborativeIntelligence"}, CandidateRepoPaths(""))
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsRepo(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "CLAUDE.md"), []byte("# CI\n"), 0o644))
	assert.True(t, IsRepo(dir))

	other := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(other, "CLAUDE.md"), 0o755))
	assert.False(t, IsRepo(other), "a directory named CLAUDE.md is not a marker")
}

func TestRepoLayout(t *testing.T) {
	r := NewRepo("/ci")
	assert.Equal(t, "/ci/AGENTS", r.AgentsDir())
	assert.Equal(t, "/ci/AGENTS.md", r.AgentsIndex())
	assert.Equal(t, "/ci/AGENTS/Manager/AGENTS_FULL.md", r.AgentsFull())
	assert.Equal(t, "/ci/AGENTS/Athena", r.AgentDir("Athena"))
	assert.Equal(t, "/ci/docs/cli", r.DocsDir())
	assert.Equal(t, "/ci/web", r.WebDir())
}

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name     string
		perm     os.FileMode
		wantPerm os.FileMode
	}{
		{"default perm", 0, DefaultDirPerm},
		{"custom perm", 0o755, 0o755},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "a", "b")
			require.NoError(t, EnsureDir(dir, tt.perm))
			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
			assert.Equal(t, tt.wantPerm, info.Mode().Perm()&tt.wantPerm)

			// idempotent
			require.NoError(t, EnsureDir(dir, tt.perm))
		})
	}

	assert.ErrorIs(t, EnsureDir("", 0), ErrInvalidPath)
}

func TestExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, Exists(dir))
	assert.True(t, Exists(file))
	assert.False(t, Exists(filepath.Join(dir, "missing")))
	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
}
