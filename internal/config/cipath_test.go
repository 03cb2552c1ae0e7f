package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestResolver_Resolve(t *testing.T) {
	home := t.TempDir()
	checkout := filepath.Join(home, "Projects", "CollaborativeIntelligence")
	require.NoError(t, os.MkdirAll(checkout, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(checkout, "CLAUDE.md"), []byte("#"), 0o644))

	flagDir := t.TempDir()
	envDir := t.TempDir()
	cfgDir := t.TempDir()

	tests := []struct {
		name string
		r    Resolver
		want string
	}{
		{
			name: "flag wins",
			r:    Resolver{Flag: flagDir, Getenv: envMap(map[string]string{"CI_PATH": envDir}), Home: home},
			want: flagDir,
		},
		{
			name: "env before config",
			r:    Resolver{Configured: cfgDir, Getenv: envMap(map[string]string{"CI_PATH": envDir}), Home: home},
			want: envDir,
		},
		{
			name: "missing env falls through to config",
			r:    Resolver{Configured: cfgDir, Getenv: envMap(map[string]string{"CI_PATH": "/does/not/exist"}), Home: home},
			want: cfgDir,
		},
		{
			name: "well-known checkout with marker",
			r:    Resolver{Getenv: envMap(nil), Home: home},
			want: checkout,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.r.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_NotFound(t *testing.T) {
	r := Resolver{Getenv: envMap(nil), Home: t.TempDir()}
	if _, err := os.Stat("/usr/local/share/CollaborativeIntelligence/CLAUDE.md"); err == nil {
		t.Skip("system-wide checkout present")
	}

	_, err := r.Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCIPathNotFound))
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Contains(t, errors.SuggestionOf(err), "CI_PATH")
}

func TestResolver_BadFlag(t *testing.T) {
	_, err := Resolver{Flag: "/no/such/dir", Getenv: envMap(nil)}.Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCIPathNotFound))
}
