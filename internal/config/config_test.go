package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
)

func TestInit(t *testing.T) {
	Init()

	assert.Equal(t, DefaultLaunchDelay, viper.GetDuration(KeyLaunchDelay))
	assert.Equal(t, "claude", viper.GetString(KeyLaunchCommand))
	assert.Equal(t, 8080, viper.GetInt(KeyDocsPort))
	assert.Equal(t, "auto", viper.GetString(KeyDocsTheme))
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CI_CONFIG_DIR", t.TempDir())
	Init()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDocsPort, cfg.Docs.Port)
}

func TestLoad_WithConfigFile(t *testing.T) {
	Init()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("launch:\n  delay: 3s\n  command: claude-beta\ndocs:\n  port: 9000\n  theme: dark\n")
	require.NoError(t, os.WriteFile(configPath, content, 0o600))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Launch.Delay)
	assert.Equal(t, "claude-beta", cfg.Launch.Command)
	assert.Equal(t, 9000, cfg.Docs.Port)
	assert.Equal(t, "dark", cfg.Docs.Theme)
	assert.Equal(t, configPath, FileUsed())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CI_CONFIG_DIR", t.TempDir())
	t.Setenv("CI_DOCS_PORT", "9191")
	Init()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Docs.Port)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"negative delay", "launch:\n  delay: -1s\n", ErrNegativeDelay},
		{"bad port", "docs:\n  port: 70000\n", ErrInvalidPort},
		{"bad theme", "docs:\n  theme: neon\n", ErrInvalidTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init()

			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0o600))

			_, err := Load(configPath)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	dir := t.TempDir()
	fileA := filepath.Join(dir, "config_a.yaml")
	require.NoError(t, os.WriteFile(fileA, []byte("docs:\n  port: 1234\n"), 0o600))

	Init()
	_, err := Load(fileA)
	require.NoError(t, err)

	t.Chdir(t.TempDir())
	dirB := t.TempDir()
	t.Setenv("CI_CONFIG_DIR", dirB)
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "config.yaml"), []byte("docs:\n  port: 4321\n"), 0o600))

	Init()
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.Docs.Port)
}

func TestValidate(t *testing.T) {
	valid := &Config{Launch: LaunchConfig{Delay: time.Second}, Docs: DocsConfig{Port: 80, Theme: "light"}}
	assert.Empty(t, Validate(valid))

	assert.Len(t, Validate(nil), 1)

	bad := &Config{
		Docs:  DocsConfig{Port: 80},
		Ideas: IdeasConfig{File: "a\x00b"},
	}
	errs := Validate(bad)
	require.Len(t, errs, 1)
	var pathErr *PathError
	require.True(t, errors.As(errs[0], &pathErr))
	assert.Equal(t, KeyIdeasFile, pathErr.Field)
}

func TestConfig_WriteFile(t *testing.T) {
	Init()
	viper.Set(KeyLaunchDelay, 2*time.Second)
	viper.Set(KeyDocsTheme, "dark")

	path := filepath.Join(t.TempDir(), "ci", "config.yaml")
	require.NoError(t, Current().WriteFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "delay: 2s")

	Init()
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Launch.Delay)
	assert.Equal(t, "dark", cfg.Docs.Theme)
	assert.Equal(t, DefaultLaunchCommand, cfg.Launch.Command)
}
