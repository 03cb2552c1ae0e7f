package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"successful write", []byte("hello world\n"), 0o644},
		{"empty data", []byte{}, 0o644},
		{"private file", []byte("secret"), 0o600},
		{"executable", []byte("#!/bin/sh\necho hi\n"), 0o755},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test-file")

			require.NoError(t, AtomicWriteFile(path, tt.data, tt.perm))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(tt.data), string(got))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.perm, info.Mode().Perm())
		})
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o600))

	require.NoError(t, AtomicWriteFile(path, []byte("new\n"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))
}

func TestAtomicWriteFile_NoTempFileLeftOnError(t *testing.T) {
	dir := t.TempDir()
	err := AtomicWriteFile(filepath.Join(dir, "missing", "file.txt"), []byte("data"), 0o600)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	type record struct {
		Name   string   `json:"name"`
		Agents []string `json:"agents"`
	}

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, AtomicWriteJSON(path, record{Name: "demo", Agents: []string{"Athena"}}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "{\n  \"name\": \"demo\",\n  \"agents\": [\n    \"Athena\"\n  ]\n}\n"
	assert.Equal(t, want, string(got))
}

func TestAtomicWriteJSON_Unmarshalable(t *testing.T) {
	err := AtomicWriteJSON(filepath.Join(t.TempDir(), "x.json"), map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestWriteJSON_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ci", "nested", "ideas.json")
	require.NoError(t, WriteJSON(path, []int{1, 2}))

	var got []int
	found, err := ReadJSON(path, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{1, 2}, got)
}

func TestReadJSON(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		var v map[string]any
		found, err := ReadJSON(filepath.Join(dir, "nope.json"), &v)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		var v map[string]any
		found, err := ReadJSON(path, &v)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
		var v map[string]any
		_, err := ReadJSON(path, &v)
		assert.ErrorContains(t, err, "bad.json")
	})
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, AtomicWriteYAML(path, map[string]any{"docs": map[string]int{"port": 8080}}, 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "docs:\n    port: 8080\n", string(got))
}

func TestAtomicWriteYAML_PanicRecovered(t *testing.T) {
	err := AtomicWriteYAML(filepath.Join(t.TempDir(), "x.yaml"), map[string]any{"fn": func() {}}, 0o644)
	assert.Error(t, err)
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "assets", "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.html"), []byte("<html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "assets", "img", "logo.svg"), []byte("<svg/>"), 0o600))

	dst := filepath.Join(t.TempDir(), "site")
	require.NoError(t, CopyDir(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "assets", "img", "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(got))

	info, err := os.Stat(filepath.Join(dst, "assets", "img", "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Error(t, CopyDir(filepath.Join(src, "missing"), dst))
}
