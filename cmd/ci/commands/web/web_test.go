package web

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
)

func useFake(t *testing.T, programs ...string) *proc.Fake {
	t.Helper()
	fake := proc.NewFake(programs...)
	old := runner
	runner = fake
	t.Cleanup(func() { runner = old })
	return fake
}

func webDir(t *testing.T, pkg string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0o644))
	return dir
}

func TestOpen(t *testing.T) {
	fake := useFake(t, "npm")
	dir := webDir(t, `{"name": "portal"}`)

	var buf bytes.Buffer
	require.NoError(t, runOpenWithWriter(context.Background(), &buf, dir))
	assert.Equal(t, []string{"npm start"}, fake.Lines())
	assert.Equal(t, dir, fake.Calls[0].Dir)
	assert.Contains(t, buf.String(), "Starting development server")
}

func TestOpen_Errors(t *testing.T) {
	useFake(t)

	err := runOpenWithWriter(context.Background(), &bytes.Buffer{}, t.TempDir())
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	err = runOpenWithWriter(context.Background(), &bytes.Buffer{}, webDir(t, `{}`))
	assert.ErrorIs(t, err, errors.ErrToolNotFound)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
}

func TestDeploy(t *testing.T) {
	tests := []struct {
		name      string
		pkg       string
		setup     func(t *testing.T, dir string)
		wantLines []string
		wantOut   string
	}{
		{
			name:      "vercel",
			pkg:       `{}`,
			setup:     func(t *testing.T, dir string) { require.NoError(t, os.Mkdir(filepath.Join(dir, ".vercel"), 0o755)) },
			wantLines: []string{"npm run build", "vercel --prod --yes"},
			wantOut:   "Deployed to Vercel",
		},
		{
			name:      "deploy script",
			pkg:       `{"scripts": {"deploy": "gh-pages -d build"}}`,
			wantLines: []string{"npm run build", "npm run deploy"},
			wantOut:   "npm run deploy",
		},
		{
			name:      "manual",
			pkg:       `{"scripts": {"build": "vite build"}}`,
			setup:     func(t *testing.T, dir string) { require.NoError(t, os.Mkdir(filepath.Join(dir, "dist"), 0o755)) },
			wantLines: []string{"npm run build"},
			wantOut:   "dist",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := useFake(t, "npm", "vercel")
			dir := webDir(t, tt.pkg)
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			var buf bytes.Buffer
			require.NoError(t, runDeployWithWriter(context.Background(), &buf, dir))
			assert.Equal(t, tt.wantLines, fake.Lines())
			assert.Contains(t, buf.String(), tt.wantOut)
		})
	}
}

func TestDeploy_BuildFails(t *testing.T) {
	fake := useFake(t, "npm")
	fake.Errors["npm run build"] = errors.New("exit status 1")

	err := runDeployWithWriter(context.Background(), &bytes.Buffer{}, webDir(t, `{}`))
	assert.ErrorContains(t, err, "build failed")
}
