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

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func TestFinder_Find(t *testing.T) {
	home := t.TempDir()

	t.Run("walks up from cwd", func(t *testing.T) {
		root := t.TempDir()
		web := mkdir(t, root, "CollaborativeIntelligence", "web")
		cwd := mkdir(t, root, "a", "b")
		got, err := Finder{Cwd: cwd, Home: home}.Find()
		require.NoError(t, err)
		assert.Equal(t, web, got)
	})

	t.Run("ci path fallback", func(t *testing.T) {
		ci := t.TempDir()
		web := mkdir(t, ci, "web")
		got, err := Finder{Cwd: t.TempDir(), Home: home, CIPath: ci}.Find()
		require.NoError(t, err)
		assert.Equal(t, web, got)
	})

	t.Run("documents fallback", func(t *testing.T) {
		h := t.TempDir()
		web := mkdir(t, h, "Documents", "Projects", "CollaborativeIntelligence", "web")
		got, err := Finder{Cwd: t.TempDir(), Home: h}.Find()
		require.NoError(t, err)
		assert.Equal(t, web, got)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Finder{Cwd: t.TempDir(), Home: home}.Find()
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func newPortal(t *testing.T, pkg string, programs ...string) (*Portal, *proc.Fake) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageFile), []byte(pkg), 0o644))
	p, err := New(dir)
	require.NoError(t, err)
	fake := proc.NewFake(programs...)
	p.Runner = fake
	p.Stdout, p.Stderr = &bytes.Buffer{}, &bytes.Buffer{}
	return p, fake
}

func TestNew_RequiresPackage(t *testing.T) {
	_, err := New(t.TempDir())
	assert.ErrorIs(t, err, ErrNoPackage)
}

func TestPortal_Start(t *testing.T) {
	p, fake := newPortal(t, `{}`, "npm")
	require.NoError(t, p.Start(context.Background()))
	assert.Equal(t, []string{"npm start"}, fake.Lines())
	assert.Equal(t, p.Dir, fake.Calls[0].Dir)

	p, _ = newPortal(t, `{}`)
	assert.ErrorIs(t, p.Start(context.Background()), errors.ErrToolNotFound)
}

func TestPortal_Deploy(t *testing.T) {
	ctx := context.Background()

	t.Run("vercel", func(t *testing.T) {
		p, fake := newPortal(t, `{"scripts": {"deploy": "x"}}`, "npm", "vercel")
		mkdir(t, p.Dir, ".vercel")
		res, err := p.Deploy(ctx)
		require.NoError(t, err)
		assert.Equal(t, TargetVercel, res.Target)
		assert.Equal(t, []string{"npm run build", "vercel --prod --yes"}, fake.Lines())
	})

	t.Run("deploy script", func(t *testing.T) {
		p, fake := newPortal(t, `{"scripts": {"build": "b", "deploy": "d"}}`, "npm")
		res, err := p.Deploy(ctx)
		require.NoError(t, err)
		assert.Equal(t, TargetScript, res.Target)
		assert.Equal(t, []string{"npm run build", "npm run deploy"}, fake.Lines())
	})

	t.Run("manual", func(t *testing.T) {
		p, fake := newPortal(t, `{"name": "deploy", "scripts": {"build": "b"}}`, "npm")
		dist := mkdir(t, p.Dir, "dist")
		res, err := p.Deploy(ctx)
		require.NoError(t, err)
		assert.Equal(t, TargetManual, res.Target)
		assert.Equal(t, dist, res.BuildDir)
		assert.Equal(t, []string{"npm run build"}, fake.Lines())
	})

	t.Run("build failure stops", func(t *testing.T) {
		p, fake := newPortal(t, `{}`, "npm")
		fake.Errors["npm run build"] = errors.New("exit status 1")
		_, err := p.Deploy(ctx)
		assert.ErrorContains(t, err, "build failed")
		assert.Len(t, fake.Calls, 1)
	})
}
