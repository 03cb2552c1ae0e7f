package docs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/docs"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
)

func newTestGenerator(t *testing.T) *docs.Generator {
	t.Helper()
	root := &cobra.Command{Use: "ci", Short: "Collaborative Intelligence"}
	root.AddCommand(&cobra.Command{Use: "status", Short: "Show status", Run: func(*cobra.Command, []string) {}})
	g, err := docs.NewGenerator(root, []docs.Agent{{Name: "Athena", Category: "Core"}}, "1.0.0")
	require.NoError(t, err)
	return g
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	var buf bytes.Buffer
	err := runGenerateWithWriter(&buf, newTestGenerator(t), dir, docs.GenerateOptions{Agents: true, Theme: docs.ThemeDark})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, docs.IndexFile))
	assert.FileExists(t, filepath.Join(dir, docs.AgentsFile))
	assert.NoFileExists(t, filepath.Join(dir, docs.InteractiveFile))

	out := buf.String()
	assert.Contains(t, out, "Documentation generated in "+dir)
	assert.Contains(t, out, docs.AgentsFile)
	assert.Contains(t, out, "reference/ (2 commands)")
}

func TestApp(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, runAppWithWriter(&buf, newTestGenerator(t), dir, docs.AppOptions{Interactive: true}))
	assert.FileExists(t, filepath.Join(dir, docs.BuilderFile))
	assert.NoFileExists(t, filepath.Join(dir, docs.VisualizerFile))
	assert.Contains(t, buf.String(), docs.BuilderFile)
}

func TestTheme(t *testing.T) {
	th, err := theme("")
	require.NoError(t, err)
	assert.Equal(t, docs.ThemeAuto, th)

	_, err = theme("neon")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestServe_StopsWhenCancelled(t *testing.T) {
	page := filepath.Join(t.TempDir(), "index.html")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runServeWithWriter(ctx, &buf, newTestGenerator(t), &docs.Server{Port: 0, Page: page}, docs.ThemeLight)
	require.NoError(t, err)
	assert.FileExists(t, page)
	assert.Contains(t, buf.String(), "Serving at http://localhost:0/")
	assert.Contains(t, buf.String(), "Commands")
}

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, docs.IndexFile), []byte("<html>"), 0o644))
	return dir
}

func TestDeployLocal(t *testing.T) {
	d := &docs.Deployer{Runner: proc.NewFake()}
	src := writeSite(t)
	dest := filepath.Join(t.TempDir(), "public")

	var buf bytes.Buffer
	require.NoError(t, runDeployLocalWithWriter(&buf, d, src, dest, false))
	assert.Contains(t, buf.String(), "Copied documentation to "+dest)

	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, runDeployLocalWithWriter(&buf, d, src, link, true))
	err := runDeployLocalWithWriter(&buf, d, src, link, true)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	err = runDeployLocalWithWriter(&buf, d, t.TempDir(), dest, false)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Contains(t, errors.SuggestionOf(err), "ci docs generate")
}

func TestDeployPagesAndVercel(t *testing.T) {
	fake := proc.NewFake("git", "vercel")
	d := &docs.Deployer{Runner: fake, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, runDeployPagesWithWriter(ctx, &buf, d, writeSite(t), "https://github.com/me/docs.git", "pages"))
	assert.Contains(t, buf.String(), "(pages)")
	assert.Contains(t, fake.Lines(), "git push --force https://github.com/me/docs.git HEAD:pages")

	err := runDeployPagesWithWriter(ctx, &buf, d, writeSite(t), "not a url", "")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	require.NoError(t, runDeployVercelWithWriter(ctx, &buf, d, writeSite(t), ""))
	assert.Contains(t, fake.Lines(), "vercel deploy --prod --yes")

	err = runDeployVercelWithWriter(ctx, &buf, &docs.Deployer{Runner: proc.NewFake()}, writeSite(t), "")
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
}
