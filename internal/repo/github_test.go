package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/proc"
)

const viewJSON = `{
  "name": "demo",
  "description": "A demo",
  "url": "https://github.com/me/demo",
  "visibility": "PRIVATE",
  "stargazerCount": 3,
  "forkCount": 1,
  "defaultBranchRef": {"name": "main"},
  "isArchived": false,
  "isFork": false,
  "owner": {"login": "me"},
  "createdAt": "2026-01-01T00:00:00Z",
  "updatedAt": "2026-02-01T00:00:00Z",
  "languages": [{"size": 10, "node": {"name": "Go"}}, {"size": 2, "node": {"name": "Shell"}}]
}`

func TestGitHub_MissingGH(t *testing.T) {
	g := &GitHub{Runner: proc.NewFake()}

	_, err := g.List(context.Background(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrToolNotFound)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	assert.Contains(t, errors.SuggestionOf(err), InstallURL)
}

func TestGitHub_List(t *testing.T) {
	fake := proc.NewFake("gh")
	fake.Outputs["gh repo list --limit 30 --json "+listFields] = `[{"name":"a","url":"u","visibility":"PUBLIC","isFork":true}]`
	g := &GitHub{Runner: fake}

	repos, err := g.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "a", repos[0].Name)
	assert.True(t, repos[0].IsFork)
}

func TestGitHub_ListBadJSON(t *testing.T) {
	fake := proc.NewFake("gh")
	fake.Outputs["gh repo list --limit 5 --json "+listFields] = `not json`
	_, err := (&GitHub{Runner: fake}).List(context.Background(), 5)
	assert.ErrorContains(t, err, "parsing output of gh repo list")
}

func TestGitHub_CreateAndView(t *testing.T) {
	fake := proc.NewFake("gh")
	fake.Outputs["gh repo view demo --json "+viewFields] = viewJSON
	g := &GitHub{Runner: fake}

	d, err := g.Create(context.Background(), CreateOptions{Name: "demo", Description: "A demo", Private: true})
	require.NoError(t, err)
	assert.Equal(t, "gh repo create demo --description A demo --private", fake.Lines()[0])
	assert.Equal(t, "main", d.DefaultBranch())
	assert.Equal(t, "me", d.Owner.Login)
	assert.Equal(t, []string{"Go", "Shell"}, d.LanguageNames())
	assert.Equal(t, 3, d.StargazerCount)

	_, err = g.Create(context.Background(), CreateOptions{})
	assert.ErrorIs(t, err, errors.ErrMissingName)
}

func TestGitHub_Clone(t *testing.T) {
	fake := proc.NewFake("gh")
	g := &GitHub{Runner: fake}

	require.NoError(t, g.Clone(context.Background(), "me/demo", "", 0))
	require.NoError(t, g.Clone(context.Background(), "me/demo", "work", 1))
	assert.Equal(t, []string{"gh repo clone me/demo", "gh repo clone me/demo work -- --depth=1"}, fake.Lines())
}

func TestCloneDir(t *testing.T) {
	assert.Equal(t, "demo", CloneDir("me/demo", ""))
	assert.Equal(t, "demo", CloneDir("git@github.com:me/demo.git", ""))
	assert.Equal(t, "x", CloneDir("me/demo", "x"))
}

func TestDetails_NoDefaultBranch(t *testing.T) {
	assert.Empty(t, (&Details{}).DefaultBranch())
}
