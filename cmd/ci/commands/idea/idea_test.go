package idea

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/idea"
)

func newStore(t *testing.T) *idea.Store {
	t.Helper()
	s := idea.NewStore(filepath.Join(t.TempDir(), ".ci", "ideas.json"))
	s.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func resetFlags(t *testing.T) {
	t.Helper()
	addDescription, addCategory, addTags = "", "", ""
	addPriority, addStatus = "medium", "new"
	listFilter, listCategory, listStatus, listJSON = "", "", "", false
	t.Cleanup(func() {
		addPriority, addStatus = "medium", "new"
		listFilter, listCategory, listStatus, listJSON = "", "", "", false
	})
}

func TestAddAndList(t *testing.T) {
	resetFlags(t)
	store := newStore(t)

	var buf bytes.Buffer
	addCategory, addTags, addPriority = "Docs", "ui, docs", "h"
	require.NoError(t, runAddWithWriter(&buf, store, "Dark theme"))
	assert.Contains(t, buf.String(), "Added idea")

	addCategory, addTags, addPriority = "", "", "low"
	require.NoError(t, runAddWithWriter(&buf, store, "Parallel launch"))

	buf.Reset()
	require.NoError(t, runListWithWriter(&buf, store))
	out := buf.String()
	assert.Contains(t, out, "Dark theme")
	assert.Contains(t, out, "Uncategorized")
	assert.Contains(t, out, "2 ideas")

	listCategory = "docs"
	buf.Reset()
	require.NoError(t, runListWithWriter(&buf, store))
	assert.Contains(t, buf.String(), "1 idea\n")

	listJSON = true
	buf.Reset()
	require.NoError(t, runListWithWriter(&buf, store))
	var ideas []idea.Idea
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ideas))
	require.Len(t, ideas, 1)
	assert.Equal(t, []string{"ui", "docs"}, ideas[0].Tags)
	assert.Equal(t, idea.PriorityHigh, ideas[0].Priority)
}

func TestAdd_InvalidPriority(t *testing.T) {
	resetFlags(t)
	addPriority = "urgent"

	err := runAddWithWriter(&bytes.Buffer{}, newStore(t), "x")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "Valid options")
}

func TestTitleArg(t *testing.T) {
	title, err := titleArg(nil, &bytes.Buffer{}, []string{"From args"})
	require.NoError(t, err)
	assert.Equal(t, "From args", title)

	var out bytes.Buffer
	title, err = titleArg(strings.NewReader("Typed title\n"), &out, nil)
	require.NoError(t, err)
	assert.Equal(t, "Typed title", title)
	assert.Contains(t, out.String(), "Idea title: ")

	_, err = titleArg(strings.NewReader(""), &out, nil)
	assert.ErrorIs(t, err, errors.ErrMissingName)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestList_Empty(t *testing.T) {
	resetFlags(t)
	var buf bytes.Buffer
	require.NoError(t, runListWithWriter(&buf, newStore(t)))
	assert.Contains(t, buf.String(), "No ideas found")

	listJSON = true
	buf.Reset()
	require.NoError(t, runListWithWriter(&buf, newStore(t)))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestViewUpdateDelete(t *testing.T) {
	resetFlags(t)
	store := newStore(t)
	a, err := store.Add(idea.Draft{Title: "First"})
	require.NoError(t, err)
	b, err := store.Add(idea.Draft{Title: "Second"})
	require.NoError(t, err)

	var buf bytes.Buffer
	status := idea.StatusExploring
	require.NoError(t, runUpdateWithWriter(&buf, store, a.ID[:8], idea.Update{
		Status: &status,
		Note:   "look at caching",
		Relate: b.ID,
	}))

	buf.Reset()
	require.NoError(t, runViewWithWriter(&buf, store, a.ID))
	out := buf.String()
	assert.Contains(t, out, "Exploring")
	assert.Contains(t, out, "look at caching")
	assert.Contains(t, out, idea.ShortID(b.ID))

	err = runUpdateWithWriter(&buf, store, a.ID, idea.Update{})
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	buf.Reset()
	require.NoError(t, runDeleteWithIO(strings.NewReader("n\n"), &buf, store, a.ID, false))
	assert.Contains(t, buf.String(), "cancelled")

	require.NoError(t, runDeleteWithIO(strings.NewReader("y\n"), &buf, store, a.ID, false))
	require.NoError(t, runDeleteWithIO(nil, &buf, store, b.ID, true))
	ideas, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, ideas)
}

func TestView_NotFound(t *testing.T) {
	err := runViewWithWriter(&bytes.Buffer{}, newStore(t), "abcdef")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Contains(t, errors.SuggestionOf(err), "ci idea list")
}

func TestCategoriesAndTags(t *testing.T) {
	store := newStore(t)
	_, err := store.Add(idea.Draft{Title: "a", Category: "UI", Tags: []string{"x", "y"}})
	require.NoError(t, err)
	_, err = store.Add(idea.Draft{Title: "b", Tags: []string{"y"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runNamesWithWriter(&buf, "Categories", store.Categories))
	assert.Contains(t, buf.String(), "UI")
	assert.Contains(t, buf.String(), "Uncategorized")

	buf.Reset()
	require.NoError(t, runNamesWithWriter(&buf, "Tags", store.Tags))
	assert.Equal(t, 1, strings.Count(buf.String(), "  y\n"))

	buf.Reset()
	require.NoError(t, runNamesWithWriter(&buf, "Tags", newStore(t).Tags))
	assert.Contains(t, buf.String(), "No tags yet")
}
