package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ci/internal/errors"
)

var agents = []Choice{
	{Name: "Athena", Description: "Memory"},
	{Name: "Architect", Description: "Design"},
	{Name: "Tester"},
}

func TestSelect_EmptyList(t *testing.T) {
	p := NewWithIO(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Select("x", nil)
	assert.True(t, errors.Is(err, ErrNoChoices))
}

func TestSelect_SingleItem(t *testing.T) {
	var buf bytes.Buffer
	p := NewWithIO(strings.NewReader(""), &buf)

	idx, err := p.Select("Athena", agents[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Zero(t, buf.Len(), "single choice should not prompt")
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{"explicit first", "1\n", 0, nil},
		{"explicit last", "3\n", 2, nil},
		{"default on empty", "\n", 0, nil},
		{"no trailing newline", "2", 1, nil},
		{"out of range", "4\n", -1, ErrInvalidSelection},
		{"zero", "0\n", -1, ErrInvalidSelection},
		{"not a number", "abc\n", -1, ErrInvalidSelection},
		{"eof", "", -1, ErrSelectionCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewWithIO(strings.NewReader(tt.input), &buf)

			got, err := p.Select("a", agents)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, buf.String(), "[1] Athena - Memory")
			assert.Contains(t, buf.String(), "[3] Tester\n")
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"YES uppercase", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty default no", "\n", false, false},
		{"empty default yes", "\n", true, true},
		{"eof", "", true, false},
		{"garbage", "maybe\n", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewWithIO(strings.NewReader(tt.input), &buf)

			got, err := p.Confirm("Delete idea?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, buf.String(), "Delete idea?")
		})
	}
}

func TestPick(t *testing.T) {
	orig := find
	t.Cleanup(func() { find = orig })

	find = func(choices []Choice, itemFunc func(int) string, _ ...fuzzyfinder.Option) (int, error) {
		assert.Equal(t, "Architect", itemFunc(1))
		return 1, nil
	}
	got, err := Pick("agent", agents)
	require.NoError(t, err)
	assert.Equal(t, "Architect", got)

	find = func([]Choice, func(int) string, ...fuzzyfinder.Option) (int, error) {
		return -1, fuzzyfinder.ErrAbort
	}
	_, err = Pick("agent", agents)
	assert.True(t, errors.Is(err, ErrSelectionCancelled))

	_, err = Pick("agent", nil)
	assert.True(t, errors.Is(err, ErrNoChoices))
}

func TestInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		def     string
		want    string
		wantErr error
	}{
		{"typed", "fix docs\n", "", "fix docs", nil},
		{"default", "\n", "Update files", "Update files", nil},
		{"eof", "", "x", "", ErrSelectionCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewWithIO(strings.NewReader(tt.input), &buf)

			got, err := p.Input("Commit message", tt.def)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
