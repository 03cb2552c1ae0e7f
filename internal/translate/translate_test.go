package translate

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ci/internal/errors"
)

type sample struct {
	ProjectName  string         `json:"project_name"`
	ActiveAgents []string       `json:"active_agents"`
	Fast         bool           `json:"fast_activation"`
	Metadata     map[string]any `json:"metadata"`
}

func value() sample {
	return sample{
		ProjectName:  "demo",
		ActiveAgents: []string{"Athena", "Tester"},
		Fast:         true,
		Metadata:     map[string]any{"integration_type": "standalone", "gone": nil},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{" toml ", FormatTOML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarshal_YAML(t *testing.T) {
	out, err := Marshal(value(), FormatYAML)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, "demo", got["project_name"])
	assert.Equal(t, []any{"Athena", "Tester"}, got["active_agents"])
}

func TestMarshal_TOML(t *testing.T) {
	out, err := Marshal(value(), FormatTOML)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, toml.Unmarshal(out, &got))
	assert.Equal(t, true, got["fast_activation"])
	meta := got["metadata"].(map[string]any)
	assert.Equal(t, "standalone", meta["integration_type"])
	assert.NotContains(t, meta, "gone")

	_, err = Marshal([]string{"a"}, FormatTOML)
	assert.ErrorIs(t, err, errors.ErrInvalidValue)
}

func TestMarshal_JSONAndText(t *testing.T) {
	out, err := Marshal(value(), FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"project_name": "demo"`)

	_, err = Marshal(value(), FormatText)
	assert.ErrorIs(t, err, errors.ErrInvalidValue)
}
