package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestReporter_Report(t *testing.T) {
	result := NewResult("cfg.json")
	result.AddError("project_name", "is required", nil)
	result.AddWarning("active_agents", "no agents are active", strings.Repeat("x", 80))

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatText).Report(result))

		out := buf.String()
		assert.Contains(t, out, "cfg.json is invalid:")
		assert.Contains(t, out, "1 error(s)")
		assert.Contains(t, out, "1 warning(s)")
		assert.Contains(t, out, "project_name: is required")
		assert.Contains(t, out, "["+strings.Repeat("x", 47)+"...]")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatJSON).Report(result))

		var decoded Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.False(t, decoded.Valid)
		require.Len(t, decoded.Issues, 2)
		assert.Equal(t, "project_name", decoded.Issues[0].Field)
		assert.Equal(t, SeverityWarning, decoded.Issues[1].Severity)
	})

	t.Run("clean", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatText).Report(NewResult("cfg.json")))
		assert.Contains(t, buf.String(), "cfg.json is valid")
	})

	t.Run("warnings only", func(t *testing.T) {
		r := NewResult("")
		r.AddWarning("active_agents", "no agents are active", nil)
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatText).Report(r))
		assert.Contains(t, buf.String(), "configuration is valid with")
	})
}
