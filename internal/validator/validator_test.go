package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.String())
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(SeverityWarning)
	require.NoError(t, err)
	assert.JSONEq(t, `"warning"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"info"`), &s))
	assert.Equal(t, SeverityInfo, s)
	assert.Error(t, json.Unmarshal([]byte(`"fatal"`), &s))
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name string
		i    Issue
		want string
	}{
		{
			name: "field and value",
			i:    Issue{Severity: SeverityError, Field: "active_agents", Message: "Invalid type", Value: "Athena"},
			want: "error: active_agents: Invalid type (got Athena)",
		},
		{
			name: "no field",
			i:    Issue{Severity: SeverityWarning, Message: "no agents are active"},
			want: "warning: no agents are active",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.i.Error())
		})
	}
}

func TestResult(t *testing.T) {
	r := NewResult("cfg.json")
	assert.True(t, r.Valid)
	assert.False(t, r.HasErrors())

	r.AddWarning("active_agents", "empty", nil)
	r.AddInfo("metadata", "unused", nil)
	assert.True(t, r.Valid, "warnings keep the result valid")
	assert.True(t, r.HasWarnings())

	r.AddError("project_name", "is required", nil)
	assert.False(t, r.Valid)
	assert.Len(t, r.Errors(), 1)
	assert.Len(t, r.Warnings(), 1)
	assert.Len(t, r.Issues, 3)

	var nilResult *Result
	assert.False(t, nilResult.HasErrors())
}
