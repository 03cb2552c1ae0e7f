package project

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/validator"
)

//go:embed schema.json
var schemaJSON string

// Schema returns the JSON Schema for .ci-config.json.
func Schema() string {
	return schemaJSON
}

// Validate checks raw file content against the schema. source names the
// file in the result. Syntax errors are reported as a "syntax" field error
// rather than a Go error. A configuration without active agents is valid but
// draws a warning.
func Validate(source string, content []byte) (*validator.Result, error) {
	result := validator.NewResult(source)

	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		result.AddError("syntax", fmt.Sprintf("Invalid JSON syntax: %v", err), nil)
		return result, nil
	}

	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(data),
	)
	if err != nil {
		return nil, errors.Wrap(err, "schema validation error")
	}
	for _, e := range res.Errors() {
		result.AddError(e.Field(), e.Description(), e.Value())
	}

	if obj, ok := data.(map[string]any); ok {
		if agents, ok := obj[KeyActiveAgents].([]any); ok && len(agents) == 0 {
			result.AddWarning(KeyActiveAgents, "no agents are active", nil)
		}
	}
	return result, nil
}
