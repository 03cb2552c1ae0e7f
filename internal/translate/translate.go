// Package translate renders JSON-tagged values as JSON, YAML or TOML.
// Values pass through their JSON form first so every format uses the JSON
// field names.
package translate

import (
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Format is an output encoding.
type Format string

// Formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a --format value. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.WithDetailf(
		errors.Wrapf(errors.ErrInvalidValue, "unknown format %q", s),
		"Valid options: text, json, yaml, toml")
}

// generic converts v into maps, slices and scalars keyed by JSON names.
func generic(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "unmarshaling json")
	}
	return out, nil
}

// Marshal encodes v in f. Text is not an encoding and is rejected.
func Marshal(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return fileutil.MarshalJSON(v)
	case FormatYAML:
		g, err := generic(v)
		if err != nil {
			return nil, err
		}
		out, err := yaml.Marshal(g)
		return out, errors.Wrap(err, "marshaling yaml")
	case FormatTOML:
		g, err := generic(v)
		if err != nil {
			return nil, err
		}
		if _, ok := g.(map[string]any); !ok {
			return nil, errors.Wrap(errors.ErrInvalidValue, "toml output needs an object")
		}
		out, err := toml.Marshal(dropNulls(g))
		return out, errors.Wrap(err, "marshaling toml")
	}
	return nil, errors.Wrapf(errors.ErrInvalidValue, "format %s is not an encoding", f)
}

// dropNulls removes null map values, which TOML cannot represent.
func dropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if val != nil {
				out[k] = dropNulls(val)
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			if val != nil {
				out = append(out, dropNulls(val))
			}
		}
		return out
	}
	return v
}
