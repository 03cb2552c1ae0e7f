package project

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
)

// Special keys understood by Get and Set; anything else lives in metadata.
const (
	KeyProjectName     = "project_name"
	KeyActiveAgents    = "active_agents"
	KeyFastActivation  = "fast_activation"
	KeyCIVersion       = "ci_version"
	KeyCreatedAt       = "created_at"
	KeyUpdatedAt       = "updated_at"
	KeyIntegrationType = "integration_type"
)

// ErrKeyNotFound indicates a metadata key that is not set.
var ErrKeyNotFound = errors.New("configuration key not found")

// Get returns the display form of key. Metadata values are rendered as
// indented JSON, except strings which are printed bare.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyProjectName:
		return c.ProjectName, nil
	case KeyCIVersion:
		return c.CIVersion, nil
	case KeyCreatedAt:
		return c.CreatedAt, nil
	case KeyUpdatedAt:
		return c.UpdatedAt, nil
	case KeyActiveAgents:
		return strings.Join(c.ActiveAgents, ", "), nil
	case KeyFastActivation:
		return strconv.FormatBool(c.FastActivation), nil
	}

	value, ok := c.Metadata[key]
	if !ok {
		return "", errors.Wrapf(ErrKeyNotFound, "%s", key)
	}
	return FormatValue(value), nil
}

// Set assigns key from its command-line form. ci_version, created_at and
// updated_at are read-only fields, so setting them writes metadata.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyProjectName:
		c.ProjectName = value
	case KeyActiveAgents:
		c.ActiveAgents = SplitList(value)
	case KeyFastActivation:
		b, err := ParseBool(value)
		if err != nil {
			return errors.Wrap(err, "fast_activation")
		}
		c.FastActivation = b
	case KeyIntegrationType:
		kind := strings.ToLower(value)
		if kind != IntegrationStandalone && kind != IntegrationOverride {
			return errors.Newf("invalid integration type: %s. Valid options: %s, %s",
				value, IntegrationStandalone, IntegrationOverride)
		}
		c.SetMetadata(key, kind)
	default:
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			parsed = value
		}
		c.SetMetadata(key, parsed)
	}
	return nil
}

// SetMetadata stores value under key.
func (c *Config) SetMetadata(key string, value any) {
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	c.Metadata[key] = value
}

// ParseBool accepts true/yes/1/on and false/no/0/off in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	}
	return false, errors.Wrapf(errors.ErrInvalidValue, "invalid boolean value: %s", s)
}

// SplitList splits a comma separated list, trimming entries and dropping empties.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FormatValue renders a metadata value for display.
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
