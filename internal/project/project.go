// Package project reads and writes the per-project .ci-config.json file.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// FileName is the project configuration file name.
const FileName = paths.ProjectConfigFile

// DefaultAgents are activated in new projects unless others are given.
var DefaultAgents = []string{"Athena", "ProjectArchitect"}

// Integration types accepted for the integration_type key.
const (
	IntegrationStandalone = "standalone"
	IntegrationOverride   = "override"
)

// ErrNoConfig indicates no .ci-config.json exists in a directory or its parents.
var ErrNoConfig = errors.New("no CI configuration found")

var now = time.Now

// AutoAccept controls which prompts are skipped for agent commands.
type AutoAccept struct {
	AgentLoad     bool     `json:"agent_load"`
	AgentActivate bool     `json:"agent_activate"`
	Agents        []string `json:"agents"`
	Global        bool     `json:"global"`
}

// ShouldAutoAccept reports whether action ("load", "activate") for agent
// proceeds without confirmation. Global wins, then the per-agent list
// (case-insensitive), then the per-action switch.
func (a AutoAccept) ShouldAutoAccept(agent, action string) bool {
	if a.Global {
		return true
	}
	for _, name := range a.Agents {
		if strings.EqualFold(name, agent) {
			return true
		}
	}
	switch action {
	case "load":
		return a.AgentLoad
	case "activate":
		return a.AgentActivate
	default:
		return false
	}
}

// Config is the content of .ci-config.json. JSON names are shared with
// other tools and must not change.
type Config struct {
	ProjectName    string         `json:"project_name"`
	CIVersion      string         `json:"ci_version"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
	ActiveAgents   []string       `json:"active_agents"`
	FastActivation bool           `json:"fast_activation"`
	AutoAccept     AutoAccept     `json:"auto_accept"`
	Metadata       map[string]any `json:"metadata"`
}

// New returns a config stamped with the current time. A nil agents slice
// selects DefaultAgents.
func New(name, version string, agents []string, fast bool) *Config {
	if agents == nil {
		agents = append([]string(nil), DefaultAgents...)
	}
	ts := now().Format(time.RFC3339)
	return &Config{
		ProjectName:    name,
		CIVersion:      version,
		CreatedAt:      ts,
		UpdatedAt:      ts,
		ActiveAgents:   agents,
		FastActivation: fast,
		AutoAccept:     AutoAccept{Agents: []string{}},
		Metadata:       map[string]any{},
	}
}

// Load reads a config file.
func Load(path string) (*Config, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	cfg.normalize()
	return &cfg, nil
}

// Save stamps updated_at and writes the file atomically.
func (c *Config) Save(path string) error {
	c.UpdatedAt = now().Format(time.RFC3339)
	c.normalize()
	return errors.Wrapf(fileutil.AtomicWriteJSON(path, c), "writing config file %s", path)
}

func (c *Config) normalize() {
	if c.ActiveAgents == nil {
		c.ActiveAgents = []string{}
	}
	if c.AutoAccept.Agents == nil {
		c.AutoAccept.Agents = []string{}
	}
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
}

// FindNearest walks from dir up to the filesystem root and returns the first
// readable config. Files that fail to parse are skipped.
func FindNearest(dir string) (string, *Config, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, errors.Wrapf(err, "resolving %s", dir)
	}
	for {
		candidate := filepath.Join(current, FileName)
		if _, err := os.Stat(candidate); err == nil {
			if cfg, err := Load(candidate); err == nil {
				return candidate, cfg, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil, errors.Wrapf(ErrNoConfig, "in %s or any parent directory", dir)
		}
		current = parent
	}
}

// FindNearestPath is like FindNearest but returns the first existing file
// without parsing it.
func FindNearestPath(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", dir)
	}
	for {
		candidate := filepath.Join(current, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", errors.Wrapf(ErrNoConfig, "in %s or any parent directory", dir)
		}
		current = parent
	}
}

// HasAgent reports whether name is active (case-insensitive).
func (c *Config) HasAgent(name string) bool {
	for _, a := range c.ActiveAgents {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// Agent statuses reported by AgentStatus.
const (
	StatusEnabled   = "enabled"
	StatusDisabled  = "disabled"
	StatusAvailable = "available"
)

// MetaDisabledAgents is the metadata key listing explicitly disabled agents.
const MetaDisabledAgents = "disabled_agents"

// EnableAgent adds name to the active agents, reporting whether it changed.
// An earlier disable of name is forgotten.
func (c *Config) EnableAgent(name string) bool {
	c.setDisabled(name, false)
	if c.HasAgent(name) {
		return false
	}
	c.ActiveAgents = append(c.ActiveAgents, name)
	return true
}

// DisableAgent removes name from the active agents, reporting whether it
// changed. The name is remembered in metadata so listings can show it as
// disabled rather than merely available.
func (c *Config) DisableAgent(name string) bool {
	kept := c.ActiveAgents[:0]
	removed := false
	for _, a := range c.ActiveAgents {
		if strings.EqualFold(a, name) {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	c.ActiveAgents = kept
	c.setDisabled(name, true)
	return removed
}

// DisabledAgents returns the names recorded by DisableAgent.
func (c *Config) DisabledAgents() []string {
	raw, _ := c.Metadata[MetaDisabledAgents].([]any)
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	return names
}

// AgentStatus classifies name as enabled, disabled or available.
func (c *Config) AgentStatus(name string) string {
	if c.HasAgent(name) {
		return StatusEnabled
	}
	for _, d := range c.DisabledAgents() {
		if strings.EqualFold(d, name) {
			return StatusDisabled
		}
	}
	return StatusAvailable
}

func (c *Config) setDisabled(name string, disabled bool) {
	var list []any
	for _, d := range c.DisabledAgents() {
		if !strings.EqualFold(d, name) {
			list = append(list, d)
		}
	}
	if disabled {
		list = append(list, name)
	}
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	if len(list) == 0 {
		delete(c.Metadata, MetaDisabledAgents)
		return
	}
	c.Metadata[MetaDisabledAgents] = list
}
