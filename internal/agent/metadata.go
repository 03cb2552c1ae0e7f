package agent

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// MetadataVersion is written to new metadata files.
const MetadataVersion = "1.0"

// Metadata is the metadata.json kept in an agent's toolkit directory.
type Metadata struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Capabilities []string          `json:"capabilities"`
	CreatedAt    string            `json:"created_at"`
	LastUsed     *string           `json:"last_used"`
	UsageCount   int               `json:"usage_count"`
	Version      string            `json:"version"`
	ToolkitPath  string            `json:"toolkit_path"`
	MemoryPath   string            `json:"memory_path"`
	LearningPath *string           `json:"learning_path"`
	Attributes   map[string]string `json:"attributes"`
}

// NewMetadata returns fresh metadata for name. The description is taken from
// the memory text when it has a "Description:" or "Role:" line.
func NewMetadata(name, toolkitPath, memoryPath, memory string, at time.Time) *Metadata {
	learning := filepath.Join(toolkitPath, LearningFile)
	return &Metadata{
		Name:         name,
		Description:  describeMemory(name, memory),
		Capabilities: []string{},
		CreatedAt:    at.UTC().Format(time.RFC3339),
		Version:      MetadataVersion,
		ToolkitPath:  toolkitPath,
		MemoryPath:   memoryPath,
		LearningPath: &learning,
		Attributes:   map[string]string{},
	}
}

// LoadMetadata reads metadata.json from path. ok is false when the file is
// missing, empty or unparseable.
func LoadMetadata(path string) (md *Metadata, ok bool) {
	var m Metadata
	found, err := fileutil.ReadJSON(path, &m)
	if err != nil || !found {
		return nil, false
	}
	if m.Capabilities == nil {
		m.Capabilities = []string{}
	}
	if m.Attributes == nil {
		m.Attributes = map[string]string{}
	}
	return &m, true
}

// Touch records a use at the given time.
func (m *Metadata) Touch(at time.Time) {
	ts := at.UTC().Format(time.RFC3339)
	m.LastUsed = &ts
	m.UsageCount++
}

// Save writes the metadata atomically.
func (m *Metadata) Save(path string) error {
	return errors.Wrapf(fileutil.AtomicWriteJSON(path, m), "writing agent metadata %s", path)
}

func describeMemory(name, memory string) string {
	for _, line := range splitLines(memory) {
		if !strings.Contains(line, "Description:") && !strings.Contains(line, "Role:") {
			continue
		}
		if _, rest, ok := strings.Cut(line, ":"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return "Agent " + name
}
