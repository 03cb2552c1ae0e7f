// Package validator checks agent directories for the files ci relies on.
package validator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/validator"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Validator validates agent directories.
type Validator struct {
	strict bool
}

// New creates a Validator. When strict is true, missing optional files such
// as ContinuousLearning.md are reported as warnings instead of notes.
func New(strict bool) *Validator {
	return &Validator{strict: strict}
}

// MemoryFiles lists the files that can hold the memory of the agent in dir,
// in the order load looks for them.
func MemoryFiles(dir string) []string {
	name := filepath.Base(dir)
	return []string{
		filepath.Join(dir, name+".md"),
		filepath.Join(dir, name+"_memory.md"),
		filepath.Join(dir, agent.MemoryFile),
	}
}

// Validate checks the agent directory dir.
func (v *Validator) Validate(dir string) (*validator.Result, error) {
	a, err := agent.Inspect(dir)
	if err != nil {
		return nil, err
	}
	result := validator.NewResult(dir)

	if err := agent.ValidateName(a.Name); err != nil {
		result.AddError("name", err.Error(), a.Name)
	}
	if !a.HasReadme {
		result.AddWarning(agent.ReadmeFile, "missing; the agent is listed without a description", nil)
	} else if a.Description == agent.NoDescription {
		result.AddWarning(agent.ReadmeFile, "has no description line", nil)
	}

	if err := v.validateMemory(dir, result); err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(dir, agent.LearningFile)); err != nil {
		msg := "missing; loaded sessions start without a learning log"
		if v.strict {
			result.AddWarning(agent.LearningFile, msg, nil)
		} else {
			result.AddInfo(agent.LearningFile, msg, nil)
		}
	}
	return result, nil
}

// validateMemory requires a non-empty memory file. Without one, load falls
// back to the agent's section of AGENTS.md, so absence is a warning.
func (v *Validator) validateMemory(dir string, result *validator.Result) error {
	for _, path := range MemoryFiles(dir) {
		content, err := fileutil.ReadString(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		if strings.TrimSpace(content) == "" {
			result.AddError(filepath.Base(path), "memory file is empty", nil)
		}
		return nil
	}
	result.AddWarning("memory", "no memory file; load uses the AGENTS.md entry", nil)
	return nil
}
