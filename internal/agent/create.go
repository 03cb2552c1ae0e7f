package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// MaxNameLength bounds agent names.
const MaxNameLength = 64

// nameRegex matches agent directory names such as "Athena" or "Code-Reviewer".
var nameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateName checks that name can be used as an agent directory.
func ValidateName(name string) error {
	if name == "" {
		return errors.ErrMissingName
	}
	if len(name) > MaxNameLength {
		return errors.Wrapf(errors.ErrInvalidValue, "agent name must be at most %d characters (got %d)", MaxNameLength, len(name))
	}
	if !nameRegex.MatchString(name) {
		return errors.Wrapf(errors.ErrInvalidValue, "agent name %q must start with a letter and contain only letters, digits, '-' or '_'", name)
	}
	return nil
}

// CreatedFile is a file written by Create.
type CreatedFile struct {
	Name string
	Path string
}

// Create scaffolds a new agent directory under agentsDir with a README,
// MEMORY and ContinuousLearning file plus an empty Sessions directory.
func Create(agentsDir, name string, at time.Time) ([]CreatedFile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	dir := filepath.Join(agentsDir, name)
	if _, err := os.Stat(dir); err == nil {
		return nil, errors.Wrapf(errors.ErrAlreadyExists, "agent %q", name)
	}
	if err := os.MkdirAll(filepath.Join(dir, SessionDirsName), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating agent directory")
	}

	files := []struct {
		name    string
		content string
	}{
		{ReadmeFile, readmeTemplate(name)},
		{MemoryFile, memoryTemplate(name, at)},
		{LearningFile, learningTemplate(name, at)},
	}

	created := make([]CreatedFile, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := fileutil.AtomicWriteFile(path, []byte(f.content), fileutil.DefaultFilePerm); err != nil {
			return created, errors.Wrapf(err, "writing %s", f.name)
		}
		created = append(created, CreatedFile{Name: f.name, Path: path})
	}
	return created, nil
}

func readmeTemplate(name string) string {
	return fmt.Sprintf(`# %s

This agent is part of the Collaborative Intelligence system.

## Capabilities

- Add agent capabilities here

## Usage

To use this agent, type `+"`%s`"+` in a Claude Code session.

## Sessions

Session records are stored in the Sessions directory.
`, name, name)
}

func memoryTemplate(name string, at time.Time) string {
	return fmt.Sprintf(`# %[1]s Memory

This file stores the long-term memory for the %[1]s agent.

## Core Knowledge

- Agent Name: %[1]s
- Creation Date: %[2]s
- Primary Function: [Define primary function]

## System Integration

The %[1]s agent is part of the Collaborative Intelligence ecosystem and follows the standard agent communication protocols.

## Expertise

[Define areas of expertise]
`, name, at.UTC().Format("2006-01-02 15:04:05 UTC"))
}

func learningTemplate(name string, at time.Time) string {
	return fmt.Sprintf(`# %[1]s Continuous Learning

This file documents the learning progress of the %[1]s agent.

## Learning Record

### %[2]s

- Agent created
- Initial memory structure established
- Basic capabilities defined
`, name, at.UTC().Format("2006-01-02"))
}
