package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Session is one load of an agent, stored as sessions/<unix>.json.
type Session struct {
	AgentName  string  `json:"agent_name"`
	StartTime  string  `json:"start_time"`
	Context    *string `json:"context"`
	EndTime    *string `json:"end_time"`
	OutputPath *string `json:"output_path"`
	Status     string  `json:"status,omitempty"`
}

// Session states. Records written before status was tracked derive their
// state from end_time.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionArchived  = "archived"
)

// State returns the recorded status, or active/completed by end_time.
func (s *Session) State() string {
	switch {
	case s.Status != "":
		return s.Status
	case s.EndTime != nil:
		return SessionCompleted
	}
	return SessionActive
}

// StartSession writes a new session record under toolkitDir and returns its
// path.
func StartSession(toolkitDir, name, context string, at time.Time) (string, *Session, error) {
	dir := filepath.Join(toolkitDir, SessionLogsName)
	if err := paths.EnsureDir(dir, 0o755); err != nil {
		return "", nil, errors.Wrap(err, "creating sessions directory")
	}

	s := &Session{
		AgentName: name,
		StartTime: at.UTC().Format(time.RFC3339),
	}
	if context != "" {
		s.Context = &context
	}

	path := filepath.Join(dir, fmt.Sprintf("%d.json", at.Unix()))
	if err := fileutil.AtomicWriteJSON(path, s); err != nil {
		return "", nil, errors.Wrap(err, "writing session record")
	}
	return path, s, nil
}

// FinishSession stamps end_time on the record at path.
func FinishSession(path string, at time.Time) error {
	var s Session
	found, err := fileutil.ReadJSON(path, &s)
	if err != nil {
		return errors.Wrap(err, "reading session record")
	}
	if !found {
		return errors.Wrapf(errors.ErrNotFound, "session record %s", path)
	}
	end := at.UTC().Format(time.RFC3339)
	s.EndTime = &end
	return errors.Wrap(fileutil.AtomicWriteJSON(path, &s), "updating session record")
}

// SaveCurrent records name as the active agent in file.
func SaveCurrent(file, name string) error {
	if err := paths.EnsureDir(filepath.Dir(file), 0); err != nil {
		return errors.Wrap(err, "creating state directory")
	}
	return errors.Wrap(fileutil.AtomicWriteFile(file, []byte(name+"\n"), fileutil.DefaultFilePerm), "saving current agent")
}

// Current returns the active agent recorded in file, or "" when none is set.
func Current(file string) (string, error) {
	content, err := fileutil.ReadString(file)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "reading current agent")
	}
	return strings.TrimSpace(content), nil
}
