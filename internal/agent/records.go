package agent

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// SessionRecord is a session record file with its parsed content.
type SessionRecord struct {
	// ID is the file name without .json, the unix start time for records
	// written by load.
	ID   string
	Path string
	Size int64

	// Invalid is set when the file is not a readable session record.
	Invalid bool
	Session
}

// Started returns the start time, falling back to the unix ID when
// start_time is missing or unparsable.
func (r *SessionRecord) Started() time.Time {
	if t, err := time.Parse(time.RFC3339, r.StartTime); err == nil {
		return t
	}
	if n, err := strconv.ParseInt(r.ID, 10, 64); err == nil {
		return time.Unix(n, 0).UTC()
	}
	return time.Time{}
}

// ListSessions reads the session records of every agent under agentsDir,
// newest first. A non-empty agentFilter keeps agents whose name contains it,
// ignoring case. Records that are not valid JSON are listed as completed
// sessions of the directory's agent.
func ListSessions(agentsDir, agentFilter string) ([]SessionRecord, error) {
	entries, err := os.ReadDir(agentsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading agents directory %s", agentsDir)
	}
	filter := strings.ToLower(agentFilter)

	var records []SessionRecord
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		recs, err := agentSessions(filepath.Join(agentsDir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Started().After(records[j].Started())
	})
	return records, nil
}

func agentSessions(agentDir string) ([]SessionRecord, error) {
	dir := filepath.Join(agentDir, SessionLogsName)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	var records []SessionRecord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := readRecord(filepath.Join(dir, e.Name()), filepath.Base(agentDir))
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func readRecord(path, agentName string) (*SessionRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	rec := &SessionRecord{
		ID:   strings.TrimSuffix(filepath.Base(path), ".json"),
		Path: path,
		Size: info.Size(),
	}
	if found, err := fileutil.ReadJSON(path, &rec.Session); err != nil || !found {
		rec.Session = Session{Status: SessionCompleted}
		rec.Invalid = true
	}
	if rec.AgentName == "" {
		rec.AgentName = agentName
	}
	return rec, nil
}

// FindSession returns the record id of the agent at agentDir.
func FindSession(agentDir, id string) (*SessionRecord, error) {
	id = strings.TrimSuffix(id, ".json")
	path := filepath.Join(agentDir, SessionLogsName, id+".json")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrNotFound, "session %s for agent %s", id, filepath.Base(agentDir))
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return readRecord(path, filepath.Base(agentDir))
}

// ArchiveSession marks the record at path archived.
func ArchiveSession(path string) error {
	var s Session
	found, err := fileutil.ReadJSON(path, &s)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidValue, "session record %s: %v", path, err)
	}
	if !found {
		return errors.Wrapf(errors.ErrNotFound, "session record %s", path)
	}
	s.Status = SessionArchived
	return errors.Wrap(fileutil.AtomicWriteJSON(path, &s), "updating session record")
}

// CleanupSessions archives the records started before cutoff that are not
// archived yet and returns them. Invalid records are skipped. With dryRun
// nothing is written.
func CleanupSessions(records []SessionRecord, cutoff time.Time, dryRun bool) ([]SessionRecord, error) {
	var stale []SessionRecord
	for _, r := range records {
		if r.Invalid || r.State() == SessionArchived || !r.Started().Before(cutoff) {
			continue
		}
		if !dryRun {
			if err := ArchiveSession(r.Path); err != nil {
				return stale, err
			}
		}
		stale = append(stale, r)
	}
	return stale, nil
}
