// Package doctor runs diagnostic checks and aggregates their results.
package doctor

import (
	"encoding/json"

	"github.com/thoreinstein/ci/internal/errors"
)

// Severity ranks a check result. Pass and Info count as passing.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalJSON encodes the severity by name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the names written by MarshalJSON.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range severityNames {
		if n == name {
			*s = Severity(i)
			return nil
		}
	}
	return errors.Newf("unknown severity %q", name)
}

// CheckResult is the outcome of one check, as printed by "ci verify" and
// "ci brain health".
type CheckResult struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Status   Severity       `json:"status"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	// FixHint is a command or action that resolves the problem.
	FixHint string `json:"fix_hint,omitempty"`
}

// Passed reports whether the result is a pass or informational.
func (r *CheckResult) Passed() bool {
	return r.Status == SeverityPass || r.Status == SeverityInfo
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Total returns the number of results counted.
func (s Summary) Total() int {
	return s.Passed + s.Info + s.Warnings + s.Errors
}
