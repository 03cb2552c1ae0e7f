package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity by name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", name)
	}
	return nil
}

// Issue is a single validation problem.
type Issue struct {
	Severity Severity `json:"severity"`
	// Field is the dotted path of the offending field, if any.
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	// Value is the rejected value, if known.
	Value any `json:"value,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		sb.WriteString(i.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates the issues found in Source.
type Result struct {
	Source string  `json:"source,omitempty"`
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// NewResult returns an empty, valid result for source.
func NewResult(source string) *Result {
	return &Result{Source: source, Valid: true, Issues: []Issue{}}
}

func (r *Result) add(s Severity, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{Severity: s, Field: field, Message: message, Value: value})
	if s == SeverityError {
		r.Valid = false
	}
}

// AddError records a blocking issue and marks the result invalid.
func (r *Result) AddError(field, message string, value any) {
	r.add(SeverityError, field, message, value)
}

// AddWarning records a non-blocking issue.
func (r *Result) AddWarning(field, message string, value any) {
	r.add(SeverityWarning, field, message, value)
}

// AddInfo records a note.
func (r *Result) AddInfo(field, message string, value any) {
	r.add(SeverityInfo, field, message, value)
}

// HasErrors reports whether any issue is an error.
func (r *Result) HasErrors() bool {
	return len(r.Errors()) > 0
}

// HasWarnings reports whether any issue is a warning.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings()) > 0
}

// Errors returns the error issues.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the warning issues.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}
