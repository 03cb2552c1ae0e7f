// Package idea tracks ideas in a JSON file.
//
// Ideas live in .ci/ideas.json at the root of the enclosing git repository,
// or in the per-user data directory outside a repository.
package idea

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/ci/internal/errors"
)

// DefaultCategory is used when an idea is added without one.
const DefaultCategory = "Uncategorized"

// Status is the lifecycle state of an idea.
type Status string

// Idea statuses, serialized by name.
const (
	StatusNew           Status = "New"
	StatusExploring     Status = "Exploring"
	StatusInDevelopment Status = "InDevelopment"
	StatusImplemented   Status = "Implemented"
	StatusOnHold        Status = "OnHold"
	StatusArchived      Status = "Archived"
	StatusRejected      Status = "Rejected"
)

// Label returns the display form of s.
func (s Status) Label() string {
	switch s {
	case StatusInDevelopment:
		return "In Development"
	case StatusOnHold:
		return "On Hold"
	default:
		return string(s)
	}
}

var statusAliases = map[string]Status{
	"new":            StatusNew,
	"exploring":      StatusExploring,
	"development":    StatusInDevelopment,
	"indevelopment":  StatusInDevelopment,
	"in-development": StatusInDevelopment,
	"in_development": StatusInDevelopment,
	"dev":            StatusInDevelopment,
	"implemented":    StatusImplemented,
	"complete":       StatusImplemented,
	"completed":      StatusImplemented,
	"done":           StatusImplemented,
	"onhold":         StatusOnHold,
	"on-hold":        StatusOnHold,
	"on_hold":        StatusOnHold,
	"hold":           StatusOnHold,
	"archived":       StatusArchived,
	"archive":        StatusArchived,
	"rejected":       StatusRejected,
	"reject":         StatusRejected,
}

// ParseStatus accepts a status name or one of its aliases, ignoring case.
func ParseStatus(s string) (Status, error) {
	if st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", errors.Wrapf(errors.ErrInvalidValue,
		"invalid status: %s. Valid options: new, exploring, development, implemented, onhold, archived, rejected", s)
}

// Priority ranks an idea.
type Priority string

// Idea priorities, serialized by name.
const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

var priorityAliases = map[string]Priority{
	"low":      PriorityLow,
	"l":        PriorityLow,
	"medium":   PriorityMedium,
	"med":      PriorityMedium,
	"m":        PriorityMedium,
	"high":     PriorityHigh,
	"h":        PriorityHigh,
	"critical": PriorityCritical,
	"crit":     PriorityCritical,
	"c":        PriorityCritical,
}

// ParsePriority accepts a priority name or one of its aliases, ignoring case.
func ParsePriority(s string) (Priority, error) {
	if p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", errors.Wrapf(errors.ErrInvalidValue,
		"invalid priority: %s. Valid options: low, medium, high, critical", s)
}

// Idea is one tracked idea.
type Idea struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	Status       Status    `json:"status"`
	Priority     Priority  `json:"priority"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	RelatedIdeas []string  `json:"related_ideas"`
	Notes        string    `json:"notes"`
}

// ShortIDLength is the number of ID characters shown in listings.
const ShortIDLength = 8

// ShortID returns the first eight characters of id, or id itself when it is
// shorter.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// Excerpt returns at most n runes of s on a single line.
func Excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Draft holds the fields supplied when adding an idea.
type Draft struct {
	Title       string
	Description string
	Category    string
	Tags        []string
	Status      Status
	Priority    Priority
}

func newIdea(d Draft, now time.Time) (*Idea, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, errors.Wrap(errors.ErrMissingName, "title is required for adding an idea")
	}
	i := &Idea{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  d.Description,
		Category:     d.Category,
		Tags:         CleanTags(d.Tags),
		Status:       d.Status,
		Priority:     d.Priority,
		CreatedAt:    now,
		UpdatedAt:    now,
		RelatedIdeas: []string{},
	}
	if i.Category == "" {
		i.Category = DefaultCategory
	}
	if i.Status == "" {
		i.Status = StatusNew
	}
	if i.Priority == "" {
		i.Priority = PriorityMedium
	}
	return i, nil
}

// SplitTags splits a comma separated tag list.
func SplitTags(s string) []string {
	return CleanTags(strings.Split(s, ","))
}

// CleanTags trims tags and drops empty ones.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Update lists the changes to apply to an idea. Nil fields are left alone.
type Update struct {
	Title       *string
	Description *string
	Category    *string
	Tags        []string
	SetTags     bool
	Status      *Status
	Priority    *Priority

	// Note is appended to the notes on its own paragraph.
	Note string

	// Relate is an ID or prefix of another idea to link.
	Relate string
}

// Empty reports whether u changes nothing.
func (u Update) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Category == nil && !u.SetTags &&
		u.Status == nil && u.Priority == nil && u.Note == "" && u.Relate == ""
}

// Filter selects ideas for List. Zero fields match everything.
type Filter struct {
	// Text matches title, description or tags, ignoring case.
	Text     string
	Category string
	Status   Status
}

// Match reports whether i passes f.
func (f Filter) Match(i *Idea) bool {
	if f.Text != "" && !matchesText(i, strings.ToLower(f.Text)) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(i.Category, f.Category) {
		return false
	}
	return f.Status == "" || i.Status == f.Status
}

func matchesText(i *Idea, q string) bool {
	if strings.Contains(strings.ToLower(i.Title), q) || strings.Contains(strings.ToLower(i.Description), q) {
		return true
	}
	for _, t := range i.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
