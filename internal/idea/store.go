package idea

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// RepoFile is the ideas file path relative to a repository root.
var RepoFile = filepath.Join(".ci", "ideas.json")

// MinPrefix is the shortest ID prefix accepted in place of a full ID.
const MinPrefix = 4

// ErrAmbiguousID is returned when a prefix matches more than one idea.
var ErrAmbiguousID = errors.New("ambiguous idea ID")

// DefaultPath picks the ideas file: override when set, .ci/ideas.json at the
// root of the git repository containing dir, else the user data directory.
func DefaultPath(override, dir string) string {
	if override != "" {
		return override
	}
	if root, err := git.Root(dir); err == nil {
		return filepath.Join(root, RepoFile)
	}
	return paths.DefaultIdeasFile()
}

// Store reads and writes ideas at Path.
type Store struct {
	Path string
	Now  func() time.Time
}

// NewStore returns a Store for path using the wall clock.
func NewStore(path string) *Store {
	return &Store{Path: path, Now: func() time.Time { return time.Now().UTC() }}
}

// Load returns every stored idea in file order. A missing or empty file
// holds no ideas.
func (s *Store) Load() ([]*Idea, error) {
	var ideas []*Idea
	if _, err := fileutil.ReadJSON(s.Path, &ideas); err != nil {
		return nil, errors.Wrap(err, "reading ideas")
	}
	return ideas, nil
}

func (s *Store) save(ideas []*Idea) error {
	if ideas == nil {
		ideas = []*Idea{}
	}
	return errors.Wrap(fileutil.WriteJSON(s.Path, ideas), "saving ideas")
}

// Resolve finds the index of the idea whose ID equals ref, or failing that
// the single idea whose ID starts with ref.
func Resolve(ideas []*Idea, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, errors.Wrap(errors.ErrMissingName, "idea ID is required")
	}
	for i, idea := range ideas {
		if idea.ID == ref {
			return i, nil
		}
	}
	if len(ref) >= MinPrefix {
		var matches []int
		for i, idea := range ideas {
			if strings.HasPrefix(idea.ID, ref) {
				matches = append(matches, i)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], nil
		case 0:
		default:
			ids := make([]string, len(matches))
			for n, i := range matches {
				ids[n] = ShortID(ideas[i].ID)
			}
			return -1, errors.WithDetailf(
				errors.Wrapf(ErrAmbiguousID, "%q matches %d ideas", ref, len(matches)),
				"matches: %s", strings.Join(ids, ", "))
		}
	}
	return -1, errors.Wrapf(errors.ErrNotFound, "idea not found with ID: %s", ref)
}

// List returns the ideas that pass f.
func (s *Store) List(f Filter) ([]*Idea, error) {
	ideas, err := s.Load()
	if err != nil {
		return nil, err
	}
	out := make([]*Idea, 0, len(ideas))
	for _, i := range ideas {
		if f.Match(i) {
			out = append(out, i)
		}
	}
	return out, nil
}

// Add stores a new idea built from d.
func (s *Store) Add(d Draft) (*Idea, error) {
	ideas, err := s.Load()
	if err != nil {
		return nil, err
	}
	i, err := newIdea(d, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.save(append(ideas, i)); err != nil {
		return nil, err
	}
	return i, nil
}

// Get returns the idea identified by ref.
func (s *Store) Get(ref string) (*Idea, error) {
	ideas, err := s.Load()
	if err != nil {
		return nil, err
	}
	n, err := Resolve(ideas, ref)
	if err != nil {
		return nil, err
	}
	return ideas[n], nil
}

// Update applies u to the idea identified by ref and stamps UpdatedAt.
func (s *Store) Update(ref string, u Update) (*Idea, error) {
	ideas, err := s.Load()
	if err != nil {
		return nil, err
	}
	n, err := Resolve(ideas, ref)
	if err != nil {
		return nil, err
	}
	i := ideas[n]

	if u.Relate != "" {
		r, err := Resolve(ideas, u.Relate)
		if err != nil {
			return nil, errors.Wrap(err, "resolving related idea")
		}
		if r == n {
			return nil, errors.Wrap(errors.ErrInvalidValue, "an idea cannot be related to itself")
		}
		if !slices.Contains(i.RelatedIdeas, ideas[r].ID) {
			i.RelatedIdeas = append(i.RelatedIdeas, ideas[r].ID)
		}
	}
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return nil, errors.Wrap(errors.ErrInvalidValue, "title cannot be empty")
		}
		i.Title = title
	}
	if u.Description != nil {
		i.Description = *u.Description
	}
	if u.Category != nil {
		i.Category = *u.Category
	}
	if u.SetTags {
		i.Tags = CleanTags(u.Tags)
	}
	if u.Status != nil {
		i.Status = *u.Status
	}
	if u.Priority != nil {
		i.Priority = *u.Priority
	}
	if note := strings.TrimSpace(u.Note); note != "" {
		if i.Notes == "" {
			i.Notes = note
		} else {
			i.Notes += "\n\n" + note
		}
	}
	i.UpdatedAt = s.Now()

	if err := s.save(ideas); err != nil {
		return nil, err
	}
	return i, nil
}

// Delete removes the idea identified by ref and returns it.
func (s *Store) Delete(ref string) (*Idea, error) {
	ideas, err := s.Load()
	if err != nil {
		return nil, err
	}
	n, err := Resolve(ideas, ref)
	if err != nil {
		return nil, err
	}
	removed := ideas[n]
	ideas = append(ideas[:n], ideas[n+1:]...)
	if err := s.save(ideas); err != nil {
		return nil, err
	}
	return removed, nil
}

// Categories returns the distinct categories in use, sorted.
func (s *Store) Categories() ([]string, error) {
	ideas, err := s.Load()
	if err != nil {
		return nil, err
	}
	var all []string
	for _, i := range ideas {
		all = append(all, i.Category)
	}
	return uniqueSorted(all), nil
}

// Tags returns the distinct tags in use, sorted.
func (s *Store) Tags() ([]string, error) {
	ideas, err := s.Load()
	if err != nil {
		return nil, err
	}
	var all []string
	for _, i := range ideas {
		all = append(all, i.Tags...)
	}
	return uniqueSorted(all), nil
}

func uniqueSorted(in []string) []string {
	slices.Sort(in)
	return slices.Compact(in)
}
