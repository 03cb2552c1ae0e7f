package git

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/thoreinstein/ci/internal/errors"
)

// Open finds the repository containing dir, searching parent directories.
// It wraps errors.ErrNotGitRepo when there is none.
func Open(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, errors.Wrapf(errors.ErrNotGitRepo, "%s", dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening repository at %s", dir)
	}
	return repo, nil
}

// Root returns the top level of the work tree containing dir.
func Root(dir string) (string, error) {
	repo, err := Open(dir)
	if err != nil {
		return "", err
	}
	return worktreeRoot(repo)
}

func worktreeRoot(repo *gogit.Repository) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", errors.Wrap(err, "repository has no work tree")
	}
	return filepath.Clean(wt.Filesystem.Root()), nil
}

// Change is one path with uncommitted changes. Staging and Worktree hold the
// porcelain status letters.
type Change struct {
	Path     string `json:"path"`
	Staging  string `json:"staging"`
	Worktree string `json:"worktree"`
}

// Staged reports whether the change is in the index.
func (c Change) Staged() bool {
	return c.Staging != " " && c.Staging != "?"
}

// Status summarizes a repository.
type Status struct {
	Root     string   `json:"root"`
	Branch   string   `json:"branch"`
	Detached bool     `json:"detached"`
	Clean    bool     `json:"clean"`
	Changes  []Change `json:"changes"`
	Commits  int      `json:"commits"`
	Origin   string   `json:"origin,omitempty"`
	Head     string   `json:"head,omitempty"`
}

// Inspect reads the status of the repository containing dir.
func Inspect(dir string) (*Status, error) {
	repo, err := Open(dir)
	if err != nil {
		return nil, err
	}
	root, err := worktreeRoot(repo)
	if err != nil {
		return nil, err
	}
	s := &Status{Root: root, Changes: []Change{}}

	if err := readHead(repo, s); err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "opening work tree")
	}
	st, err := wt.Status()
	if err != nil {
		return nil, errors.Wrap(err, "reading work tree status")
	}
	for path, fs := range st {
		if fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Unmodified {
			continue
		}
		s.Changes = append(s.Changes, Change{
			Path:     path,
			Staging:  string(fs.Staging),
			Worktree: string(fs.Worktree),
		})
	}
	sort.Slice(s.Changes, func(i, j int) bool { return s.Changes[i].Path < s.Changes[j].Path })
	s.Clean = len(s.Changes) == 0

	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			s.Origin = urls[0]
		}
	} else if !errors.Is(err, gogit.ErrRemoteNotFound) {
		return nil, errors.Wrap(err, "reading origin remote")
	}
	return s, nil
}

// readHead fills the branch, head commit and commit count. A repository
// without commits reports the branch HEAD points at and zero commits.
func readHead(repo *gogit.Repository, s *Status) error {
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		ref, err := repo.Reference(plumbing.HEAD, false)
		if err != nil {
			return errors.Wrap(err, "reading HEAD")
		}
		s.Branch = ref.Target().Short()
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading HEAD")
	}

	if head.Name().IsBranch() {
		s.Branch = head.Name().Short()
	} else {
		s.Detached = true
		s.Branch = "HEAD"
	}
	s.Head = head.Hash().String()

	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return errors.Wrap(err, "reading history")
	}
	defer iter.Close()
	return errors.Wrap(iter.ForEach(func(*object.Commit) error {
		s.Commits++
		return nil
	}), "counting commits")
}

// SuggestMessage builds a commit message describing the staged changes.
func SuggestMessage(changes []Change) string {
	var added, modified, deleted, renamed []string
	for _, c := range changes {
		if !c.Staged() {
			continue
		}
		switch c.Staging {
		case string(gogit.Added), string(gogit.Copied):
			added = append(added, c.Path)
		case string(gogit.Deleted):
			deleted = append(deleted, c.Path)
		case string(gogit.Renamed):
			renamed = append(renamed, c.Path)
		default:
			modified = append(modified, c.Path)
		}
	}
	total := len(added) + len(modified) + len(deleted) + len(renamed)
	switch {
	case total == 0:
		return ""
	case total == 1:
		switch {
		case len(added) == 1:
			return "Add " + added[0]
		case len(deleted) == 1:
			return "Remove " + deleted[0]
		case len(renamed) == 1:
			return "Rename " + renamed[0]
		default:
			return "Update " + modified[0]
		}
	}

	var parts []string
	for _, p := range []struct {
		n    int
		verb string
	}{{len(added), "added"}, {len(modified), "modified"}, {len(deleted), "deleted"}, {len(renamed), "renamed"}} {
		if p.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", p.n, p.verb))
		}
	}
	return fmt.Sprintf("Update %d files (%s)", total, strings.Join(parts, ", "))
}
