// Package listing implements "ci ls": a directory listing grouped by file
// kind and laid out in two columns.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
)

// visibleDotfiles are hidden names listed without --all.
var visibleDotfiles = set(".git", ".gitignore", ".env")

// Entry is one listed file or directory.
type Entry struct {
	Name  string
	Kind  Kind
	IsDir bool
	Size  int64

	// Items is the number of entries in a directory, or -1 when it could
	// not be read.
	Items int
}

// Options controls Collect.
type Options struct {
	// All includes every hidden entry.
	All bool
}

// Collect reads and classifies the entries of dir.
func Collect(dir string, opts Options) ([]Entry, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(errors.ErrNotFound, "directory does not exist: %s", dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrInvalidValue, "path is not a directory: %s", dir)
	}

	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if !opts.All && strings.HasPrefix(name, ".") && !visibleDotfiles[name] {
			continue
		}
		path := filepath.Join(dir, name)
		fi, err := os.Stat(path)
		if err != nil {
			// Dangling symlinks are listed by their own metadata.
			if fi, err = de.Info(); err != nil {
				continue
			}
		}
		e := Entry{Name: name, IsDir: fi.IsDir(), Kind: Classify(name, fi.IsDir())}
		if e.IsDir {
			e.Items = countItems(path)
		} else {
			e.Size = fi.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func countItems(dir string) int {
	des, err := os.ReadDir(dir)
	if err != nil {
		return -1
	}
	return len(des)
}

// Group is the entries of one Kind.
type Group struct {
	Kind    Kind
	Entries []Entry
}

// GroupEntries buckets entries by Kind. Entries are sorted by name ignoring
// case; groups by Kind.
func GroupEntries(entries []Entry) []Group {
	byKind := map[Kind][]Entry{}
	for _, e := range entries {
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}
	groups := make([]Group, 0, len(byKind))
	for k, es := range byKind {
		sort.SliceStable(es, func(i, j int) bool {
			return strings.ToLower(es[i].Name) < strings.ToLower(es[j].Name)
		})
		groups = append(groups, Group{Kind: k, Entries: es})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Kind < groups[j].Kind })
	return groups
}

// FormatSize renders a file size in six cells. Files under 1 KiB are blank.
func FormatSize(n int64) string {
	const (
		kib = 1024
		mib = kib * 1024
		gib = mib * 1024
	)
	switch {
	case n < kib:
		return strings.Repeat(" ", 6)
	case n < mib:
		return fmt.Sprintf("%5.1fK", float64(n)/kib)
	case n < gib:
		return fmt.Sprintf("%5.1fM", float64(n)/mib)
	default:
		return fmt.Sprintf("%5.1fG", float64(n)/gib)
	}
}

// FormatItems renders a directory item count in six cells.
func FormatItems(n int) string {
	var s string
	switch {
	case n < 0:
		s = "?"
	case n == 0:
		s = "empty"
	case n == 1:
		s = "1item"
	case n < 10:
		s = fmt.Sprintf("%ditems", n)
	case n < 100:
		s = fmt.Sprintf("%d+", n)
	default:
		s = "many"
	}
	return fmt.Sprintf("%6s", s)
}

// Subgroup is a titled run of entries inside a Group. An empty Name has no
// heading.
type Subgroup struct {
	Name    string
	Entries []Entry
}

// Subgroups splits a group for display. More than eight directories are
// split in two; more than six files are split by extension family, and
// families of more than ten are split again.
func Subgroups(entries []Entry) []Subgroup {
	var dirs, files []Entry
	for _, e := range entries {
		if e.IsDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}

	var out []Subgroup
	if len(dirs) > 8 {
		mid := len(dirs) / 2
		out = append(out,
			Subgroup{"Directories (Part 1)", dirs[:mid]},
			Subgroup{"Directories (Part 2)", dirs[mid:]})
	} else if len(dirs) > 0 {
		out = append(out, Subgroup{"Directories", dirs})
	}

	for _, sg := range splitFiles(files) {
		switch {
		case sg.Name == "" && len(dirs) == 0:
		case sg.Name == "":
			sg.Name = "Files"
		default:
			sg.Name = "Files - " + sg.Name
		}
		out = append(out, sg)
	}
	return out
}

func splitFiles(files []Entry) []Subgroup {
	if len(files) == 0 {
		return nil
	}
	if len(files) <= 6 {
		return []Subgroup{{Entries: files}}
	}

	byFamily := map[string][]Entry{}
	for _, f := range files {
		name := family(f.Name)
		byFamily[name] = append(byFamily[name], f)
	}
	fams := make([]Subgroup, 0, len(byFamily))
	for name, es := range byFamily {
		fams = append(fams, Subgroup{name, es})
	}
	sort.Slice(fams, func(i, j int) bool {
		if familyOrder[fams[i].Name] != familyOrder[fams[j].Name] {
			return familyOrder[fams[i].Name] < familyOrder[fams[j].Name]
		}
		return len(fams[i].Entries) > len(fams[j].Entries)
	})

	var out []Subgroup
	for _, f := range fams {
		if len(f.Entries) <= 10 {
			out = append(out, f)
			continue
		}
		half := (len(f.Entries) + 1) / 2
		out = append(out,
			Subgroup{f.Name, f.Entries[:half]},
			Subgroup{f.Name + " (continued)", f.Entries[half:]})
	}
	if len(out) == 1 {
		out[0].Name = ""
	}
	return out
}
