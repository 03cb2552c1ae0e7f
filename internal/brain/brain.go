// Package brain manages the registered BRAIN knowledge directory.
//
// Registration stores the absolute path of a directory containing BRAIN/ in
// ~/.ci_brain_config as plain text.
package brain

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Environment variables describing the BRAIN to child processes.
const (
	EnvPath      = "CI_BRAIN_PATH"
	EnvAvailable = "CI_BRAIN_AVAILABLE"
	EnvTest      = "CI_BRAIN_TEST"
)

// Sentinel errors for registration.
var (
	ErrPathNotFound = errors.New("path does not exist")
	ErrNoBrainDir   = errors.New("path does not contain a BRAIN directory")
	ErrNoMarkdown   = errors.New("BRAIN directory contains no markdown files")
)

// Registry reads and writes the BRAIN registration file.
type Registry struct {
	ConfigPath string
}

// NewRegistry returns a registry backed by configPath, or by
// ~/.ci_brain_config when configPath is empty.
func NewRegistry(configPath string) *Registry {
	if configPath == "" {
		configPath = paths.BrainConfigPath()
	}
	return &Registry{ConfigPath: configPath}
}

// Path returns the registered root. It wraps errors.ErrNotRegistered when no
// registration exists.
func (r *Registry) Path() (string, error) {
	content, err := fileutil.ReadString(r.ConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrap(errors.ErrNotRegistered, "use 'ci brain register <path>' first")
	}
	if err != nil {
		return "", errors.Wrap(err, "reading BRAIN configuration")
	}
	path := strings.TrimSpace(content)
	if path == "" {
		return "", errors.Wrap(errors.ErrNotRegistered, "BRAIN configuration is empty")
	}
	return path, nil
}

// Register validates root and records it. It returns the absolute path and
// the number of markdown files found.
func (r *Registry) Register(root string) (string, int, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", 0, errors.Wrapf(err, "resolving %s", root)
	}
	if !paths.Exists(abs) {
		return "", 0, errors.Wrapf(ErrPathNotFound, "%s", root)
	}
	dir := Dir(abs)
	if !paths.IsDir(dir) {
		return "", 0, errors.WithDetailf(errors.Wrapf(ErrNoBrainDir, "%s", root), "expected: %s", dir)
	}
	count := CountMarkdown(dir)
	if count == 0 {
		return "", 0, errors.Wrapf(ErrNoMarkdown, "%s", dir)
	}
	if err := fileutil.AtomicWriteFile(r.ConfigPath, []byte(abs), fileutil.DefaultFilePerm); err != nil {
		return "", 0, errors.Wrap(err, "writing BRAIN configuration")
	}
	return abs, count, nil
}

// Dir returns the BRAIN directory inside root.
func Dir(root string) string {
	return filepath.Join(root, paths.BrainDirName)
}

func isMarkdown(e os.DirEntry) bool {
	return !e.IsDir() && filepath.Ext(e.Name()) == ".md"
}

// CountMarkdown counts .md files directly in dir and one level below it.
func CountMarkdown(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		switch {
		case isMarkdown(e):
			count++
		case e.IsDir():
			count += countFlat(filepath.Join(dir, e.Name()))
		}
	}
	return count
}

func countFlat(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if isMarkdown(e) {
			n++
		}
	}
	return n
}

// File is a markdown file at the BRAIN root.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Subdir is a BRAIN subdirectory holding markdown files.
type Subdir struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Source summarizes the content of a BRAIN directory.
type Source struct {
	Root  string   `json:"root"`
	Dir   string   `json:"dir"`
	Files []File   `json:"files"`
	Dirs  []Subdir `json:"dirs"`
	Total int      `json:"total"`
}

// Inspect lists the root markdown files and the subdirectories that contain
// markdown, both sorted by name.
func Inspect(root string) (*Source, error) {
	dir := Dir(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading BRAIN directory %s", dir)
	}
	src := &Source{Root: root, Dir: dir, Files: []File{}, Dirs: []Subdir{}}
	for _, e := range entries {
		switch {
		case isMarkdown(e):
			info, err := e.Info()
			if err != nil {
				continue
			}
			src.Files = append(src.Files, File{Name: e.Name(), Size: info.Size()})
		case e.IsDir():
			if n := CountMarkdown(filepath.Join(dir, e.Name())); n > 0 {
				src.Dirs = append(src.Dirs, Subdir{Name: e.Name(), Count: n})
			}
		}
	}
	sort.Slice(src.Files, func(i, j int) bool { return src.Files[i].Name < src.Files[j].Name })
	sort.Slice(src.Dirs, func(i, j int) bool { return src.Dirs[i].Name < src.Dirs[j].Name })
	src.Total = CountMarkdown(dir)
	return src, nil
}

// readableFiles returns how many of the first limit root markdown files are
// readable and non-empty.
func readableFiles(dir string, limit int) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !isMarkdown(e) {
			continue
		}
		content, err := fileutil.ReadString(filepath.Join(dir, e.Name()))
		if err == nil && strings.TrimSpace(content) != "" {
			n++
		}
		if n >= limit {
			break
		}
	}
	return n
}
