package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/ci/internal/errors"
)

// MaxFileSize is the largest file ci reads into memory (8 MiB). Catalogs such
// as AGENTS_FULL.md stay far below it.
const MaxFileSize = 8 << 20

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// Errors wrap the underlying os error, so errors.Is(err, os.ErrNotExist) works.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// ReadString is ReadFileWithLimit returning a string.
func ReadString(path string) (string, error) {
	data, err := ReadFileWithLimit(path)
	return string(data), err
}
