package frontmatter

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ci/internal/errors"
)

var (
	// ErrMissingFrontmatter is returned by Split when content has no header.
	ErrMissingFrontmatter = errors.New("missing frontmatter")

	// ErrUnterminated indicates an opening delimiter without a closing one.
	ErrUnterminated = errors.New("missing closing frontmatter delimiter")
)

const delimiter = "---"

// Parse decodes optional frontmatter into matter and returns the body.
// Without a complete header, matter is untouched and the full content is the
// body.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading frontmatter source")
	}

	header, body, err := Split(content)
	if err != nil {
		return content, nil
	}
	if err := yaml.Unmarshal(header, matter); err != nil {
		return nil, errors.Wrap(err, "parsing frontmatter")
	}
	return body, nil
}

// Split separates the YAML header from the body without decoding it.
func Split(content []byte) (header, body []byte, err error) {
	first, rest, _ := cutLine(content)
	if string(trimCR(first)) != delimiter {
		return nil, nil, ErrMissingFrontmatter
	}

	offset := 0
	for offset <= len(rest) {
		line, next, more := cutLine(rest[offset:])
		if string(trimCR(line)) == delimiter {
			return rest[:offset], next, nil
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return nil, nil, ErrUnterminated
}

// cutLine returns the first line of b (without its newline), the remainder,
// and whether a newline was found.
func cutLine(b []byte) (line, rest []byte, found bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+1:], true
}

func trimCR(b []byte) []byte {
	return bytes.TrimSuffix(b, []byte("\r"))
}
