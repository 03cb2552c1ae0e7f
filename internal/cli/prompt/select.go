// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
)

// Sentinel errors for selection prompts.
var (
	ErrNoChoices          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Choice is one entry offered by Select and Pick.
type Choice struct {
	Name        string
	Description string
}

// Prompter reads answers from a reader and writes questions to a writer.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// New creates a Prompter using stdin and stdout.
func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a Prompter with custom reader and writer for testing.
func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

func (p *Prompter) readLine() (string, error) {
	input, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading input")
	}
	return strings.TrimSpace(input), nil
}

// Select asks the user to choose from a numbered list.
//
// Returns:
//   - ErrNoChoices if the list is empty
//   - index 0 without prompting when only one choice exists
//   - index 0 on empty input
//   - ErrInvalidSelection if the input is not a number in range
//   - ErrSelectionCancelled on EOF (e.g., Ctrl+D)
func (p *Prompter) Select(query string, choices []Choice) (int, error) {
	if len(choices) == 0 {
		return -1, ErrNoChoices
	}
	if len(choices) == 1 {
		return 0, nil
	}

	fmt.Fprintf(p.writer, "Multiple matches for %q:\n", query)
	for i, c := range choices {
		if c.Description != "" {
			fmt.Fprintf(p.writer, "  [%d] %s - %s\n", i+1, c.Name, c.Description)
		} else {
			fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, c.Name)
		}
	}
	fmt.Fprintf(p.writer, "Select [1]: ")

	input, err := p.readLine()
	if err != nil {
		return -1, err
	}
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return -1, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(choices) {
		return -1, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(choices))
	}
	return selection - 1, nil
}
