package prompt

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/ci/internal/errors"
)

// Confirm asks a yes/no question. Empty input returns defaultYes; EOF
// counts as "no".
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.writer, "%s %s: ", question, hint)

	input, err := p.readLine()
	if err != nil {
		if errors.Is(err, ErrSelectionCancelled) {
			fmt.Fprintln(p.writer)
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(input) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
