package prompt

import (
	"fmt"
)

// Input asks for a line of free text. Empty input returns def; EOF returns
// ErrSelectionCancelled.
func (p *Prompter) Input(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.writer, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.writer, "%s: ", question)
	}
	input, err := p.readLine()
	if err != nil {
		return "", err
	}
	if input == "" {
		return def, nil
	}
	return input, nil
}
