package prompt

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/ci/internal/errors"
)

// FinderFunc matches fuzzyfinder.Find; tests substitute it.
type FinderFunc func(choices []Choice, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error)

var find FinderFunc = func(choices []Choice, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error) {
	return fuzzyfinder.Find(choices, itemFunc, opts...)
}

// Pick opens a full-screen fuzzy finder over choices and returns the chosen
// name. Aborting (Esc, Ctrl+C) returns ErrSelectionCancelled.
func Pick(prompt string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	idx, err := find(
		choices,
		func(i int) string { return choices[i].Name },
		fuzzyfinder.WithPromptString(prompt+" > "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 || i >= len(choices) {
				return ""
			}
			return fmt.Sprintf("%s\n\n%s", choices[i].Name, choices[i].Description)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "fuzzy selection failed")
	}
	return choices[idx].Name, nil
}
