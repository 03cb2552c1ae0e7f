// Package idea provides the "ci idea" commands, a small tracker for ideas
// stored as JSON next to the repository.
package idea

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/config"
	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/idea"
	"github.com/thoreinstein/ci/internal/ui"
)

// Cmd is the root idea command.
var Cmd = &cobra.Command{
	Use:     "idea",
	Aliases: []string{"ideas"},
	Short:   "Track ideas",
	Long: `Capture and organize ideas.

Ideas are stored in .ci/ideas.json at the root of the current git repository,
or in the user data directory outside a repository. Set ideas.file in the
application config to use another file.

Commands that take an ID accept the full ID or a unique prefix of at least
four characters.`,
	Example: `  ci idea add "Cache agent catalog" -c Performance -t cache,agents -p high
  ci idea list --status exploring
  ci idea update 3f2a --status done --note "Shipped in 1.2"

  See Also:
    ci idea list - List ideas
    ci idea view - Show one idea`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// openStore returns the store for the working directory.
func openStore() (*idea.Store, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}
	return idea.NewStore(idea.DefaultPath(config.Current().Ideas.File, wd)), nil
}

// userError marks invalid input and lookup failures as user errors.
func userError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "Use 'ci idea list' to see idea IDs")
	case errors.Is(err, idea.ErrAmbiguousID):
		return errors.NewUserError(err, "Use more characters of the ID")
	case errors.Is(err, errors.ErrInvalidValue), errors.Is(err, errors.ErrMissingName):
		return errors.NewUserError(err, "")
	}
	return err
}

func printIdea(p *ui.Printer, i *idea.Idea) {
	p.Header(i.Title)
	p.KeyValue("ID", i.ID)
	p.KeyValue("Category", i.Category)
	p.KeyValue("Status", i.Status.Label())
	p.KeyValue("Priority", i.Priority)
	if len(i.Tags) > 0 {
		p.KeyValue("Tags", strings.Join(i.Tags, ", "))
	}
	p.KeyValue("Created", fmt.Sprintf("%s (%s)", i.CreatedAt.Format("2006-01-02 15:04"), humanize.Time(i.CreatedAt)))
	p.KeyValue("Updated", fmt.Sprintf("%s (%s)", i.UpdatedAt.Format("2006-01-02 15:04"), humanize.Time(i.UpdatedAt)))
	if len(i.RelatedIdeas) > 0 {
		related := make([]string, len(i.RelatedIdeas))
		for n, id := range i.RelatedIdeas {
			related[n] = idea.ShortID(id)
		}
		p.KeyValue("Related", strings.Join(related, ", "))
	}
	if i.Description != "" {
		p.Println()
		p.Println(i.Description)
	}
	if i.Notes != "" {
		p.Println()
		p.Header("Notes")
		p.Println(i.Notes)
	}
}
