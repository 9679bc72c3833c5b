package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kettleby/dossier/internal/creator"
	"github.com/kettleby/dossier/internal/search"
	"github.com/kettleby/dossier/internal/state"
	"github.com/kettleby/dossier/internal/tui/picker"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"s", "find"},
		Short:   "Search people by name.",
		Long: heredoc.Doc(`
			This command ranks known people against the query, from exact and
			prefix matches down to fuzzy and word-overlap matches. A query that
			matches nobody exactly also offers a "new person" candidate.

			With --interactive (or with no query in a terminal) it opens the live
			picker instead, and selecting a candidate immediately creates a note
			for them.
		`),
		Example: heredoc.Doc(`
			dossier search john
			dossier search "doe jon"
			dossier search -i
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().BoolP("interactive", "i", false, "Open the live search picker.")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	query := strings.TrimSpace(strings.Join(args, " "))

	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return err
	}

	if interactive || query == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			if query == "" {
				return fmt.Errorf("no query given and stdin is not a terminal")
			}
		} else {
			return runInteractive(s)
		}
	}

	results, err := s.Searcher.Search(query)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
		return nil
	}

	for _, r := range results {
		label := r.Person.Name
		if r.IsNewPerson {
			label += " (new person)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.2f  %s\n", r.MatchScore, label)
	}

	return nil
}

func runInteractive(s *state.State) error {
	result, selected, err := picker.Run(search.NewAsync(s.Searcher))
	if err != nil {
		return err
	}
	if !selected {
		return nil
	}

	created, err := s.Creator.Create(result.Person.Name, creator.DefaultOptions())
	if err != nil {
		return err
	}

	s.Searcher.Invalidate()
	s.Shell.ShowMessage(created.Summary(), false)

	return nil
}
