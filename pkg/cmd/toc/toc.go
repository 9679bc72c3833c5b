package toc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kettleby/dossier/internal/person"
	"github.com/kettleby/dossier/internal/state"
	"github.com/kettleby/dossier/internal/toc"
)

func NewCmdTOC(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toc [name]",
		Aliases: []string{"index"},
		Short:   "Show or rebuild a person's table of contents.",
		Long: heredoc.Doc(`
			This command prints the entries of a person's table of contents,
			parsed from its list items. With --regen it rebuilds the file from
			the notes on disk instead, newest first, repairing any manual edits
			or deletions. --regen without a name rebuilds every person's table
			of contents, reporting failures per person and carrying on.
		`),
		Example: heredoc.Doc(`
			dossier toc "John Doe"
			dossier toc "John Doe" --regen
			dossier toc --regen
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().Bool("regen", false, "Rebuild the table of contents from the notes on disk.")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	name := strings.TrimSpace(strings.Join(args, " "))

	regen, err := cmd.Flags().GetBool("regen")
	if err != nil {
		return err
	}

	if name == "" {
		if !regen {
			return fmt.Errorf("error: no person name given, try 'dossier toc [name]'")
		}
		return regenAll(cmd, s)
	}

	rec, err := s.Index.Person(name)
	if err != nil {
		return err
	}

	if regen {
		if err := s.Merger.RegenerateAll(rec, rec.Notes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt table of contents for %s (%d notes)\n", rec.Name, len(rec.Notes))
		return nil
	}

	content, exists, err := s.Merger.Read(rec)
	if err != nil {
		return err
	}
	if !exists {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has no table of contents yet.\n", rec.Name)
		return nil
	}

	entries := toc.Entries(content)
	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Table of contents for %s is empty.\n", rec.Name)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintln(cmd.OutOrStdout(), entry)
	}

	return nil
}

// regenAll rebuilds every person's table of contents. A person that
// fails, or vanishes between the scan and the rebuild, is reported and
// skipped rather than aborting the rest.
func regenAll(cmd *cobra.Command, s *state.State) error {
	people, err := s.Index.People()
	if err != nil {
		return err
	}

	for _, p := range people {
		rec, err := s.Index.Person(p.Name)
		if err != nil {
			var notFound *person.NotFoundError
			if errors.As(err, &notFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", p.Name, err)
				continue
			}
			return err
		}

		if err := s.Merger.RegenerateAll(rec, rec.Notes); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error rebuilding %s: %v\n", rec.Name, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt table of contents for %s (%d notes)\n", rec.Name, len(rec.Notes))
	}

	return nil
}
