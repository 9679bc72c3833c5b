package people

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kettleby/dossier/internal/fzf"
	"github.com/kettleby/dossier/internal/host"
	"github.com/kettleby/dossier/internal/state"
)

func NewCmdPeople(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "people",
		Aliases: []string{"p", "ls"},
		Short:   "List every person in the vault.",
		Long: heredoc.Doc(`
			This command lists every person directory under the people root with
			its note count. With --pick it opens the fuzzy finder instead, then a
			second finder over the chosen person's notes, and opens the selected
			note in your editor.
		`),
		Example: heredoc.Doc(`
			dossier people
			dossier people --pick
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	cmd.Flags().BoolP("pick", "p", false, "Fuzzy-pick a person and open one of their notes.")

	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	pick, err := cmd.Flags().GetBool("pick")
	if err != nil {
		return err
	}

	if pick {
		return runPick(s)
	}

	people, err := s.Index.People()
	if err != nil {
		return err
	}

	if len(people) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No people yet. Create one with 'dossier new <name>'.")
		return nil
	}

	for _, p := range people {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  (%d notes)\n", p.Name, len(p.Notes))
	}

	return nil
}

func runPick(s *state.State) error {
	person, err := fzf.NewPersonFinder(s.Index, "Select a person.").Run("")
	if err != nil {
		return err
	}

	note, err := fzf.NewNoteFinder("Select a note to open.").Run(person.Notes)
	if err != nil {
		return err
	}

	return host.OpenInEditor(note.FilePath, s.Settings)
}
