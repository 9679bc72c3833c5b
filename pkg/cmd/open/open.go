package open

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kettleby/dossier/internal/fzf"
	"github.com/kettleby/dossier/internal/host"
	"github.com/kettleby/dossier/internal/state"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [name]",
		Aliases: []string{"o"},
		Short:   "Open a person's latest note in your editor.",
		Long: heredoc.Doc(`
			This command opens the named person's newest note. With --all it
			opens the fuzzy finder over that person's notes instead, and with
			--pinned it opens the pinned note directly.
		`),
		Example: heredoc.Doc(`
			dossier open "John Doe"
			dossier open "John Doe" --all
			dossier open --pinned
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Pick from all of the person's notes.")
	cmd.Flags().Bool("pinned", false, "Open the pinned note.")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	pinned, err := cmd.Flags().GetBool("pinned")
	if err != nil {
		return err
	}

	if pinned {
		path, ok := s.Shell.ActiveNote()
		if !ok {
			return fmt.Errorf("no pinned note, set one with 'dossier pin'")
		}
		return host.OpenInEditor(path, s.Settings)
	}

	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("error: no person name given, try 'dossier open [name]'")
	}

	rec, err := s.Index.Person(name)
	if err != nil {
		return err
	}
	if len(rec.Notes) == 0 {
		return fmt.Errorf("%s has no notes yet", rec.Name)
	}

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	if all {
		note, err := fzf.NewNoteFinder("Select a note to open.").Run(rec.Notes)
		if err != nil {
			return err
		}
		return host.OpenInEditor(note.FilePath, s.Settings)
	}

	return host.OpenInEditor(rec.Notes[0].FilePath, s.Settings)
}
