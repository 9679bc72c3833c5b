package pin

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kettleby/dossier/internal/fzf"
	"github.com/kettleby/dossier/internal/pathutil"
	"github.com/kettleby/dossier/internal/state"
	"github.com/kettleby/dossier/internal/store"
)

func NewCmdPin(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pin [path]",
		Aliases: []string{"active"},
		Short:   "Pin the note that receives embedded references.",
		Long: heredoc.Doc(`
			New-note references are appended to the pinned note. This command
			sets the pin to the given path, or with no path opens the fuzzy
			finder over your people's notes to pick one. Use --clear to unpin.
		`),
		Example: heredoc.Doc(`
			dossier pin ~/vault/Daily.md
			dossier pin
			dossier pin --clear
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().Bool("clear", false, "Remove the pinned note.")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	clear, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}

	if clear {
		return save(cmd, s, "")
	}

	if len(args) == 0 {
		return runPick(cmd, s)
	}

	path := pathutil.NormalizePath(args[0])

	kind, err := s.Store.Resolve(path)
	if err != nil {
		return err
	}
	if kind != store.File {
		return fmt.Errorf("error: %q is not a file", path)
	}

	return save(cmd, s, path)
}

func runPick(cmd *cobra.Command, s *state.State) error {
	person, err := fzf.NewPersonFinder(s.Index, "Select a person.").Run("")
	if err != nil {
		return err
	}

	note, err := fzf.NewNoteFinder("Select a note to pin.").Run(person.Notes)
	if err != nil {
		return err
	}

	return save(cmd, s, note.FilePath)
}

func save(cmd *cobra.Command, s *state.State, path string) error {
	settings := *s.Settings
	settings.PinnedFile = path

	if err := settings.Save(s.Home); err != nil {
		return err
	}
	if err := s.Reload(&settings); err != nil {
		return err
	}

	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Pin cleared.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s\n", path)
	}

	return nil
}
