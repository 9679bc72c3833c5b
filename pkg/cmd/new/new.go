package new

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kettleby/dossier/internal/host"
	"github.com/kettleby/dossier/internal/search"
	"github.com/kettleby/dossier/internal/state"
	"github.com/kettleby/dossier/internal/tui/picker"
	"github.com/kettleby/dossier/pkg/shared/flags"
)

func NewCmdNew(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new [name]",
		Aliases: []string{"n"},
		Short:   "Create a timestamped note for a person.",
		Long: heredoc.Doc(`
			This command creates a new timestamped note inside the named person's
			directory, embeds a reference to it in your pinned note, and records it
			in the person's table of contents.

			Without a name it opens the interactive person picker, where typing
			reranks candidates live and a name with no match offers to create a
			new person.
		`),
		Example: heredoc.Doc(`
			dossier new "John Doe"
			dossier new "John Doe" --time "2025-09-11 10:18"
			dossier new "John Doe" --no-embed --copy
			dossier new
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	flags.AddTime(cmd)
	flags.AddNoEmbed(cmd)
	flags.AddNoTOC(cmd)
	flags.AddCopy(cmd)
	flags.AddOpen(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	name := strings.TrimSpace(strings.Join(args, " "))

	if name == "" {
		picked, err := pickPerson(s)
		if err != nil {
			return err
		}
		if picked == "" {
			return nil
		}
		name = picked
	}

	opts, err := flags.HandleCreateOptions(cmd)
	if err != nil {
		return err
	}

	result, err := s.Creator.Create(name, opts)
	if err != nil {
		return err
	}

	s.Searcher.Invalidate()
	s.Shell.ShowMessage(result.Summary(), false)
	if result.EmbedErr != nil {
		s.Shell.ShowMessage(fmt.Sprintf("embed: %v", result.EmbedErr), true)
	}
	if result.TOCErr != nil {
		s.Shell.ShowMessage(fmt.Sprintf("index: %v", result.TOCErr), true)
	}

	ref := s.Embedder.Reference(result.Note.BaseName(), result.Note.FilePath)
	copied, copyErr := flags.HandleCopy(cmd, ref)
	if copyErr != nil {
		s.Shell.ShowMessage(fmt.Sprintf("clipboard: %v", copyErr), true)
	} else if copied {
		s.Shell.ShowMessage("Reference copied to clipboard", false)
	}

	open, err := flags.HandleOpen(cmd)
	if err != nil {
		return err
	}
	if open {
		return host.OpenInEditor(result.Note.FilePath, s.Settings)
	}

	return nil
}

// pickPerson runs the search modal and returns the chosen name, or ""
// when the user aborts.
func pickPerson(s *state.State) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no person name given and stdin is not a terminal")
	}

	result, selected, err := picker.Run(search.NewAsync(s.Searcher))
	if err != nil {
		return "", err
	}
	if !selected {
		return "", nil
	}

	return result.Person.Name, nil
}
