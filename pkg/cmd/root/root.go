package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kettleby/dossier/internal/constants"
	"github.com/kettleby/dossier/internal/state"
	"github.com/kettleby/dossier/pkg/cmd/initialize"
	"github.com/kettleby/dossier/pkg/cmd/new"
	"github.com/kettleby/dossier/pkg/cmd/open"
	"github.com/kettleby/dossier/pkg/cmd/people"
	"github.com/kettleby/dossier/pkg/cmd/pin"
	"github.com/kettleby/dossier/pkg/cmd/search"
	"github.com/kettleby/dossier/pkg/cmd/settings"
	"github.com/kettleby/dossier/pkg/cmd/toc"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "dossier",
		Version: constants.Version,
		Short:   "Keep dated notes about the people you talk to.",
		Long: heredoc.Doc(`
			Dossier keeps a directory per person inside your Markdown vault.
			Each note is timestamped, indexed in the person's table of contents,
			and referenced from your pinned note, so every conversation leaves
			a trail you can follow from either end.
		`),
		Example: heredoc.Doc(`
			dossier new "John Doe"
			dossier search john
			dossier toc "John Doe" --regen
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		new.NewCmdNew(s),
		search.NewCmdSearch(s),
		people.NewCmdPeople(s),
		toc.NewCmdTOC(s),
		pin.NewCmdPin(s),
		open.NewCmdOpen(s),
		settings.NewCmdSettings(s),
	)

	return cmd, nil
}
