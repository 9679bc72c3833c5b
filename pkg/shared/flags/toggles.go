package flags

import (
	"github.com/spf13/cobra"

	"github.com/kettleby/dossier/internal/creator"
)

func AddNoEmbed(cmd *cobra.Command) {
	cmd.Flags().Bool("no-embed", false, "Skip embedding a reference into the pinned note.")
}

func AddNoTOC(cmd *cobra.Command) {
	cmd.Flags().Bool("no-toc", false, "Skip updating the person's table of contents.")
}

func AddOpen(cmd *cobra.Command) {
	cmd.Flags().BoolP("open", "o", false, "Open the new note in the configured editor.")
}

// HandleCreateOptions folds the skip toggles into creation options.
func HandleCreateOptions(cmd *cobra.Command) (creator.Options, error) {
	opts := creator.DefaultOptions()

	noEmbed, err := cmd.Flags().GetBool("no-embed")
	if err != nil {
		return opts, err
	}
	noTOC, err := cmd.Flags().GetBool("no-toc")
	if err != nil {
		return opts, err
	}

	opts.Embed = !noEmbed
	opts.UpdateTOC = !noTOC

	ts, err := HandleTime(cmd)
	if err != nil {
		return opts, err
	}
	opts.Timestamp = ts

	return opts, nil
}

func HandleOpen(cmd *cobra.Command) (bool, error) {
	return cmd.Flags().GetBool("open")
}
