package flags

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var writeClipboard = clipboard.WriteAll

func AddCopy(cmd *cobra.Command) {
	cmd.Flags().BoolP("copy", "c", false, "Copy the new note's reference link to the clipboard.")
}

// HandleCopy writes the reference to the clipboard when --copy is set.
// Clipboard failures are not fatal; the note already exists.
func HandleCopy(cmd *cobra.Command, reference string) (bool, error) {
	copyFlag, err := cmd.Flags().GetBool("copy")
	if err != nil {
		return false, err
	}
	if !copyFlag {
		return false, nil
	}

	if err := writeClipboard(reference); err != nil {
		return false, err
	}

	return true, nil
}
