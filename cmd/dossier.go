package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kettleby/dossier/internal/state"
	"github.com/kettleby/dossier/pkg/cmd/root"
)

func Execute() {
	s, err := state.New()
	cobra.CheckErr(err)

	rootCmd, err := root.NewCmdRoot(s)
	cobra.CheckErr(err)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
