package initialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/state"
)

func NewCmdInit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init [vaultdir]",
		Aliases: []string{"i"},
		Short:   "Set up the vault and configuration.",
		Long: heredoc.Doc(`
			This command writes the configuration file, records the vault
			directory, and creates the people directory inside it. With no
			argument it prompts for the vault path in a terminal.
		`),
		Example: heredoc.Doc(`
			dossier init ~/vault
			dossier init
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	vaultDir, err := resolveVaultDir(args)
	if err != nil {
		return err
	}

	info, err := os.Stat(vaultDir)
	if err != nil {
		return fmt.Errorf("error: vault directory %q does not exist: %w", vaultDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("error: %q is not a directory", vaultDir)
	}

	settings := *s.Settings
	settings.VaultDir = vaultDir

	if err := settings.Save(s.Home); err != nil {
		return err
	}
	if err := s.Reload(&settings); err != nil {
		return err
	}

	if err := s.Store.CreateDirectory(s.Settings.PeopleRoot()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized. Config at %s, people at %s\n",
		config.GetConfigPath(s.Home), s.Settings.PeopleRoot())

	return nil
}

func resolveVaultDir(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Clean(args[0]), nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no vault directory given and stdin is not a terminal")
	}

	input := textinput.New("Where is your vault?")
	input.InitialValue, _ = os.Getwd()

	value, err := input.RunPrompt()
	if err != nil {
		return "", err
	}

	return filepath.Clean(value), nil
}
