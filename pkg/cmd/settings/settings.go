package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/state"
)

// setting describes one adjustable key: how to read it, how to write
// it, and the choices offered when no value is given on the command line.
type setting struct {
	get     func(*config.Settings) string
	set     func(*config.Settings, string)
	choices []string
}

var settingsByKey = map[string]setting{
	"vaultdir": {
		get: func(s *config.Settings) string { return s.VaultDir },
		set: func(s *config.Settings, v string) { s.VaultDir = v },
	},
	"peopledir": {
		get: func(s *config.Settings) string { return s.PeopleDir },
		set: func(s *config.Settings, v string) { s.PeopleDir = v },
	},
	"tocfilename": {
		get: func(s *config.Settings) string { return s.TOCFileName },
		set: func(s *config.Settings, v string) { s.TOCFileName = v },
	},
	"embeddingformat": {
		get:     func(s *config.Settings) string { return s.EmbeddingFormat },
		set:     func(s *config.Settings, v string) { s.EmbeddingFormat = v },
		choices: []string{config.FormatWikilink, config.FormatMarkdownLink},
	},
	"noteembedtype": {
		get:     func(s *config.Settings) string { return s.NoteEmbedType },
		set:     func(s *config.Settings, v string) { s.NoteEmbedType = v },
		choices: []string{config.ContentLink, config.ContentEmbed},
	},
	"toccontenttype": {
		get:     func(s *config.Settings) string { return s.TOCContentType },
		set:     func(s *config.Settings, v string) { s.TOCContentType = v },
		choices: []string{config.ContentLink, config.ContentEmbed},
	},
	"timestampformat": {
		get:     func(s *config.Settings) string { return s.TimestampFormat },
		set:     func(s *config.Settings, v string) { s.TimestampFormat = v },
		choices: []string{config.TimestampWithSeconds, config.TimestampWithoutSeconds},
	},
	"editor": {
		get:     func(s *config.Settings) string { return s.Editor },
		set:     func(s *config.Settings, v string) { s.Editor = v },
		choices: []string{"nvim", "vim", "nano", "vscode", "code", "obsidian"},
	},
	"editorargs": {
		get: func(s *config.Settings) string { return s.EditorArgs },
		set: func(s *config.Settings, v string) { s.EditorArgs = v },
	},
}

func NewCmdSettings(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"cfg"},
		Short:   "Show your current settings.",
		Long: heredoc.Doc(`
			This command prints every setting with its current value. Use the set
			subcommand to change one; changes are validated and persisted, and the
			running command tree picks them up immediately.
		`),
		Example: "dossier settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]string, 0, len(settingsByKey))
			for key := range settingsByKey {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", key, settingsByKey[key].get(s.Settings))
			}

			return nil
		},
	}

	cmd.AddCommand(newCmdSet(s))

	return cmd
}

func newCmdSet(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change one setting.",
		Long: heredoc.Doc(`
			Sets the named key. Keys with a fixed set of values prompt for a
			selection when no value is given.
		`),
		Example: heredoc.Doc(`
			dossier settings set editor nvim
			dossier settings set embeddingformat
		`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("error: no key given, try 'dossier settings set [key] [value]'")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args, s)
		},
	}
}

func runSet(cmd *cobra.Command, args []string, s *state.State) error {
	key := strings.ToLower(args[0])

	entry, ok := settingsByKey[key]
	if !ok {
		keys := make([]string, 0, len(settingsByKey))
		for k := range settingsByKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown setting %q, available: %s", key, strings.Join(keys, ", "))
	}

	var value string
	if len(args) > 1 {
		value = args[1]
	} else {
		if len(entry.choices) == 0 {
			return fmt.Errorf("error: no value given for %q", key)
		}

		sel := selection.New(fmt.Sprintf("Select a value for %s.", key), entry.choices)
		sel.Filter = nil

		chosen, err := sel.RunPrompt()
		if err != nil {
			return err
		}
		value = chosen
	}

	updated := *s.Settings
	entry.set(&updated, value)

	if err := updated.Save(s.Home); err != nil {
		return err
	}
	if err := s.Reload(&updated); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)

	return nil
}
