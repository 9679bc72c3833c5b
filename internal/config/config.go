// Package config loads and persists the dossier settings snapshot.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"
)

// Link styles for formatted references.
const (
	FormatWikilink     = "wikilink"
	FormatMarkdownLink = "markdown-link"
)

// Reference content types.
const (
	ContentLink  = "link"
	ContentEmbed = "embed"
)

// Timestamp precisions for note file names.
const (
	TimestampWithSeconds    = "iso-with-seconds"
	TimestampWithoutSeconds = "iso-without-seconds"
)

const (
	defaultPeopleDir   = "People"
	defaultTOCTemplate = "{name} TOC"
)

// Settings is the immutable configuration snapshot consumed by every
// component. Construct it through Load (or Default) and thread the value
// explicitly; components never reach into a shared mutable config.
type Settings struct {
	VaultDir        string `yaml:"vaultdir"                json:"vault_dir"`
	PeopleDir       string `yaml:"peopleDirectoryPath"     json:"people_directory_path"`
	TOCFileName     string `yaml:"tableOfContentsFileName" json:"table_of_contents_file_name"`
	EmbeddingFormat string `yaml:"embeddingFormat"         json:"embedding_format"`
	NoteEmbedType   string `yaml:"noteEmbedType"           json:"note_embed_type"`
	TOCContentType  string `yaml:"tocContentType"          json:"toc_content_type"`
	TimestampFormat string `yaml:"timestampFormat"         json:"timestamp_format"`
	Editor          string `yaml:"editor"                  json:"editor"`
	EditorArgs      string `yaml:"editorargs"              json:"editor_args"`
	PinnedFile      string `yaml:"pinned_file"             json:"pinned_file"`
}

var validEditorNames = []string{"nvim", "obsidian", "vscode", "code", "vim", "nano"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		quotedList(validEditorNames),
	)
}

func quotedList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 0 {
		return ""
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// Default returns a settings snapshot with every recognized key at its
// default value.
func Default() *Settings {
	s := &Settings{}
	s.ensureDefaults()
	return s
}

func (s *Settings) ensureDefaults() {
	if strings.TrimSpace(s.PeopleDir) == "" {
		s.PeopleDir = defaultPeopleDir
	}
	if strings.TrimSpace(s.TOCFileName) == "" {
		s.TOCFileName = defaultTOCTemplate
	}
	if s.EmbeddingFormat == "" {
		s.EmbeddingFormat = FormatWikilink
	}
	if s.NoteEmbedType == "" {
		s.NoteEmbedType = ContentLink
	}
	if s.TOCContentType == "" {
		s.TOCContentType = ContentLink
	}
	if s.TimestampFormat == "" {
		s.TimestampFormat = TimestampWithSeconds
	}
}

// Validate rejects unrecognized enum values with descriptive errors.
func (s *Settings) Validate() error {
	switch s.EmbeddingFormat {
	case FormatWikilink, FormatMarkdownLink:
	default:
		return fmt.Errorf(
			"invalid embeddingFormat: %q. Please choose from '%s' or '%s'",
			s.EmbeddingFormat, FormatWikilink, FormatMarkdownLink,
		)
	}

	switch s.NoteEmbedType {
	case ContentLink, ContentEmbed:
	default:
		return fmt.Errorf(
			"invalid noteEmbedType: %q. Please choose from '%s' or '%s'",
			s.NoteEmbedType, ContentLink, ContentEmbed,
		)
	}

	switch s.TOCContentType {
	case ContentLink, ContentEmbed:
	default:
		return fmt.Errorf(
			"invalid tocContentType: %q. Please choose from '%s' or '%s'",
			s.TOCContentType, ContentLink, ContentEmbed,
		)
	}

	switch s.TimestampFormat {
	case TimestampWithSeconds, TimestampWithoutSeconds:
	default:
		return fmt.Errorf(
			"invalid timestampFormat: %q. Please choose from '%s' or '%s'",
			s.TimestampFormat, TimestampWithSeconds, TimestampWithoutSeconds,
		)
	}

	if !strings.Contains(s.TOCFileName, "{name}") {
		return fmt.Errorf(
			"invalid tableOfContentsFileName: %q must contain the {name} placeholder",
			s.TOCFileName,
		)
	}

	if s.Editor != "" {
		if err := ValidateEditor(s.Editor); err != nil {
			return err
		}
	}

	return nil
}

// PeopleRoot resolves the people directory against the vault when the
// configured path is relative.
func (s *Settings) PeopleRoot() string {
	if filepath.IsAbs(s.PeopleDir) {
		return filepath.Clean(s.PeopleDir)
	}
	return filepath.Join(s.VaultDir, s.PeopleDir)
}

// TOCFileFor substitutes the person name into the table-of-contents
// file-name template. The returned name carries no extension.
func (s *Settings) TOCFileFor(normalizedName string) string {
	return strings.ReplaceAll(s.TOCFileName, "{name}", normalizedName)
}

// Load reads the settings file under the provided home directory,
// applying defaults for missing keys and ignoring unrecognized ones.
func Load(home string) (*Settings, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := &Settings{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, err
		}
	}

	s.ensureDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	s.syncViper()

	return s, nil
}

// Save writes the snapshot back to its config file.
func (s *Settings) Save(home string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.syncViper()

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	configPath := GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

func (s *Settings) syncViper() {
	viper.Set("vaultdir", s.VaultDir)
	viper.Set("peopledir", s.PeopleRoot())
	viper.Set("editor", s.Editor)
	viper.Set("editorargs", s.EditorArgs)
	viper.Set("pinned_file", s.PinnedFile)
}
