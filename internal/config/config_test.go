package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kettleby/dossier/internal/config"
)

func writeConfig(t *testing.T, home string, data map[string]any) {
	t.Helper()

	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}

	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"vaultdir": filepath.Join(home, "vault"),
	})

	s, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if s.PeopleDir != "People" {
		t.Errorf("expected default people directory, got %q", s.PeopleDir)
	}
	if s.TOCFileName != "{name} TOC" {
		t.Errorf("expected default TOC template, got %q", s.TOCFileName)
	}
	if s.EmbeddingFormat != config.FormatWikilink {
		t.Errorf("expected wikilink default, got %q", s.EmbeddingFormat)
	}
	if s.NoteEmbedType != config.ContentLink || s.TOCContentType != config.ContentLink {
		t.Errorf("expected link defaults, got %q / %q", s.NoteEmbedType, s.TOCContentType)
	}
	if s.TimestampFormat != config.TimestampWithSeconds {
		t.Errorf("expected seconds precision default, got %q", s.TimestampFormat)
	}
}

func TestLoadIgnoresUnrecognizedKeys(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"vaultdir":           filepath.Join(home, "vault"),
		"someFutureSetting":  true,
		"anotherUnknownBlob": map[string]any{"x": 1},
	})

	if _, err := config.Load(home); err != nil {
		t.Fatalf("Load should ignore unrecognized keys, got error: %v", err)
	}
}

func TestLoadRejectsInvalidEnums(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"embedding format", "embeddingFormat", "html"},
		{"note embed type", "noteEmbedType", "transclude"},
		{"toc content type", "tocContentType", "inline"},
		{"timestamp format", "timestampFormat", "unix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			writeConfig(t, home, map[string]any{tt.key: tt.val})

			if _, err := config.Load(home); err == nil {
				t.Fatalf("expected Load to reject %s %q", tt.key, tt.val)
			}
		})
	}
}

func TestLoadRejectsTOCTemplateWithoutPlaceholder(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"tableOfContentsFileName": "Index",
	})

	_, err := config.Load(home)
	if err == nil {
		t.Fatal("expected Load to reject a TOC template without {name}")
	}
	if !strings.Contains(err.Error(), "{name}") {
		t.Errorf("error should mention the {name} placeholder, got: %v", err)
	}
}

func TestLoadRejectsUnsupportedEditor(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"editor": "emacs",
	})

	if _, err := config.Load(home); err == nil {
		t.Fatal("expected Load to reject unsupported editor")
	}
}

func TestTOCFileFor(t *testing.T) {
	s := config.Default()
	if got := s.TOCFileFor("John Doe"); got != "John Doe TOC" {
		t.Errorf("TOCFileFor = %q, want %q", got, "John Doe TOC")
	}

	s.TOCFileName = "TOC - {name}"
	if got := s.TOCFileFor("Jane"); got != "TOC - Jane" {
		t.Errorf("TOCFileFor = %q, want %q", got, "TOC - Jane")
	}
}

func TestPeopleRoot(t *testing.T) {
	s := config.Default()
	s.VaultDir = "/vault"
	if got := s.PeopleRoot(); got != filepath.Join("/vault", "People") {
		t.Errorf("PeopleRoot = %q", got)
	}

	s.PeopleDir = "/elsewhere/people"
	if got := s.PeopleRoot(); got != "/elsewhere/people" {
		t.Errorf("PeopleRoot = %q, want absolute path untouched", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}

	s, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	s.VaultDir = filepath.Join(home, "vault")
	s.EmbeddingFormat = config.FormatMarkdownLink
	s.TimestampFormat = config.TimestampWithoutSeconds
	if err := s.Save(home); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}

	if reloaded.EmbeddingFormat != config.FormatMarkdownLink {
		t.Errorf("embedding format not persisted: %q", reloaded.EmbeddingFormat)
	}
	if reloaded.TimestampFormat != config.TimestampWithoutSeconds {
		t.Errorf("timestamp format not persisted: %q", reloaded.TimestampFormat)
	}
	if reloaded.VaultDir != s.VaultDir {
		t.Errorf("vault dir not persisted: %q", reloaded.VaultDir)
	}
}

func TestEnsureConfigExistsReportsUnusableFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{"embeddingFormat": "html"})

	err := config.EnsureConfigExists(home)
	if err == nil {
		t.Fatal("expected error for unusable config file")
	}

	var initErr *config.InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %T: %v", err, err)
	}
	if initErr.Path != config.GetConfigPath(home) {
		t.Fatalf("path = %q", initErr.Path)
	}
	if initErr.Unwrap() == nil {
		t.Fatal("expected wrapped cause")
	}
}
