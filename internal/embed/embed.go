// Package embed formats notes as document-internal references and
// splices them into host documents.
package embed

import (
	"fmt"
	"strings"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/host"
	"github.com/kettleby/dossier/internal/pathutil"
	"github.com/kettleby/dossier/internal/store"
)

// FormatReference renders a reference to the note identified by
// baseName (file name without .md) and filePath.
//
// Wikilinks use the base name alone; the embed insertion style prefixes
// the bang. Markdown links cannot express embedding, so the insertion
// style is ignored and the target path has its spaces percent-encoded.
func FormatReference(baseName, filePath, format, insertionStyle string) string {
	if format == config.FormatMarkdownLink {
		encoded := strings.ReplaceAll(filePath, " ", "%20")
		return fmt.Sprintf("[%s](%s)", baseName, encoded)
	}

	if insertionStyle == config.ContentEmbed {
		return fmt.Sprintf("![[%s]]", baseName)
	}
	return fmt.Sprintf("[[%s]]", baseName)
}

// Embedder appends note references to the currently active document.
type Embedder struct {
	store    store.Store
	shell    host.Shell
	settings *config.Settings
}

func New(st store.Store, shell host.Shell, settings *config.Settings) *Embedder {
	return &Embedder{store: st, shell: shell, settings: settings}
}

// Reference formats a reference to the given note using the in-document
// embedding configuration from settings. Markdown-link paths are made
// vault-relative so they stay valid wherever the vault lives.
func (e *Embedder) Reference(baseName, filePath string) string {
	path := filePath
	if e.settings.EmbeddingFormat == config.FormatMarkdownLink {
		if rel, err := pathutil.VaultRelative(e.settings.VaultDir, filePath); err == nil {
			path = rel
		}
	}
	return FormatReference(baseName, path, e.settings.EmbeddingFormat, e.settings.NoteEmbedType)
}

// EmbedInActiveNote appends a reference to the active document. It
// reports false, without writing, when no document is active or when
// the read or write fails; the error carries the diagnostic.
func (e *Embedder) EmbedInActiveNote(baseName, filePath string) (bool, error) {
	target, ok := e.shell.ActiveNote()
	if !ok {
		return false, fmt.Errorf("no active note to embed into")
	}

	content, err := e.store.ReadText(target)
	if err != nil {
		return false, err
	}

	updated := content + "\n\n" + e.Reference(baseName, filePath)
	if err := e.store.WriteText(target, updated); err != nil {
		return false, err
	}

	return true, nil
}
