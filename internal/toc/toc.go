// Package toc maintains the per-person index document listing
// references to that person's notes.
package toc

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/embed"
	"github.com/kettleby/dossier/internal/pathutil"
	"github.com/kettleby/dossier/internal/person"
	"github.com/kettleby/dossier/internal/store"
)

// divider separates the index header block from the entry list.
const divider = "---"

// Merger reads and rewrites index documents. Writes always replace the
// full document content; a failed write leaves the previous content in
// place.
type Merger struct {
	store    store.Store
	settings *config.Settings
}

func NewMerger(st store.Store, settings *config.Settings) *Merger {
	return &Merger{store: st, settings: settings}
}

// FilePath returns the index document path for a person.
func (m *Merger) FilePath(rec person.PersonRecord) string {
	name := m.settings.TOCFileFor(rec.NormalizedName) + ".md"
	return filepath.Join(rec.DirectoryPath, name)
}

// Reference formats a TOC entry reference for a note. Entries always
// use the TOC-specific content type, independent of the in-document
// embedding configuration.
func (m *Merger) Reference(n person.NoteRecord) string {
	path := n.FilePath
	if m.settings.EmbeddingFormat == config.FormatMarkdownLink {
		if rel, err := pathutil.VaultRelative(m.settings.VaultDir, n.FilePath); err == nil {
			path = rel
		}
	}
	return embed.FormatReference(n.BaseName(), path, m.settings.EmbeddingFormat, m.settings.TOCContentType)
}

// header is the block above the divider in a fresh index document.
func (m *Merger) header(name string) string {
	return fmt.Sprintf("# %s\n\nNotes for %s.\n\n%s\n\n", name, name, divider)
}

// EnsureAndAppend makes sure the person's index document exists and
// contains an entry for the note. New entries are inserted immediately
// after the divider, so the list stays newest-first on the common
// append path. Returns whether the document changed.
//
// The operation is idempotent: when the exact reference already appears
// anywhere in the document, nothing is written.
func (m *Merger) EnsureAndAppend(rec person.PersonRecord, n person.NoteRecord) (bool, error) {
	path := m.FilePath(rec)

	kind, err := m.store.Resolve(path)
	if err != nil {
		return false, err
	}

	var content string
	if kind == store.Absent {
		content = m.header(rec.Name)
	} else {
		content, err = m.store.ReadText(path)
		if err != nil {
			return false, err
		}
	}

	ref := m.Reference(n)
	if strings.Contains(content, ref) {
		return false, nil
	}

	updated := insertEntry(content, "- "+ref)
	if err := m.store.WriteText(path, updated); err != nil {
		return false, err
	}

	return true, nil
}

// RegenerateAll rebuilds the person's index document from the full note
// list: fresh header, then one entry per note in newest-first order.
// The ordering is produced by an explicit sort rather than the
// insert-after-divider rule, so callers may pass notes in any order.
func (m *Merger) RegenerateAll(rec person.PersonRecord, notes []person.NoteRecord) error {
	sorted := append([]person.NoteRecord(nil), notes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].FileName > sorted[j].FileName
		}
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	var b strings.Builder
	b.WriteString(m.header(rec.Name))
	for _, n := range sorted {
		b.WriteString("- ")
		b.WriteString(m.Reference(n))
		b.WriteString("\n")
	}

	return m.store.WriteText(m.FilePath(rec), b.String())
}

// Read returns the current index document content, or ok=false when the
// person has no index document yet.
func (m *Merger) Read(rec person.PersonRecord) (string, bool, error) {
	path := m.FilePath(rec)

	kind, err := m.store.Resolve(path)
	if err != nil {
		return "", false, err
	}
	if kind != store.File {
		return "", false, nil
	}

	content, err := m.store.ReadText(path)
	if err != nil {
		return "", false, err
	}

	return content, true, nil
}

// insertEntry places entry on the line immediately following the
// divider, skipping any blank lines after it. A document without a
// divider gets one appended first.
func insertEntry(content, entry string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	idx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == divider {
			idx = i + 1
			break
		}
	}

	if idx == -1 {
		lines = append(lines, "", divider, "")
		idx = len(lines)
	} else {
		for idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
			idx++
		}
	}

	lines = append(lines[:idx], append([]string{entry}, lines[idx:]...)...)
	return strings.Join(lines, "\n") + "\n"
}

// Entries extracts the display text of each entry line by walking the
// document's Markdown AST.
func Entries(content string) []string {
	source := []byte(content)
	parser := goldmark.DefaultParser()
	document := parser.Parse(text.NewReader(source))

	var entries []string
	ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if listItem, ok := n.(*ast.ListItem); ok {
				item := strings.TrimSpace(string(listItem.Text(source)))
				if item != "" {
					entries = append(entries, item)
				}
			}
		}
		return ast.WalkContinue, nil
	})

	return entries
}
