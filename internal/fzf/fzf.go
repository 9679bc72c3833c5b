// Package fzf provides the interactive person and note pickers.
package fzf

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/kettleby/dossier/internal/person"
)

// PersonFinder fuzzy-selects one person from the directory index.
type PersonFinder struct {
	index  *person.Index
	Header string

	people []person.PersonRecord
}

func NewPersonFinder(index *person.Index, header string) *PersonFinder {
	return &PersonFinder{index: index, Header: header}
}

// Run presents every known person and returns the selected record.
func (f *PersonFinder) Run(query string) (person.PersonRecord, error) {
	people, err := f.index.People()
	if err != nil {
		return person.PersonRecord{}, fmt.Errorf("error listing people: %w", err)
	}
	if len(people) == 0 {
		return person.PersonRecord{}, fmt.Errorf("no people found")
	}

	f.people = people

	idx, err := f.selectPerson(query)
	if err != nil {
		return person.PersonRecord{}, err
	}

	return f.people[idx], nil
}

func (f *PersonFinder) selectPerson(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPersonPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	labels := make([]string, len(f.people))
	for i, p := range f.people {
		labels[i] = fmt.Sprintf("%s [%d notes]", p.Name, len(p.Notes))
	}

	idx, err := fuzzyfinder.Find(f.people, func(i int) string {
		return labels[i]
	}, options...)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return -1, fmt.Errorf("no person selected")
		}
		return -1, fmt.Errorf("error selecting person: %w", err)
	}

	return idx, nil
}

// renderPersonPreview shows the person's newest note in the preview
// pane.
func (f *PersonFinder) renderPersonPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	p := f.people[i]
	if len(p.Notes) == 0 {
		return "No notes yet"
	}

	return renderMarkdownPreview(p.Notes[0].FilePath)
}

// NoteFinder fuzzy-selects one of a person's notes.
type NoteFinder struct {
	Header string

	notes []person.NoteRecord
}

func NewNoteFinder(header string) *NoteFinder {
	return &NoteFinder{Header: header}
}

// Run presents the given notes, newest first, and returns the selection.
func (f *NoteFinder) Run(notes []person.NoteRecord) (person.NoteRecord, error) {
	if len(notes) == 0 {
		return person.NoteRecord{}, fmt.Errorf("no notes found")
	}

	f.notes = notes

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderNotePreview),
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.notes, func(i int) string {
		return f.notes[i].BaseName()
	}, options...)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return person.NoteRecord{}, fmt.Errorf("no note selected")
		}
		return person.NoteRecord{}, fmt.Errorf("error selecting note: %w", err)
	}

	return f.notes[idx], nil
}

func (f *NoteFinder) renderNotePreview(i, w, h int) string {
	if i == -1 {
		return ""
	}
	return renderMarkdownPreview(f.notes[i].FilePath)
}

func renderMarkdownPreview(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return "Error reading file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}
