// Package person projects the people directory into person and note
// records. Records are rebuilt on every scan; they are never persisted.
package person

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/normalize"
	"github.com/kettleby/dossier/internal/note"
	"github.com/kettleby/dossier/internal/store"
)

// NoteRecord describes one stored note belonging to a person.
type NoteRecord struct {
	PersonName string
	FileName   string
	FilePath   string
	Timestamp  time.Time
}

// BaseName returns the file name without its .md suffix.
func (n NoteRecord) BaseName() string {
	return strings.TrimSuffix(n.FileName, ".md")
}

// PersonRecord is a projection of one person directory. Notes are
// ordered newest-first.
type PersonRecord struct {
	Name           string
	NormalizedName string
	DirectoryPath  string
	Notes          []NoteRecord
}

// NotFoundError reports an operation against a person with no directory.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("person %q has no directory", e.Name)
}

// Index enumerates person directories inside the configured people root.
type Index struct {
	store    store.Store
	settings *config.Settings
}

func NewIndex(st store.Store, settings *config.Settings) *Index {
	return &Index{store: st, settings: settings}
}

// Record builds the projection for a single person without touching the
// store, leaving Notes empty. Used for synthetic "create new" candidates.
func (ix *Index) Record(name string) PersonRecord {
	normalized := normalize.Name(name)
	return PersonRecord{
		Name:           name,
		NormalizedName: normalized,
		DirectoryPath:  filepath.Join(ix.settings.PeopleRoot(), normalized),
	}
}

// People scans the people root and returns every person directory with
// its notes. A missing root yields no people rather than an error.
func (ix *Index) People() ([]PersonRecord, error) {
	root := ix.settings.PeopleRoot()

	kind, err := ix.store.Resolve(root)
	if err != nil {
		return nil, err
	}
	if kind != store.Directory {
		return nil, nil
	}

	entries, err := ix.store.EnumerateChildren(root)
	if err != nil {
		return nil, err
	}

	var people []PersonRecord
	for _, entry := range entries {
		if !entry.IsDir || strings.HasPrefix(entry.Name, ".") {
			continue
		}

		record := ix.Record(entry.Name)
		notes, err := ix.notesIn(record)
		if err != nil {
			return nil, err
		}
		record.Notes = notes
		people = append(people, record)
	}

	sort.Slice(people, func(i, j int) bool {
		return people[i].Name < people[j].Name
	})

	return people, nil
}

// Person returns the record for the named person. The lookup matches the
// display name case-insensitively after normalization.
func (ix *Index) Person(name string) (PersonRecord, error) {
	record := ix.Record(name)

	kind, err := ix.store.Resolve(record.DirectoryPath)
	if err != nil {
		return PersonRecord{}, err
	}
	if kind != store.Directory {
		return PersonRecord{}, &NotFoundError{Name: name}
	}

	notes, err := ix.notesIn(record)
	if err != nil {
		return PersonRecord{}, err
	}
	record.Notes = notes

	return record, nil
}

// Notes lists a person's notes newest-first.
func (ix *Index) Notes(name string) ([]NoteRecord, error) {
	record, err := ix.Person(name)
	if err != nil {
		return nil, err
	}
	return record.Notes, nil
}

// notesIn enumerates the note files in a person directory. The person's
// index document is excluded by filename match against the configured
// template, never by content inspection.
func (ix *Index) notesIn(record PersonRecord) ([]NoteRecord, error) {
	entries, err := ix.store.EnumerateChildren(record.DirectoryPath)
	if err != nil {
		return nil, err
	}

	tocFileName := ix.settings.TOCFileFor(record.NormalizedName) + ".md"

	var notes []NoteRecord
	for _, entry := range entries {
		if entry.IsDir || filepath.Ext(entry.Name) != ".md" {
			continue
		}
		if entry.Name == tocFileName {
			continue
		}

		ts, ok := note.TimestampFromFileName(entry.Name, record.NormalizedName)
		if !ok {
			// Fall back to modification time for names outside the
			// canonical pattern. A file that cannot be stat'd is
			// skipped rather than sinking the whole scan.
			mtime, err := ix.store.ModTime(entry.Path)
			if err != nil {
				log.Printf("error reading mod time for %s: %v", entry.Path, err)
				continue
			}
			ts = mtime
		}

		notes = append(notes, NoteRecord{
			PersonName: record.Name,
			FileName:   entry.Name,
			FilePath:   entry.Path,
			Timestamp:  ts,
		})
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Timestamp.Equal(notes[j].Timestamp) {
			return notes[i].FileName > notes[j].FileName
		}
		return notes[i].Timestamp.After(notes[j].Timestamp)
	})

	return notes, nil
}
