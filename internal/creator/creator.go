// Package creator composes note creation: validation, directory setup,
// file creation, and the best-effort embed and index updates.
package creator

import (
	"fmt"
	"strings"
	"time"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/embed"
	"github.com/kettleby/dossier/internal/note"
	"github.com/kettleby/dossier/internal/person"
	"github.com/kettleby/dossier/internal/store"
	"github.com/kettleby/dossier/internal/toc"
)

// ValidationError rejects input before any side effect happens.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Options control the optional follow-up steps of a creation.
type Options struct {
	// Embed appends a reference to the active note.
	Embed bool
	// UpdateTOC inserts the note into the person's index document.
	UpdateTOC bool
	// Timestamp overrides the creation instant; zero means now.
	Timestamp time.Time
}

// DefaultOptions enables both follow-up steps.
func DefaultOptions() Options {
	return Options{Embed: true, UpdateTOC: true}
}

// Result reports the outcome of one creation. Created is true once the
// note file itself was written; embedding and index maintenance are
// conveniences whose failures are recorded without aborting anything.
type Result struct {
	Created    bool
	Note       person.NoteRecord
	Embedded   bool
	TOCUpdated bool
	EmbedErr   error
	TOCErr     error
}

// Summary renders the single transient status line shown to the user.
func (r Result) Summary() string {
	if !r.Created {
		return "note not created"
	}

	parts := []string{fmt.Sprintf("Created note for %s", r.Note.PersonName)}
	if r.EmbedErr != nil {
		parts = append(parts, "embed failed")
	} else if r.Embedded {
		parts = append(parts, "embedded")
	}
	if r.TOCErr != nil {
		parts = append(parts, "index update failed")
	} else if r.TOCUpdated {
		parts = append(parts, "index updated")
	}

	return strings.Join(parts, "; ")
}

// Creator orchestrates note creation against one settings snapshot.
type Creator struct {
	store    store.Store
	settings *config.Settings
	index    *person.Index
	embedder *embed.Embedder
	merger   *toc.Merger
	now      func() time.Time
}

func New(
	st store.Store,
	settings *config.Settings,
	index *person.Index,
	embedder *embed.Embedder,
	merger *toc.Merger,
) *Creator {
	return &Creator{
		store:    st,
		settings: settings,
		index:    index,
		embedder: embedder,
		merger:   merger,
		now:      time.Now,
	}
}

// Create makes a new note for the named person. The name is validated
// before any side effect; directory setup and the file write must
// succeed for the result to count as created. The embed and index
// steps run afterwards, independently: either may fail without
// affecting the other or the overall success.
func (c *Creator) Create(personName string, opts Options) (Result, error) {
	trimmed := strings.TrimSpace(personName)
	if trimmed == "" {
		return Result{}, &ValidationError{msg: "person name must not be empty"}
	}

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = c.now()
	}

	n := note.New(trimmed, ts, c.settings)
	if err := n.Create(c.store); err != nil {
		return Result{}, err
	}

	result := Result{
		Created: true,
		Note: person.NoteRecord{
			PersonName: trimmed,
			FileName:   n.FileName,
			FilePath:   n.FilePath,
			Timestamp:  ts,
		},
	}

	if opts.Embed {
		embedded, err := c.embedder.EmbedInActiveNote(n.BaseName(), n.FilePath)
		result.Embedded = embedded
		result.EmbedErr = err
	}

	if opts.UpdateTOC {
		rec := c.index.Record(trimmed)
		_, err := c.merger.EnsureAndAppend(rec, result.Note)
		result.TOCUpdated = err == nil
		result.TOCErr = err
	}

	return result, nil
}
