// Package note computes canonical names, paths, and initial content for
// person notes.
package note

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/normalize"
	"github.com/kettleby/dossier/internal/store"
)

// Timestamp layouts used in note file names. A double hyphen separates
// the date from the time; single hyphens separate numeric fields. The
// index relies on this exact scheme to recover timestamps from names.
const (
	LayoutWithSeconds    = "2006-01-02--15-04-05"
	LayoutWithoutSeconds = "2006-01-02--15-04"
)

// PersonNote is a note to be created for one person. Fields are derived
// once at construction and immutable thereafter.
type PersonNote struct {
	PersonName string
	Normalized string
	FileName   string
	FilePath   string
	Timestamp  time.Time

	settings *config.Settings
}

// New derives the canonical file name and path for a note created for
// the named person at the given instant.
func New(personName string, ts time.Time, settings *config.Settings) *PersonNote {
	normalized := normalize.Name(personName)
	fileName := fmt.Sprintf(
		"%s %s.md",
		normalized,
		FormatTimestamp(ts, settings.TimestampFormat),
	)

	return &PersonNote{
		PersonName: personName,
		Normalized: normalized,
		FileName:   fileName,
		FilePath:   filepath.Join(settings.PeopleRoot(), normalized, fileName),
		Timestamp:  ts,
		settings:   settings,
	}
}

// BaseName returns the file name without its .md suffix, the form used
// in link references.
func (n *PersonNote) BaseName() string {
	return strings.TrimSuffix(n.FileName, ".md")
}

// DirPath returns the person directory that will hold the note.
func (n *PersonNote) DirPath() string {
	return filepath.Dir(n.FilePath)
}

// InitialContent is the body a fresh note starts with: a creation-time
// stamp comment followed by an empty bullet, so the writer can start
// typing immediately.
func (n *PersonNote) InitialContent() string {
	return fmt.Sprintf(
		"<!-- created %s -->\n\n- ",
		FormatTimestamp(n.Timestamp, n.settings.TimestampFormat),
	)
}

// EnsurePath creates the person directory, including the people root
// when missing, and returns the note file path.
func (n *PersonNote) EnsurePath(st store.Store) (string, error) {
	dir := n.DirPath()

	kind, err := st.Resolve(dir)
	if err != nil {
		return "", err
	}
	if kind == store.Absent {
		if err := st.CreateDirectory(dir); err != nil {
			return "", err
		}
	}

	return n.FilePath, nil
}

// Create writes the note file with its initial content. The file must
// not already exist.
func (n *PersonNote) Create(st store.Store) error {
	path, err := n.EnsurePath(st)
	if err != nil {
		return err
	}

	return st.CreateText(path, n.InitialContent())
}

// FormatTimestamp renders ts using the configured precision.
func FormatTimestamp(ts time.Time, precision string) string {
	if precision == config.TimestampWithoutSeconds {
		return ts.Format(LayoutWithoutSeconds)
	}
	return ts.Format(LayoutWithSeconds)
}

// ParseTimestamp recovers an instant from the timestamp portion of a
// note file name, accepting either precision.
func ParseTimestamp(s string) (time.Time, bool) {
	if ts, err := time.Parse(LayoutWithSeconds, s); err == nil {
		return ts, true
	}
	if ts, err := time.Parse(LayoutWithoutSeconds, s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// TimestampFromFileName extracts the timestamp embedded in a note file
// name of the form "{normalizedName} {timestamp}.md".
func TimestampFromFileName(fileName, normalizedName string) (time.Time, bool) {
	base := strings.TrimSuffix(fileName, ".md")
	rest, found := strings.CutPrefix(base, normalizedName+" ")
	if !found {
		return time.Time{}, false
	}
	return ParseTimestamp(rest)
}
