package creator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/embed"
	"github.com/kettleby/dossier/internal/person"
	"github.com/kettleby/dossier/internal/store"
	"github.com/kettleby/dossier/internal/toc"
)

type pinShell struct {
	active string
}

func (p *pinShell) ActiveNote() (string, bool) {
	return p.active, p.active != ""
}

func (p *pinShell) ShowMessage(string, bool) {}

func (p *pinShell) OpenNote(string) error { return nil }

func testCreator(t *testing.T, activeNote string) (*Creator, *config.Settings) {
	t.Helper()

	vault := t.TempDir()
	settings := config.Default()
	settings.VaultDir = vault

	st := store.NewOS()
	index := person.NewIndex(st, settings)
	embedder := embed.New(st, &pinShell{active: activeNote}, settings)
	merger := toc.NewMerger(st, settings)

	return New(st, settings, index, embedder, merger), settings
}

func TestCreateRejectsEmptyName(t *testing.T) {
	c, settings := testCreator(t, "")

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := c.Create(name, DefaultOptions())
		if err == nil {
			t.Fatalf("expected validation error for %q", name)
		}

		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
	}

	// No side effects: the people root must not have been created.
	if _, err := os.Stat(settings.PeopleRoot()); !os.IsNotExist(err) {
		t.Error("validation failure should leave the vault untouched")
	}
}

func TestCreateWritesNoteAndTOC(t *testing.T) {
	c, settings := testCreator(t, "")
	ts := time.Date(2025, 9, 11, 10, 18, 48, 0, time.UTC)

	result, err := c.Create("John Doe", Options{UpdateTOC: true, Timestamp: ts})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !result.Created {
		t.Fatal("expected Created to be true")
	}
	wantPath := filepath.Join(settings.PeopleRoot(), "John Doe", "John Doe 2025-09-11--10-18-48.md")
	if result.Note.FilePath != wantPath {
		t.Errorf("note path = %q, want %q", result.Note.FilePath, wantPath)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("note file missing: %v", err)
	}

	if !result.TOCUpdated {
		t.Fatalf("expected TOC update to succeed: %v", result.TOCErr)
	}
	tocPath := filepath.Join(settings.PeopleRoot(), "John Doe", "John Doe TOC.md")
	data, err := os.ReadFile(tocPath)
	if err != nil {
		t.Fatalf("TOC missing: %v", err)
	}
	if !strings.Contains(string(data), "[[John Doe 2025-09-11--10-18-48]]") {
		t.Errorf("TOC missing entry: %q", data)
	}
}

func TestCreateEmbedsIntoActiveNote(t *testing.T) {
	vault := t.TempDir()
	active := filepath.Join(vault, "daily.md")
	if err := os.WriteFile(active, []byte("Existing content"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings := config.Default()
	settings.VaultDir = vault

	st := store.NewOS()
	c := New(
		st,
		settings,
		person.NewIndex(st, settings),
		embed.New(st, &pinShell{active: active}, settings),
		toc.NewMerger(st, settings),
	)

	ts := time.Date(2025, 9, 11, 10, 18, 48, 0, time.UTC)
	result, err := c.Create("John Doe", Options{Embed: true, UpdateTOC: true, Timestamp: ts})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !result.Embedded {
		t.Fatalf("expected embed to succeed: %v", result.EmbedErr)
	}

	data, err := os.ReadFile(active)
	if err != nil {
		t.Fatal(err)
	}
	want := "Existing content\n\n[[John Doe 2025-09-11--10-18-48]]"
	if string(data) != want {
		t.Errorf("active note = %q, want %q", data, want)
	}
}

func TestCreateSucceedsWhenEmbedFails(t *testing.T) {
	// No active note: embedding fails, creation and TOC still succeed.
	c, _ := testCreator(t, "")
	ts := time.Date(2025, 9, 11, 10, 18, 48, 0, time.UTC)

	result, err := c.Create("John Doe", Options{Embed: true, UpdateTOC: true, Timestamp: ts})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !result.Created {
		t.Error("creation should succeed despite embed failure")
	}
	if result.Embedded {
		t.Error("embed should have failed with no active note")
	}
	if result.EmbedErr == nil {
		t.Error("embed failure should carry a diagnostic")
	}
	if !result.TOCUpdated {
		t.Errorf("TOC update should not be affected by embed failure: %v", result.TOCErr)
	}
}

func TestCreateFailsOnDuplicate(t *testing.T) {
	c, _ := testCreator(t, "")
	ts := time.Date(2025, 9, 11, 10, 18, 48, 0, time.UTC)
	opts := Options{Timestamp: ts}

	if _, err := c.Create("John Doe", opts); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	_, err := c.Create("John Doe", opts)
	if err == nil {
		t.Fatal("expected duplicate creation at the same instant to fail")
	}

	var storageErr *store.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected *StorageError, got %T", err)
	}
}

func TestResultSummary(t *testing.T) {
	r := Result{
		Created:    true,
		Note:       person.NoteRecord{PersonName: "John Doe"},
		Embedded:   true,
		TOCUpdated: true,
	}
	got := r.Summary()
	if !strings.Contains(got, "John Doe") || !strings.Contains(got, "embedded") || !strings.Contains(got, "index updated") {
		t.Errorf("Summary = %q", got)
	}

	r.EmbedErr = errors.New("no active note")
	r.Embedded = false
	if got := r.Summary(); !strings.Contains(got, "embed failed") {
		t.Errorf("Summary = %q", got)
	}
}
