package new

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/state"
)

func newTestState(t *testing.T) *state.State {
	t.Helper()

	settings := config.Default()
	settings.VaultDir = t.TempDir()

	return state.FromSettings(settings, t.TempDir())
}

func TestRunCreatesNoteAndTOC(t *testing.T) {
	s := newTestState(t)

	cmd := NewCmdNew(s)
	cmd.SetArgs([]string{"John Doe", "--time", "2025-09-11 10:18:48"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	dir := filepath.Join(s.Settings.PeopleRoot(), "John Doe")
	notePath := filepath.Join(dir, "John Doe 2025-09-11--10-18-48.md")
	if _, err := os.Stat(notePath); err != nil {
		t.Fatalf("expected note file: %v", err)
	}

	tocPath := filepath.Join(dir, "John Doe TOC.md")
	content, err := os.ReadFile(tocPath)
	if err != nil {
		t.Fatalf("expected toc file: %v", err)
	}
	if !strings.Contains(string(content), "[[John Doe 2025-09-11--10-18-48]]") {
		t.Fatalf("toc missing entry:\n%s", content)
	}
}

func TestRunNoTOCSkipsIndex(t *testing.T) {
	s := newTestState(t)

	cmd := NewCmdNew(s)
	cmd.SetArgs([]string{"John Doe", "--no-toc", "--time", "2025-09-11 10:18:48"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	tocPath := filepath.Join(s.Settings.PeopleRoot(), "John Doe", "John Doe TOC.md")
	if _, err := os.Stat(tocPath); !os.IsNotExist(err) {
		t.Fatalf("expected no toc file, stat err %v", err)
	}
}

func TestRunRejectsBadTime(t *testing.T) {
	s := newTestState(t)

	cmd := NewCmdNew(s)
	cmd.SetArgs([]string{"John Doe", "--time", "not a date"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unparseable time")
	}
}

func TestRunRejectsEmptyNameWithoutTerminal(t *testing.T) {
	s := newTestState(t)

	cmd := NewCmdNew(s)
	cmd.SetArgs([]string{"   "})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error when name is blank and stdin is not a terminal")
	}
}
