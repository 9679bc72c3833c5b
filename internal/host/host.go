// Package host is the UI-shell surface the core components call into:
// the currently active note, transient user messages, and opening notes
// in the configured editor.
package host

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kettleby/dossier/internal/config"
)

// Shell is implemented per target UI toolkit. The terminal shell below
// is the default; tests substitute their own.
type Shell interface {
	// ActiveNote reports the path of the currently active document, if any.
	ActiveNote() (string, bool)
	// ShowMessage surfaces a transient status line to the user.
	ShowMessage(text string, isError bool)
	// OpenNote opens the note at path in the configured editor.
	OpenNote(path string) error
}

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2ECC71"))
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E74C3C"))
)

// Terminal is the OS/terminal shell. The active note is the pinned file
// recorded in settings.
type Terminal struct {
	settings *config.Settings
	out      io.Writer
}

func NewTerminal(settings *config.Settings) *Terminal {
	return &Terminal{settings: settings, out: os.Stdout}
}

func (t *Terminal) ActiveNote() (string, bool) {
	pinned := strings.TrimSpace(t.settings.PinnedFile)
	if pinned == "" {
		return "", false
	}
	return pinned, true
}

func (t *Terminal) ShowMessage(text string, isError bool) {
	style := successStyle
	if isError {
		style = errorStyle
	}
	fmt.Fprintln(t.out, style.Render(text))
}

func (t *Terminal) OpenNote(path string) error {
	return OpenInEditor(path, t.settings)
}
