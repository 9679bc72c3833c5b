package host

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/pathutil"
)

type editorCommand struct {
	command string
	args    []string
	wait    bool
	silence bool
}

// OpenInEditor launches the configured editor on path and, for
// terminal editors, waits for it to exit.
func OpenInEditor(path string, settings *config.Settings) error {
	cmd, err := buildEditorCommand(path, settings)
	if err != nil {
		return err
	}

	proc := exec.Command(cmd.command, cmd.args...)
	if cmd.silence {
		proc.Stdout = io.Discard
		proc.Stderr = io.Discard
	} else {
		proc.Stdin = os.Stdin
		proc.Stdout = os.Stdout
		proc.Stderr = os.Stderr
	}

	if err := proc.Start(); err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}

	if !cmd.wait {
		return nil
	}

	if err := proc.Wait(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	return nil
}

// resolveEditor prefers the live viper value, which follows settings
// changes made elsewhere in the process, over the snapshot.
func resolveEditor(settings *config.Settings) (editor, args string) {
	editor = strings.TrimSpace(viper.GetString("editor"))
	if editor == "" {
		editor = strings.TrimSpace(settings.Editor)
	}

	args = strings.TrimSpace(viper.GetString("editorargs"))
	if args == "" {
		args = strings.TrimSpace(settings.EditorArgs)
	}

	return editor, args
}

func buildEditorCommand(path string, settings *config.Settings) (*editorCommand, error) {
	editor, editorArgs := resolveEditor(settings)

	switch editor {
	case "nvim", "vim", "nano":
		args := []string{}
		if extra := editorArgs; extra != "" {
			args = append(args, strings.Fields(extra)...)
		}
		args = append(args, path)
		return &editorCommand{command: editor, args: args, wait: true}, nil
	case "vscode", "code":
		return buildVSCodeCommand(path)
	case "obsidian":
		return buildObsidianCommand(path, settings)
	case "":
		return nil, fmt.Errorf("editor not configured")
	default:
		return nil, fmt.Errorf("unsupported editor: %s", editor)
	}
}

func buildVSCodeCommand(path string) (*editorCommand, error) {
	switch runtime.GOOS {
	case "darwin":
		return &editorCommand{command: "open", args: []string{"-n", "-b", "com.microsoft.VSCode", "--args", path}, silence: true}, nil
	case "linux":
		return &editorCommand{command: "code", args: []string{path}, silence: true}, nil
	case "windows":
		return &editorCommand{command: "cmd", args: []string{"/c", "code", path}, silence: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func buildObsidianCommand(path string, settings *config.Settings) (*editorCommand, error) {
	vaultDir := pathutil.NormalizePath(settings.VaultDir)
	vaultName := filepath.Base(vaultDir)

	relativePath, err := pathutil.VaultRelative(settings.VaultDir, path)
	if err != nil {
		return nil, fmt.Errorf("unable to determine relative path for obsidian: %w", err)
	}

	obsidianURI := fmt.Sprintf("obsidian://open?vault=%s&file=%s", vaultName, relativePath)

	switch runtime.GOOS {
	case "darwin":
		return &editorCommand{command: "open", args: []string{obsidianURI}, silence: true}, nil
	case "linux":
		return &editorCommand{command: "xdg-open", args: []string{obsidianURI}, silence: true}, nil
	case "windows":
		return &editorCommand{command: "cmd", args: []string{"/c", "start", obsidianURI}, silence: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
