package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current
// platform's separator and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// VaultRelative returns the path to target relative to the vault
// directory, always using forward slashes so links render the same on
// every platform.
func VaultRelative(vaultDir, target string) (string, error) {
	base := NormalizePath(vaultDir)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}
