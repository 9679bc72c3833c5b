// Package normalize derives filesystem-safe path segments from person names.
package normalize

import "strings"

// forbidden holds the characters that cannot appear in a single path
// segment on common filesystems.
const forbidden = `/\:*?"<>|`

// Name converts an arbitrary display name into a string that is safe to
// use as a single directory or file name segment. The transform is
// idempotent: normalizing an already-normalized name returns it unchanged.
func Name(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if strings.ContainsRune(forbidden, r) {
			b.WriteRune('-')
		} else {
			b.WriteRune(r)
		}
	}

	// Trimming edge hyphens can expose fresh edge whitespace (and vice
	// versa), so trim both until the string stops changing.
	collapsed := strings.Join(strings.Fields(b.String()), " ")
	for {
		trimmed := strings.TrimSpace(strings.Trim(collapsed, "-"))
		if trimmed == collapsed {
			return collapsed
		}
		collapsed = strings.Join(strings.Fields(trimmed), " ")
	}
}
