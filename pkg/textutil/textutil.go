// Package textutil provides common string helpers shared by the pipeline.
package textutil

import "strings"

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims the result.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most maxLength runes, appending an ellipsis marker
// when anything was removed.
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	return strings.TrimRight(string(runes[:maxLength]), " ") + "..."
}
