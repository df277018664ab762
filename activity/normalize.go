package activity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize produces the canonical comparison form of a user-visible string:
// NFKC compatibility normalization, zero-width characters stripped, then
// lowercased. Rule matchers always run against this form so that full-width
// variants and zero-width joiners cannot dodge a pattern.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	normalized := norm.NFKC.String(text)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if isZeroWidth(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.ToLower(b.String())
}

// isZeroWidth reports whether r is an invisible joiner/space character
// that must not affect matching (U+200B..U+200D, U+FEFF).
func isZeroWidth(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\uFEFF':
		return true
	}
	return false
}

// ExtractProcessBaseName normalizes a raw process name and strips any
// leading path, handling both POSIX and Windows separators. A bare
// executable name comes back unchanged (after normalization).
//
//	ExtractProcessBaseName(`C:\Program Files\Cursor\Cursor.exe`) == "cursor.exe"
//	ExtractProcessBaseName("/usr/bin/code") == "code"
func ExtractProcessBaseName(raw string) string {
	cleaned := Normalize(raw)

	parts := strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
