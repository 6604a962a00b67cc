// Package textutil provides the text cleaning shared by every extractor:
// tag stripping, HTML entity decoding, and whitespace normalization.
//
// Extractors that rely on line or paragraph boundaries (the OCR passage and
// prompt heuristics) must run on raw text and normalize only the extracted
// substring afterward — Normalize destroys the paragraph structure they key on.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Curly quotes come back as ASCII and non-breaking spaces as plain spaces so
// downstream regex matching sees one canonical form. Dashes keep their
// literal Unicode characters.
var entityReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	" ", " ",
)

// maxFieldLen caps text persisted to the store. PostgreSQL TEXT columns take
// far more, but runaway OCR output should not balloon a single row.
const maxFieldLen = 10000

// StripTags replaces every markup tag with a single space.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, " ")
}

// DecodeEntities decodes HTML named and numeric entities (&rsquo;, &mdash;,
// &nbsp;, &#8217;, ...) and canonicalizes quotes and non-breaking spaces.
func DecodeEntities(s string) string {
	return entityReplacer.Replace(html.UnescapeString(s))
}

// CollapseSpace collapses runs of whitespace, newlines included, to a single
// space and trims the ends.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// Normalize strips tags, decodes entities, and collapses whitespace.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	return CollapseSpace(DecodeEntities(StripTags(raw)))
}

// Truncate caps already-clean text at the persistence limit without touching
// its internal whitespace.
func Truncate(s string) string {
	if len(s) > maxFieldLen {
		s = strings.TrimSpace(s[:maxFieldLen-3]) + "..."
	}
	return s
}

// Clean normalizes raw text for persistence, truncating oversized fields.
func Clean(raw string) string {
	return Truncate(Normalize(raw))
}
