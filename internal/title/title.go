// Package title canonicalizes free-text case titles into the form used both
// for archive search input and for deriving filesystem storage keys.
package title

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	versusRe        = regexp.MustCompile(`(?i)\b(?:versus|vs|v)\b\.?`)
	duplicateVsRe   = regexp.MustCompile(`(?i)\bvs(?:\s+vs)+\b`)
	andOrsRe        = regexp.MustCompile(`(?i)\band\s+(?:others|ors)\b\.?`)
	titleCasedVsRe  = regexp.MustCompile(`\bVs\b`)
)

// Normalize canonicalizes a case title: parenthetical asides are stripped,
// every separator spelling ("v.", "vs.", "versus") becomes the single token
// "vs", "and others"/"and ors" becomes "And Ors", and the remaining words are
// title-cased. The result is deterministic for identical input and is safe to
// type into the archive's title search field. A title with no recognizable
// separator is returned title-cased, not rejected.
func Normalize(raw string) string {
	t := strings.TrimSpace(raw)
	t = parentheticalRe.ReplaceAllString(t, " ")
	t = versusRe.ReplaceAllString(t, "vs")
	t = duplicateVsRe.ReplaceAllString(t, "vs")
	t = andOrsRe.ReplaceAllString(t, "And Ors")
	t = titleCaseWords(t)

	// Title-casing capitalizes the connector; the canonical form keeps it lowercase.
	t = titleCasedVsRe.ReplaceAllString(t, "vs")

	return t
}

// Slug converts a canonical title into the filesystem-safe storage key:
// every character that is not alphanumeric, space, underscore, or hyphen
// becomes an underscore.
func Slug(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// titleCaseWords capitalizes the first letter of every word and lowercases
// the rest, collapsing runs of whitespace in the process.
func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		for j, r := range runes {
			if unicode.IsLetter(r) {
				runes[j] = unicode.ToUpper(r)
				break
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
