package importer

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes diacritics by canonical decomposition followed by
// removal of combining marks ("café" and "cafe" produce the same key).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// quoteGlyphs are stripped so straight and curly quote variants of the
// same review text collide on one key.
const quoteGlyphs = "\"'`´‘’“”«»"

// normalizeKeyPart canonicalizes one component of a dedup key:
// lowercase, decompose, strip diacritics, strip quote glyphs, collapse
// whitespace, trim.
func normalizeKeyPart(s string) string {
	s = strings.ToLower(s)

	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(quoteGlyphs, r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// DedupKey derives the fuzzy identity of a review: normalized author,
// normalized content, and the rating clamped and rounded to one decimal.
// Clamping happens here so a key computed from an out-of-range source
// rating matches the key of the persisted, clamped row. Reviews with
// equal keys are considered the same review regardless of source.
func DedupKey(author, content string, rating float64) string {
	if strings.TrimSpace(author) == "" {
		author = "anon"
	}

	return normalizeKeyPart(author) + "|" + normalizeKeyPart(content) + "|" +
		strconv.FormatFloat(RoundRating(ClampRating(rating)), 'f', 1, 64)
}

// FilterNew returns the reviews from batch whose dedup key does not
// already appear among existing, collapsing duplicates within the batch
// to their first occurrence. The function is idempotent: re-filtering an
// unchanged batch against the grown set yields nothing new.
func FilterNew(existing, batch []RawReview) []RawReview {
	seen := make(map[string]bool, len(existing)+len(batch))
	for _, r := range existing {
		seen[DedupKey(r.Author, r.Content, r.Rating)] = true
	}

	fresh := make([]RawReview, 0, len(batch))
	for _, r := range batch {
		key := DedupKey(r.Author, r.Content, r.Rating)
		if seen[key] {
			continue
		}
		seen[key] = true
		fresh = append(fresh, r)
	}

	return fresh
}
