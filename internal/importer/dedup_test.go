package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupKey_NormalizesAuthorAndContent(t *testing.T) {
	base := DedupKey("José Silva", "Ótimo produto, recomendo", 4.5)

	// Diacritics, case, and extra whitespace collapse onto the same key
	assert.Equal(t, base, DedupKey("jose silva", "otimo  produto, recomendo ", 4.5))
	assert.Equal(t, base, DedupKey("JOSÉ SILVA", "Ótimo produto, recomendo", 4.5))
}

func TestDedupKey_StripsQuoteGlyphs(t *testing.T) {
	straight := DedupKey("Ann", `It "just works" for me`, 5)
	curly := DedupKey("Ann", "It “just works” for me", 5)
	assert.Equal(t, straight, curly)
}

func TestDedupKey_AnonymousAuthor(t *testing.T) {
	assert.Equal(t, DedupKey("", "great", 5), DedupKey("  ", "great", 5))
	assert.Contains(t, DedupKey("", "great", 5), "anon|")
}

func TestDedupKey_RatingRoundedToOneDecimal(t *testing.T) {
	assert.Equal(t, DedupKey("a", "b", 4.449), DedupKey("a", "b", 4.4))
	assert.NotEqual(t, DedupKey("a", "b", 4.4), DedupKey("a", "b", 4.5))
}

func TestDedupKey_RatingClampedBeforeKeying(t *testing.T) {
	// An out-of-range source rating must key the same as the clamped
	// value it will be persisted with
	assert.Equal(t, DedupKey("a", "b", 5), DedupKey("a", "b", 7))
	assert.Equal(t, DedupKey("a", "b", 0), DedupKey("a", "b", -0.04))
	assert.Contains(t, DedupKey("a", "b", -0.04), "|0.0")
}

func TestFilterNew_DropsExistingDuplicates(t *testing.T) {
	existing := []RawReview{
		{Author: "José", Content: "Ótimo produto", Rating: 5},
	}
	batch := []RawReview{
		{Author: "jose", Content: "otimo produto", Rating: 5},
		{Author: "Maria", Content: "Chegou rápido", Rating: 4},
	}

	fresh := FilterNew(existing, batch)

	assert.Len(t, fresh, 1)
	assert.Equal(t, "Maria", fresh[0].Author)
}

func TestFilterNew_CollapsesWithinBatch(t *testing.T) {
	batch := []RawReview{
		{Author: "Ann", Content: "Nice", Rating: 5},
		{Author: "ann", Content: " nice ", Rating: 5},
		{Author: "Ann", Content: "Nice", Rating: 4},
	}

	fresh := FilterNew(nil, batch)

	// First occurrence survives; the different rating is a different review
	assert.Len(t, fresh, 2)
	assert.Equal(t, "Ann", fresh[0].Author)
	assert.Equal(t, 5.0, fresh[0].Rating)
	assert.Equal(t, 4.0, fresh[1].Rating)
}

func TestFilterNew_Idempotent(t *testing.T) {
	batch := []RawReview{
		{Author: "Ann", Content: "Nice", Rating: 5},
		{Author: "Bob", Content: "Meh", Rating: 2},
	}

	first := FilterNew(nil, batch)
	assert.Len(t, first, 2)

	// Re-importing the unchanged batch against the grown set yields nothing
	again := FilterNew(first, batch)
	assert.Empty(t, again)

	// And the same inputs in the same order give the same output
	assert.Equal(t, first, FilterNew(nil, batch))
}

func TestFilterNew_EmptyInputs(t *testing.T) {
	assert.Empty(t, FilterNew(nil, nil))
	assert.Empty(t, FilterNew([]RawReview{{Author: "a", Content: "b"}}, nil))
}
