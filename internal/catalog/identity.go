package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSuffixAttempts bounds the uniqueness loops. Practically unreachable,
// but the loop must terminate even if the catalog store misbehaves
// mid-resolution.
const maxSuffixAttempts = 10000

// ErrUniquenessExhausted means no free title/slug was found within the
// suffix bound.
var ErrUniquenessExhausted = errors.New("could not resolve a unique title or slug")

// Lookup is the catalog membership capability the identity resolver
// needs. SlugExists excludes excludeID from the collision check so a
// product being updated keeps ownership of its own slug.
type Lookup interface {
	TitleExists(ctx context.Context, title string) (bool, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// ResolveTitle finds a globally unique title for the catalog: the desired
// title if free, otherwise the first free numeric-suffix variant
// ("Lamp" -> "Lamp 2" -> "Lamp 3").
func ResolveTitle(ctx context.Context, lookup Lookup, desired string) (string, error) {
	desired = strings.TrimSpace(desired)
	if desired == "" {
		desired = "Untitled Product"
	}

	candidate := desired
	for n := 2; n <= maxSuffixAttempts; n++ {
		taken, err := lookup.TitleExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check title %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s %d", desired, n)
	}

	return "", ErrUniquenessExhausted
}

// ResolveSlug derives a slug basis from the final unique title and finds
// a globally unique slug, suffixing with hyphens ("lamp" -> "lamp-2").
// excludeID removes the product's own row from the collision check when
// resolving for an update.
func ResolveSlug(ctx context.Context, lookup Lookup, title, excludeID string) (string, error) {
	basis := Slugify(title)

	candidate := basis
	for n := 2; n <= maxSuffixAttempts; n++ {
		taken, err := lookup.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", basis, n)
	}

	return "", ErrUniquenessExhausted
}

var (
	slugStripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	slugNonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	slugHyphenRuns = regexp.MustCompile(`-+`)
)

// Slugify transliterates a title into a URL-friendly slug basis:
// lowercase, diacritics stripped, non-alphanumeric runs collapsed to a
// single hyphen, leading/trailing hyphens trimmed.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))

	if out, _, err := transform.String(slugStripMarks, slug); err == nil {
		slug = out
	}

	slug = slugNonAlnum.ReplaceAllString(slug, "-")
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		slug = "product"
	}

	return slug
}
