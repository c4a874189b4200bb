package importer

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scanJSONLD collects every structured-data object embedded in the page.
// Arrays and @graph containers are flattened into their members. A block
// that fails to decode is skipped; a broken script tag must not fail the
// whole import.
func scanJSONLD(doc *goquery.Document) []map[string]any {
	var objects []map[string]any

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var raw any
		if err := json.Unmarshal([]byte(sel.Text()), &raw); err != nil {
			return
		}
		objects = append(objects, flattenJSONLD(raw)...)
	})

	return objects
}

func flattenJSONLD(raw any) []map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			var objects []map[string]any
			for _, item := range graph {
				objects = append(objects, flattenJSONLD(item)...)
			}
			return objects
		}
		return []map[string]any{v}
	case []any:
		var objects []map[string]any
		for _, item := range v {
			objects = append(objects, flattenJSONLD(item)...)
		}
		return objects
	default:
		return nil
	}
}

// hasType reports whether a structured-data object declares the given
// @type. The value may be a single string or a list.
func hasType(obj map[string]any, want string) bool {
	switch t := obj["@type"].(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

// stringField returns the first non-empty string among the named keys.
func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := asString(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

// asString coerces common JSON-LD value shapes to a plain string: a bare
// string, the first member of a list, or an object with a url/name field
// (ImageObject, Person).
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		for _, item := range val {
			if s := asString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if s := asString(val["url"]); s != "" {
			return s
		}
		return asString(val["name"])
	}
	return ""
}

// asNumber coerces a JSON-LD numeric value that may arrive as a number
// or as localized text.
func asNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		return ParseRating(val)
	}
	return 0
}
