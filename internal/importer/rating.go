package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ratingPattern matches the first numeric token in a star-rating string,
// accepting both dot and comma decimal separators ("3.5 out of 5 stars",
// "5,0 de 5 estrelas").
var ratingPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)

// ParseRating extracts a rating from a localized star-rating string and
// clamps it into [0,5]. Unparseable input yields 0.
func ParseRating(s string) float64 {
	match := ratingPattern.FindString(s)
	if match == "" {
		return 0
	}

	match = strings.ReplaceAll(match, ",", ".")
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}

	return ClampRating(value)
}

// ClampRating bounds a rating to the [0,5] range.
func ClampRating(r float64) float64 {
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

// RoundRating rounds a rating to one decimal place, the precision used by
// the review dedup key.
func RoundRating(r float64) float64 {
	return math.Round(r*10) / 10
}
