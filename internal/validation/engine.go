// Package validation holds the stateless field checks shared by every
// create/update flow. Each check returns a boolean; callers aggregate
// failures into an apperr.Violations map and raise a single error carrying
// the whole map.
package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeWhitespace trims the string and collapses internal whitespace runs
// to single spaces. Every length check operates on the normalized form.
func NormalizeWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// LengthInRange reports whether the normalized string length (in runes) is
// within [min, max].
func LengthInRange(s string, min, max int) bool {
	n := len([]rune(NormalizeWhitespace(s)))
	return n >= min && n <= max
}

// IntInRange reports whether v is within [min, max].
func IntInRange(v, min, max int) bool {
	return v >= min && v <= max
}

// PriceInRange reports whether price is within (min, max].
func PriceInRange(price, min, max decimal.Decimal) bool {
	return price.GreaterThan(min) && price.LessThanOrEqual(max)
}

// PriceScaleValid reports whether the price carries exactly two fractional
// digits. Decimals keep the scale they were parsed with, so "10.5" and "10"
// are rejected as written, not silently widened.
func PriceScaleValid(price decimal.Decimal) bool {
	return price.Exponent() == -2
}

// MatchesPattern reports whether s matches the pattern in full.
func MatchesPattern(s string, pattern *regexp.Regexp) bool {
	return pattern.MatchString(s)
}
