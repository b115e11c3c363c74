package validation_test

import (
	"testing"

	"giftcerts/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "spa day", validation.NormalizeWhitespace("  spa   day "))
	assert.Equal(t, "a b c", validation.NormalizeWhitespace("a\tb\n c"))
	assert.Equal(t, "", validation.NormalizeWhitespace("   "))
}

func TestLengthInRange(t *testing.T) {
	assert.True(t, validation.LengthInRange("abcde", 5, 50))
	assert.False(t, validation.LengthInRange("abcd", 5, 50))
	// Length is measured after whitespace normalization.
	assert.False(t, validation.LengthInRange("  ab   cd  ", 6, 50))
	assert.True(t, validation.LengthInRange("  ab   cd  ", 5, 50))
}

func TestIntInRange(t *testing.T) {
	assert.True(t, validation.IntInRange(1, 1, 365))
	assert.True(t, validation.IntInRange(365, 1, 365))
	assert.False(t, validation.IntInRange(0, 1, 365))
	assert.False(t, validation.IntInRange(366, 1, 365))
}

func TestPriceScaleValid(t *testing.T) {
	assert.True(t, validation.PriceScaleValid(decimal.New(1050, -2)))   // 10.50
	assert.False(t, validation.PriceScaleValid(decimal.New(105, -1)))   // 10.5
	assert.False(t, validation.PriceScaleValid(decimal.New(10, 0)))     // 10
	assert.False(t, validation.PriceScaleValid(decimal.New(10555, -3))) // 10.555
	assert.False(t, validation.PriceScaleValid(decimal.New(105000, -4))) // 10.5000
}

func TestPriceInRange(t *testing.T) {
	rules := validation.CertificateRules
	assert.False(t, validation.PriceInRange(decimal.Zero, rules.PriceMin, rules.PriceMax))
	assert.False(t, validation.PriceInRange(decimal.New(-100, -2), rules.PriceMin, rules.PriceMax))
	assert.True(t, validation.PriceInRange(decimal.New(1, -2), rules.PriceMin, rules.PriceMax))
	assert.True(t, validation.PriceInRange(rules.PriceMax, rules.PriceMin, rules.PriceMax))
	assert.False(t, validation.PriceInRange(rules.PriceMax.Add(decimal.New(1, -2)), rules.PriceMin, rules.PriceMax))
}

func TestMatchesPattern(t *testing.T) {
	rules := validation.UserRules
	assert.True(t, validation.MatchesPattern("alice_01", rules.UsernamePattern))
	assert.False(t, validation.MatchesPattern("1alice", rules.UsernamePattern))
	assert.False(t, validation.MatchesPattern("al", rules.UsernamePattern))
}
