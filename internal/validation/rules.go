package validation

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// CertificateRuleSet bounds the certificate fields.
type CertificateRuleSet struct {
	NameMinLen  int
	NameMaxLen  int
	DescMinLen  int
	DescMaxLen  int
	PriceMin    decimal.Decimal // exclusive
	PriceMax    decimal.Decimal // inclusive
	DurationMin int
	DurationMax int
}

// TagRuleSet bounds the tag name.
type TagRuleSet struct {
	NameMinLen int
	NameMaxLen int
}

// UserRuleSet constrains registration input. PasswordMaxLen tracks the bcrypt
// 72-byte input limit.
type UserRuleSet struct {
	UsernamePattern *regexp.Regexp
	PasswordMinLen  int
	PasswordMaxLen  int
	PasswordLetter  *regexp.Regexp
	PasswordDigit   *regexp.Regexp
}

// OrderRuleSet bounds an incoming order.
type OrderRuleSet struct {
	MaxUniqueCertificates int
	QuantityMin           int
	QuantityMax           int
}

// Rule tables shared by all create/update flows. Passed into checks
// explicitly so tests can substitute their own.
var (
	CertificateRules = CertificateRuleSet{
		NameMinLen:  5,
		NameMaxLen:  50,
		DescMinLen:  5,
		DescMaxLen:  1000,
		PriceMin:    decimal.Zero,
		PriceMax:    decimal.New(10000000, -2), // 100000.00
		DurationMin: 1,
		DurationMax: 365,
	}

	TagRules = TagRuleSet{
		NameMinLen: 2,
		NameMaxLen: 25,
	}

	UserRules = UserRuleSet{
		UsernamePattern: regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]{2,29}$`),
		PasswordMinLen:  8,
		PasswordMaxLen:  72,
		PasswordLetter:  regexp.MustCompile(`[A-Za-z]`),
		PasswordDigit:   regexp.MustCompile(`[0-9]`),
	}

	OrderRules = OrderRuleSet{
		MaxUniqueCertificates: 100,
		QuantityMin:           1,
		QuantityMax:           1000,
	}
)
