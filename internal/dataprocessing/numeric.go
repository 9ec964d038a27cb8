package dataprocessing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxExponent bounds the decimal exponent of any parsed amount. Rescaling a
// value like 1e2000000000 to two places would build a billion-digit integer.
const MaxExponent = 300

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// ParseDecimalOrZero parses s leniently. A fully numeric string is parsed as
// is, otherwise the longest leading numeric prefix is used ("12abc" is 12).
// Anything else, including values outside the exponent range, is zero.
func ParseDecimalOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		m := leadingNumber.FindString(s)
		if m == "" {
			return decimal.Zero
		}
		if d, err = decimal.NewFromString(m); err != nil {
			return decimal.Zero
		}
	}
	if !InExponentRange(d) {
		return decimal.Zero
	}
	return d
}

// InExponentRange reports whether d's exponent lies within ±MaxExponent.
func InExponentRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -MaxExponent && exp <= MaxExponent
}
