package money

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in minor currency units.
type Cents = int64

var (
	disallowedRe    = regexp.MustCompile(`[^0-9.,]`)
	numericPrefixRe = regexp.MustCompile(`^[0-9]*(\.[0-9]*)?`)
	hundred         = decimal.NewFromInt(100)
	maxCents        = decimal.NewFromInt(math.MaxInt64)
)

// ParseToCents parses free-text money input into cents.
// Handles "150000", "150.000", "150.000,50" and "150,5".
//
// A lone "." is always a thousands separator, never a decimal point, so
// "150.5" reads as 1505. A lone "," is the decimal point. When both are
// present "." groups and "," is the decimal point. Input that yields no
// number, or an amount too large to hold in cents, returns 0. Rounding to
// the cent is half away from zero.
func ParseToCents(raw string) Cents {
	s := disallowedRe.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" {
		return 0
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	case hasDot:
		s = strings.ReplaceAll(s, ".", "")
	}

	// Lenient: "1.2.3" parses as 1.2, trailing garbage is ignored
	num := numericPrefixRe.FindString(s)
	num = strings.TrimSuffix(num, ".")
	if num == "" {
		return 0
	}
	if strings.HasPrefix(num, ".") {
		num = "0" + num
	}

	value, err := decimal.NewFromString(num)
	if err != nil {
		return 0
	}

	cents := value.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0
	}
	return cents.IntPart()
}

// ParseCount parses a digits-only counter field (people, nights).
// Non-digit characters are dropped; empty or overflowing input yields 0.
func ParseCount(raw string) int {
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			return 0
		}
	}
	return n
}

// PercentOf returns percent% of cents, rounded half away from zero.
// A result that does not fit in int64 yields 0.
func PercentOf(cents Cents, percent int) Cents {
	v := decimal.NewFromInt(cents).Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(0)
	if v.Abs().GreaterThan(maxCents) {
		return 0
	}
	return v.IntPart()
}

// ApplyDiscount returns cents × (1 − fraction) rounded to the cent.
// The fraction is clamped to [0, 1]; NaN counts as no discount.
func ApplyDiscount(cents Cents, fraction float64) Cents {
	if math.IsNaN(fraction) {
		fraction = 0
	}
	fraction = math.Max(0, math.Min(1, fraction))
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(fraction))
	return decimal.NewFromInt(cents).Mul(factor).Round(0).IntPart()
}

// ToWholeUnits converts cents to whole currency units, rounding half away
// from zero.
func ToWholeUnits(cents Cents) int64 {
	return roundDiv(cents, 100)
}

// roundDiv rounds n/d half away from zero and stays in range near the int64
// bounds.
func roundDiv(n, d int64) int64 {
	q, r := n/d, n%d
	switch {
	case r >= 0 && 2*r >= d:
		q++
	case r < 0 && -2*r >= d:
		q--
	}
	return q
}
