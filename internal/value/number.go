package value

import (
	"math"
	"strconv"
	"strings"
)

// Number is the result of classifying a text cell. OK is false when the text
// does not hold a finite decimal number; Float is zero in that case.
type Number struct {
	Float float64
	OK    bool
}

// ParseNumber classifies s as numeric or not. Surrounding whitespace is
// ignored. Empty text, NaN, infinities and hex/binary literals are not
// numeric.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	if !decimalOnly(s) {
		return Number{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Number{Float: f, OK: true}
}

// decimalOnly rejects inputs strconv would accept but a spreadsheet would not
// ("Inf", "NaN", "0x1p3", "1_000").
func decimalOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	return true
}

// AtLeast reports n >= bound. Either side being non-numeric fails.
func (n Number) AtLeast(bound Number) bool {
	return n.OK && bound.OK && n.Float >= bound.Float
}

// AtMost reports n <= bound. Either side being non-numeric fails.
func (n Number) AtMost(bound Number) bool {
	return n.OK && bound.OK && n.Float <= bound.Float
}
