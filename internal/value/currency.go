package value

import (
	"strings"
)

// Sentinels used by the draft sheets for "no value".
const (
	Unsigned = "(unsigned)"
	Dash     = "-"
)

// IsSentinel reports whether s is an empty or placeholder money cell.
func IsSentinel(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == Dash || strings.EqualFold(s, Unsigned)
}

// DigitsOnly parses s after dropping every character other than digits and
// '.', so "$1,234" and "-$1,234" both read as 1234. Sentinels come out as
// not numeric.
func DigitsOnly(s string) Number {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return ParseNumber(b.String())
}

// Currency parses a money cell by stripping '$' and ',' only, keeping the
// sign. Sentinels and anything unparsable come back as 0.
func Currency(s string) float64 {
	if IsSentinel(s) {
		return 0
	}
	clean := strings.NewReplacer("$", "", ",", "").Replace(s)
	n := ParseNumber(clean)
	if !n.OK {
		return 0
	}
	return n.Float
}
