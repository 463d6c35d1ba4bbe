package rank

import (
	"strings"

	"draftboard-engine/internal/value"
)

// tier orders value classes so mixed columns still sort consistently:
// blanks, then numbers, then text.
type tier int

const (
	tierEmpty tier = iota
	tierNumber
	tierText
)

type key struct {
	raw string
	t   tier
	n   float64
}

func classify(s string) key {
	if strings.TrimSpace(s) == "" {
		return key{raw: s, t: tierEmpty}
	}
	if n := value.ParseNumber(s); n.OK {
		return key{raw: s, t: tierNumber, n: n.Float}
	}
	return key{raw: s, t: tierText}
}

// Compare orders two cells ascending. Two numbers compare by value, two
// texts byte-wise; blanks come first. Numerically equal cells and blank
// cells fall back to their raw text so distinct inputs never tie.
func Compare(a, b string) int {
	return compareKeys(classify(a), classify(b))
}

func compareKeys(ka, kb key) int {
	if ka.t != kb.t {
		if ka.t < kb.t {
			return -1
		}
		return 1
	}
	switch ka.t {
	case tierNumber:
		switch {
		case ka.n < kb.n:
			return -1
		case ka.n > kb.n:
			return 1
		}
		return strings.Compare(ka.raw, kb.raw)
	}
	return strings.Compare(ka.raw, kb.raw)
}
