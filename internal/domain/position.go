package domain

import "strings"

// Group tags accepted by the position filter.
const (
	GroupOutfield = "OF"
	GroupPitcher  = "P"
)

// PositionGroups maps a group tag to the raw position codes it covers.
type PositionGroups map[string][]string

// FilterGroups is the grouping used by the position filter and the
// position dropdown.
var FilterGroups = PositionGroups{
	GroupOutfield: {"OF", "CF", "RF", "LF"},
	GroupPitcher:  {"P", "SP", "SP1", "RP"},
}

// TrendGroups is the grouping used by the position-by-year chart. Its
// pitcher group has no SP1.
var TrendGroups = PositionGroups{
	GroupOutfield: {"OF", "CF", "RF", "LF"},
	GroupPitcher:  {"P", "SP", "RP"},
}

// Matches reports whether a raw position satisfies want. Group tags expand
// to their members; anything else is compared after trimming.
func (g PositionGroups) Matches(want, position string) bool {
	want = strings.TrimSpace(want)
	position = strings.TrimSpace(position)
	if members, ok := g[want]; ok {
		for _, m := range members {
			if m == position {
				return true
			}
		}
		return false
	}
	return want == position
}

// Grouped reports whether position belongs to any group.
func (g PositionGroups) Grouped(position string) bool {
	position = strings.TrimSpace(position)
	for _, members := range g {
		for _, m := range members {
			if m == position {
				return true
			}
		}
	}
	return false
}

// WithPitcher returns a copy whose pitcher group has SP1 added or removed.
func (g PositionGroups) WithPitcher(includeSP1 bool) PositionGroups {
	out := make(PositionGroups, len(g))
	for k, v := range g {
		out[k] = append([]string(nil), v...)
	}
	var p []string
	for _, m := range out[GroupPitcher] {
		if m != "SP1" {
			p = append(p, m)
		}
	}
	if includeSP1 {
		p = append(p, "SP1")
	}
	out[GroupPitcher] = p
	return out
}
