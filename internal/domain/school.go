package domain

import (
	"strings"

	"draftboard-engine/internal/value"
)

// HighSchool is the grouped school tag.
const HighSchool = "HS"

// IsHighSchool reports whether the school text carries the HS marker.
func IsHighSchool(school string) bool {
	return strings.Contains(school, HighSchool)
}

// IsCollege reports a non-empty school without the HS marker.
func IsCollege(school string) bool {
	return school != "" && !IsHighSchool(school)
}

// SchoolLabel is the school as shown in tables and dropdowns: every high
// school collapses to "HS".
func SchoolLabel(school string) string {
	if IsHighSchool(school) {
		return HighSchool
	}
	return school
}

// SchoolKey is the grouping key for school rankings: the first line only.
func SchoolKey(school string) string {
	return value.FirstLine(school)
}
