package stats

import (
	"slices"

	"draftboard-engine/internal/domain"
)

// DefaultTopSchools is the length of the top-schools chart.
const DefaultTopSchools = 10

const seriesDraftees = "Number of Draftees"

// SchoolCount is one row of the top-schools ranking.
type SchoolCount struct {
	School string `json:"school"`
	Count  int    `json:"count"`
}

// TopSchools ranks non-high-school programs by draftee count, keyed on the
// first line of the school text. Ties keep first-seen order.
func TopSchools(picks []domain.Pick, n int) []SchoolCount {
	if n <= 0 {
		n = DefaultTopSchools
	}
	pos := make(map[string]int)
	var out []SchoolCount
	for _, p := range picks {
		if !domain.IsCollege(p.School) {
			continue
		}
		key := domain.SchoolKey(p.School)
		i, ok := pos[key]
		if !ok {
			i = len(out)
			pos[key] = i
			out = append(out, SchoolCount{School: key})
		}
		out[i].Count++
	}
	slices.SortStableFunc(out, func(a, b SchoolCount) int {
		return b.Count - a.Count
	})
	if len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []SchoolCount{}
	}
	return out
}

// TopSchoolsChart is TopSchools as a single-series chart.
func TopSchoolsChart(picks []domain.Pick, n int) Chart {
	top := TopSchools(picks, n)
	labels := make([]string, len(top))
	data := make([]float64, len(top))
	for i, s := range top {
		labels[i] = s.School
		data[i] = float64(s.Count)
	}
	return Chart{Labels: labels, Datasets: []Dataset{{Label: seriesDraftees, Data: data}}}
}
