package stats

import (
	"slices"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/rank"
	"draftboard-engine/internal/value"
)

// TrendPositions is the fixed series order of the position chart.
var TrendPositions = []string{"P", "SS", "OF", "C", "3B", "2B", "1B"}

// Series labels of the school-type and bonus trend charts.
const (
	SeriesCollege      = "College"
	SeriesHighSchool   = "High School"
	SeriesAverageBonus = "Average Signing Bonus ($)"
)

// Years returns the distinct years present, ordered numerically.
func Years(picks []domain.Pick) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range picks {
		if !seen[p.Year] {
			seen[p.Year] = true
			out = append(out, p.Year)
		}
	}
	slices.SortFunc(out, rank.Compare)
	if out == nil {
		out = []string{}
	}
	return out
}

// PositionTrend counts picks per (position, year) for TrendPositions, with
// groups expanding OF and P.
func PositionTrend(picks []domain.Pick, groups domain.PositionGroups) Chart {
	years := Years(picks)
	col := yearIndex(years)

	sets := make([]Dataset, len(TrendPositions))
	for i, pos := range TrendPositions {
		sets[i] = Dataset{Label: pos, Data: make([]float64, len(years))}
	}
	for _, p := range picks {
		y := col[p.Year]
		for i, pos := range TrendPositions {
			if groups.Matches(pos, p.Position) {
				sets[i].Data[y]++
			}
		}
	}
	return Chart{Labels: years, Datasets: sets}
}

// SchoolTypeTrend counts college and high-school picks per year. Picks with
// no school count toward neither.
func SchoolTypeTrend(picks []domain.Pick) Chart {
	years := Years(picks)
	col := yearIndex(years)
	college := make([]float64, len(years))
	hs := make([]float64, len(years))
	for _, p := range picks {
		switch {
		case p.School == "":
		case domain.IsHighSchool(p.School):
			hs[col[p.Year]]++
		default:
			college[col[p.Year]]++
		}
	}
	return Chart{
		Labels: years,
		Datasets: []Dataset{
			{Label: SeriesCollege, Data: college},
			{Label: SeriesHighSchool, Data: hs},
		},
	}
}

// BonusTrend averages positive signed bonuses per year; years without one
// report 0.
func BonusTrend(picks []domain.Pick) Chart {
	years := Years(picks)
	col := yearIndex(years)
	sum := make([]float64, len(years))
	n := make([]int, len(years))
	for _, p := range picks {
		b := value.Currency(p.SignedBonus)
		if b <= 0 {
			continue
		}
		sum[col[p.Year]] += b
		n[col[p.Year]]++
	}
	avg := make([]float64, len(years))
	for i := range years {
		if n[i] > 0 {
			avg[i] = sum[i] / float64(n[i])
		}
	}
	return Chart{Labels: years, Datasets: []Dataset{{Label: SeriesAverageBonus, Data: avg}}}
}

func yearIndex(years []string) map[string]int {
	m := make(map[string]int, len(years))
	for i, y := range years {
		m[y] = i
	}
	return m
}
