// Package stats derives the dashboard's summary numbers and chart series
// from any subset of picks.
package stats

// Chart is a category axis with one or more aligned series.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Series returns the dataset with the given label, or nil.
func (c Chart) Series(label string) []float64 {
	for _, d := range c.Datasets {
		if d.Label == label {
			return d.Data
		}
	}
	return nil
}
