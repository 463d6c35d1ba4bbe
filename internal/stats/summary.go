package stats

import "draftboard-engine/internal/domain"

// Options tunes Summarize.
type Options struct {
	TopSchools  int
	TrendGroups domain.PositionGroups
}

func (o Options) withDefaults() Options {
	if o.TopSchools <= 0 {
		o.TopSchools = DefaultTopSchools
	}
	if o.TrendGroups == nil {
		o.TrendGroups = domain.TrendGroups
	}
	return o
}

// Summary is everything the stats bar and the charts need.
type Summary struct {
	Count        int           `json:"count"`
	AverageBonus *float64      `json:"averageBonus"`
	AverageLabel string        `json:"averageBonusDisplay"`
	Bonus        Chart         `json:"bonusDistribution"`
	Positions    Chart         `json:"positionTrend"`
	SchoolTypes  Chart         `json:"schoolTypeTrend"`
	BonusByYear  Chart         `json:"bonusTrend"`
	TopSchools   []SchoolCount `json:"topSchools"`
}

// Summarize computes every aggregate over picks.
func Summarize(picks []domain.Pick, opts Options) Summary {
	opts = opts.withDefaults()
	avg, ok := AverageSignedBonus(picks)
	s := Summary{
		Count:        len(picks),
		AverageLabel: FormatAverage(avg, ok),
		Bonus:        BonusHistogram(picks),
		Positions:    PositionTrend(picks, opts.TrendGroups),
		SchoolTypes:  SchoolTypeTrend(picks),
		BonusByYear:  BonusTrend(picks),
		TopSchools:   TopSchools(picks, opts.TopSchools),
	}
	if ok {
		s.AverageBonus = &avg
	}
	return s
}
