package stats

import (
	"math"

	"github.com/dustin/go-humanize"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/value"
)

// NotAvailable is shown when there is no signed bonus to average.
const NotAvailable = "N/A"

// AverageSignedBonus averages every positive signed bonus. ok is false when
// no pick carries one.
func AverageSignedBonus(picks []domain.Pick) (avg float64, ok bool) {
	var sum float64
	var n int
	for _, p := range picks {
		b := value.DigitsOnly(p.SignedBonus)
		if !b.OK || b.Float <= 0 {
			continue
		}
		sum += b.Float
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// FormatCurrency renders whole dollars with thousands separators.
func FormatCurrency(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatAverage is the stats bar text for AverageSignedBonus.
func FormatAverage(avg float64, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return FormatCurrency(avg)
}

// Bonus buckets, ascending.
const (
	BucketNone      = "No Bonus"
	Bucket10K       = "$0-10K"
	Bucket50K       = "$10K-50K"
	Bucket100K      = "$50K-100K"
	Bucket300K      = "$100K-300K"
	BucketOver300K  = "$300K+"
	bonusSeriesName = "Number of Players"
)

// BonusBuckets is the fixed bucket order of the histogram.
var BonusBuckets = []string{BucketNone, Bucket10K, Bucket50K, Bucket100K, Bucket300K, BucketOver300K}

// BonusBucket classifies a bonus amount. Upper bounds are inclusive; only an
// exact zero has no bonus, so a negative amount lands in the lowest range.
func BonusBucket(amount float64) string {
	switch {
	case amount == 0:
		return BucketNone
	case amount <= 10_000:
		return Bucket10K
	case amount <= 50_000:
		return Bucket50K
	case amount <= 100_000:
		return Bucket100K
	case amount <= 300_000:
		return Bucket300K
	}
	return BucketOver300K
}

// BonusHistogram counts picks per bonus bucket. Sentinel and unreadable
// bonuses count as no bonus.
func BonusHistogram(picks []domain.Pick) Chart {
	idx := make(map[string]int, len(BonusBuckets))
	for i, b := range BonusBuckets {
		idx[b] = i
	}
	counts := make([]float64, len(BonusBuckets))
	for _, p := range picks {
		counts[idx[BonusBucket(value.Currency(p.SignedBonus))]]++
	}
	return Chart{
		Labels:   append([]string(nil), BonusBuckets...),
		Datasets: []Dataset{{Label: bonusSeriesName, Data: counts}},
	}
}
