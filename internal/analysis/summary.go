package analysis

import (
	"math"
	"sort"

	"steel-procurement/internal/model"
)

// Summary reduces a per-trial cost distribution. Values are in raw currency units.
type Summary struct {
	Mean   float64
	P05    float64
	P95    float64
	StdDev float64
	Count  int
}

// Finite reports whether every statistic is a finite number.
func (s Summary) Finite() bool {
	for _, v := range []float64{s.Mean, s.P05, s.P95, s.StdDev} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Summarize computes mean, population std dev and the 5th/95th percentiles.
// costs is not mutated.
func Summarize(costs []float64) (Summary, error) {
	if len(costs) == 0 {
		return Summary{}, model.ErrEmptyInput
	}

	sum := 0.0
	for _, v := range costs {
		sum += v
	}
	mean := sum / float64(len(costs))

	ss := 0.0
	for _, v := range costs {
		d := v - mean
		ss += d * d
	}

	sorted := make([]float64, len(costs))
	copy(sorted, costs)
	sort.Float64s(sorted)

	return Summary{
		Mean:   mean,
		P05:    percentileSorted(sorted, 0.05),
		P95:    percentileSorted(sorted, 0.95),
		StdDev: math.Sqrt(ss / float64(len(costs))),
		Count:  len(costs),
	}, nil
}

// SummarizeAll reduces every strategy's distribution.
func SummarizeAll(costs map[model.Strategy][]float64) (map[model.Strategy]Summary, error) {
	out := make(map[model.Strategy]Summary, len(costs))
	for s, c := range costs {
		sum, err := Summarize(c)
		if err != nil {
			return nil, err
		}
		out[s] = sum
	}
	return out, nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
