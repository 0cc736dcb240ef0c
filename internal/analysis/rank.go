package analysis

import (
	"sort"

	"steel-procurement/internal/model"
)

type Ranked struct {
	Rank     int
	Strategy model.Strategy
	Summary
}

// RankByMean sorts strategies cheapest expected cost first.
// Ties fall back to p95, then to reporting order.
func RankByMean(summaries map[model.Strategy]Summary) []Ranked {
	order := make(map[model.Strategy]int, len(summaries))
	for i, s := range model.Strategies() {
		order[s] = i
	}

	out := make([]Ranked, 0, len(summaries))
	for s, sum := range summaries {
		out = append(out, Ranked{Strategy: s, Summary: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Mean != b.Mean {
			return a.Mean < b.Mean
		}
		if a.P95 != b.P95 {
			return a.P95 < b.P95
		}
		return order[a.Strategy] < order[b.Strategy]
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
