package procurement

import (
	"time"

	"github.com/google/uuid"

	"steel-procurement/internal/analysis"
	"steel-procurement/internal/model"
	"steel-procurement/internal/strategy"
)

// Result is one analysis run. Money values are raw currency units (USD).
type Result struct {
	RunID     uuid.UUID
	CreatedAt time.Time

	Params   model.Params
	Forecast []float64 // $/ton per month, as simulated

	Summaries map[model.Strategy]analysis.Summary
	Ranking   []analysis.Ranked

	// RawCosts is only populated when the engine runs WithRawCosts.
	RawCosts strategy.Costs

	Timings Timings
}

// Timings records how long each stage took.
type Timings struct {
	Simulate  time.Duration
	Evaluate  time.Duration
	Summarize time.Duration
}

func (t Timings) Total() time.Duration {
	return t.Simulate + t.Evaluate + t.Summarize
}

// Cheapest returns the strategy with the lowest expected cost.
func (r *Result) Cheapest() model.Strategy {
	if len(r.Ranking) == 0 {
		return ""
	}
	return r.Ranking[0].Strategy
}
