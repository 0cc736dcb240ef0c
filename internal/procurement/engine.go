package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"steel-procurement/internal/analysis"
	"steel-procurement/internal/logger"
	"steel-procurement/internal/model"
	"steel-procurement/internal/simulation"
	"steel-procurement/internal/strategy"
)

type Engine struct {
	keepRaw bool
	log     zerolog.Logger
	now     func() time.Time
}

type Option func(*Engine)

// WithRawCosts keeps the per-trial cost vectors on the Result.
func WithRawCosts() Option {
	return func(e *Engine) { e.keepRaw = true }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func New(opts ...Option) *Engine {
	e := &Engine{log: logger.Log, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run simulates price paths around forecast, prices them under every strategy
// and summarizes each cost distribution. Any failure returns no result.
func (e *Engine) Run(ctx context.Context, forecast []float64, p model.Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := model.ValidateForecast(forecast); err != nil {
		return nil, err
	}

	runID := uuid.New()
	log := e.log.With().Str("run_id", runID.String()).Logger()
	var timings Timings

	start := time.Now()
	paths, err := simulation.Generate(forecast, p.Trials, p.Volatility, simulation.NewRand(p.Seed))
	if err != nil {
		return nil, fmt.Errorf("simulate price paths: %w", err)
	}
	timings.Simulate = time.Since(start)

	start = time.Now()
	costs, err := strategy.Evaluate(ctx, paths, p.Demand, p.HedgeRatio, p.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("evaluate strategies: %w", err)
	}
	timings.Evaluate = time.Since(start)

	start = time.Now()
	summaries, err := analysis.SummarizeAll(costs)
	if err != nil {
		return nil, fmt.Errorf("summarize costs: %w", err)
	}
	timings.Summarize = time.Since(start)

	for s, sum := range summaries {
		if !sum.Finite() {
			return nil, model.InvalidParam("demand", fmt.Sprintf("%s cost overflows float64", s.Label()))
		}
	}

	log.Debug().
		Int("trials", p.Trials).
		Dur("simulate", timings.Simulate).
		Dur("evaluate", timings.Evaluate).
		Dur("summarize", timings.Summarize).
		Msg("analysis complete")

	res := &Result{
		RunID:     runID,
		CreatedAt: e.now().UTC(),
		Params:    p,
		Forecast:  append([]float64(nil), forecast...),
		Summaries: summaries,
		Ranking:   analysis.RankByMean(summaries),
		Timings:   timings,
	}
	if e.keepRaw {
		res.RawCosts = costs
	}
	return res, nil
}
