package strategy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"steel-procurement/internal/model"
	"steel-procurement/internal/simulation"
)

// Costs holds the per-trial total cost for each strategy, indexed like the paths.
type Costs map[model.Strategy][]float64

// ctxCheckEvery bounds how many trials run between cancellation checks.
const ctxCheckEvery = 1024

// Evaluate prices every path under every strategy. Strategies run concurrently;
// each goroutine owns its output slice, so the result is deterministic.
func Evaluate(ctx context.Context, paths simulation.Paths, demand, hedgeRatio, baselinePrice float64) (Costs, error) {
	if !(demand > 0) {
		return nil, model.InvalidParam("demand", "must be > 0")
	}
	if !(hedgeRatio >= 0 && hedgeRatio <= 1) {
		return nil, model.InvalidParam("hedge_ratio", "must be in [0, 1]")
	}
	if !(baselinePrice > 0) {
		return nil, model.InvalidParam("base_price", "must be > 0")
	}
	if err := paths.Validate(); err != nil {
		return nil, err
	}

	in := Inputs{Demand: demand, HedgeRatio: hedgeRatio, BaselinePrice: baselinePrice}
	strategies := All()
	results := make([][]float64, len(strategies))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		i := i
		fn, err := CostFor(s)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			costs := make([]float64, len(paths))
			for t, path := range paths {
				if t%ctxCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				costs[t] = fn(path, in)
			}
			results[i] = costs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(Costs, len(strategies))
	for i, s := range strategies {
		out[s] = results[i]
	}
	return out, nil
}
