package strategy

import (
	"fmt"

	"steel-procurement/internal/model"
)

// Inputs are the run-wide constants every cost function sees.
type Inputs struct {
	Demand        float64 // tons
	HedgeRatio    float64 // 0..1
	BaselinePrice float64 // $/ton locked by Hedge
}

// CostFunc prices one simulated path (Horizon monthly $/ton prices) under a strategy.
// Implementations are pure; the evaluator calls them concurrently.
type CostFunc func(path []float64, in Inputs) float64

// CostFor maps a strategy to its cost function.
func CostFor(s model.Strategy) (CostFunc, error) {
	switch s {
	case model.SpotNow:
		return SpotNowCost, nil
	case model.SpotLater:
		return SpotLaterCost, nil
	case model.Ladder:
		return LadderCost, nil
	case model.Hedge:
		return HedgeCost, nil
	default:
		return nil, model.InvalidParam("strategy", fmt.Sprintf("unknown strategy %q", s))
	}
}

// All returns the four strategies in reporting order.
func All() []model.Strategy {
	return model.Strategies()
}

// Info describes a strategy for listings.
type Info struct {
	Strategy    model.Strategy
	Label       string
	Description string
}

func Describe() []Info {
	return []Info{
		{
			Strategy:    model.SpotNow,
			Label:       model.SpotNow.Label(),
			Description: "Buy the entire demand immediately at the first simulated month's price.",
		},
		{
			Strategy:    model.SpotLater,
			Label:       model.SpotLater.Label(),
			Description: "Buy demand/12 every month at that month's price (equals demand x mean path price).",
		},
		{
			Strategy:    model.Ladder,
			Label:       model.Ladder.Label(),
			Description: fmt.Sprintf("Buy four %.0f%% tranches at months %v.", TrancheFraction*100, LadderMonths),
		},
		{
			Strategy:    model.Hedge,
			Label:       model.Hedge.Label(),
			Description: "Lock hedge_ratio of demand at the base price; buy the rest at the final month's spot price.",
		},
	}
}
