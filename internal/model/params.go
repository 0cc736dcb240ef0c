package model

import (
	"fmt"
	"math"
)

// Horizon is the number of forecast months every path covers.
const Horizon = 12

// Params are the simulation inputs for one analysis run.
// Units:
// - Demand: tons of steel
// - BasePrice: $/ton, the forward price locked by the Hedge strategy
// - Volatility: monthly, as a fraction (0.05 = 5%)
// - HedgeRatio: fraction of demand locked, 0..1
type Params struct {
	Trials     int
	Volatility float64
	HedgeRatio float64
	Demand     float64
	BasePrice  float64

	// Seed makes a run reproducible. Nil means a fresh time-seeded source.
	Seed *int64
}

func (p Params) Validate() error {
	if p.Trials <= 0 {
		return InvalidParam("trials", "must be > 0")
	}
	if !(p.Volatility >= 0) || math.IsInf(p.Volatility, 0) {
		return InvalidParam("volatility", "must be a finite value >= 0")
	}
	if !(p.HedgeRatio >= 0 && p.HedgeRatio <= 1) {
		return InvalidParam("hedge_ratio", "must be in [0, 1]")
	}
	if !(p.Demand > 0) || math.IsInf(p.Demand, 0) {
		return InvalidParam("demand", "must be a finite value > 0")
	}
	if !(p.BasePrice > 0) || math.IsInf(p.BasePrice, 0) {
		return InvalidParam("base_price", "must be a finite value > 0")
	}
	return nil
}

// ValidateForecast checks a $/ton series covers the horizon with positive prices.
func ValidateForecast(forecast []float64) error {
	if len(forecast) != Horizon {
		return InvalidParam("forecast", fmt.Sprintf("expected %d months, got %d", Horizon, len(forecast)))
	}
	for i, v := range forecast {
		if !(v > 0) || math.IsInf(v, 0) {
			return InvalidParam("forecast", fmt.Sprintf("month %d: price must be > 0, got %v", i, v))
		}
	}
	return nil
}
