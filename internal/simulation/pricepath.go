package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"steel-procurement/internal/model"
)

// MinPrice floors simulated prices so a path never goes non-positive.
const MinPrice = 1e-6

// Paths is a trials x Horizon matrix of simulated monthly $/ton prices.
type Paths [][]float64

// NewRand returns a seeded source when seed is set, otherwise a time-seeded one.
// Each run owns its source; nothing here is shared between runs.
func NewRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate perturbs the forecast with independent monthly shocks:
//
//	price[t][m] = forecast[m] * (1 + volatility*z),  z ~ N(0,1)
//
// Shocks are drawn trial-major then month, so a fixed seed reproduces the matrix.
// There is no month-to-month correlation; tails are those of a normal
// percentage move around each month's expected price.
func Generate(forecast []float64, trials int, volatility float64, rng *rand.Rand) (Paths, error) {
	if trials <= 0 {
		return nil, model.InvalidParam("trials", "must be > 0")
	}
	if !(volatility >= 0) || math.IsInf(volatility, 0) {
		return nil, model.InvalidParam("volatility", "must be a finite value >= 0")
	}
	if err := model.ValidateForecast(forecast); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(nil)
	}

	// One backing array keeps the matrix contiguous.
	flat := make([]float64, trials*model.Horizon)
	paths := make(Paths, trials)
	for t := 0; t < trials; t++ {
		row := flat[t*model.Horizon : (t+1)*model.Horizon : (t+1)*model.Horizon]
		for m, expected := range forecast {
			price := expected * (1 + volatility*rng.NormFloat64())
			if price < MinPrice {
				price = MinPrice
			}
			row[m] = price
		}
		paths[t] = row
	}
	return paths, nil
}

// Validate checks the matrix shape: at least one row, every row Horizon wide.
func (p Paths) Validate() error {
	if len(p) == 0 {
		return model.InvalidParam("paths", "no trials")
	}
	for i, row := range p {
		if len(row) != model.Horizon {
			return model.InvalidParam("paths", fmt.Sprintf("row %d has %d months, want %d", i, len(row), model.Horizon))
		}
	}
	return nil
}
