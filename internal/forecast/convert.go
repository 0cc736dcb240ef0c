package forecast

import (
	"fmt"

	"steel-procurement/internal/model"
)

// ToPrices converts index points to $/ton, where indexBasePrice is the price at index 100.
func ToPrices(points []model.ForecastPoint, indexBasePrice float64) ([]float64, error) {
	if !(indexBasePrice > 0) {
		return nil, model.InvalidParam("index_base_price", "must be > 0")
	}
	prices := make([]float64, len(points))
	for i, p := range points {
		if !(p.Index > 0) {
			return nil, model.InvalidParam("forecast", fmt.Sprintf("%04d-%02d: index must be > 0, got %v", p.Year, p.Month, p.Index))
		}
		prices[i] = p.Index / 100 * indexBasePrice
	}
	return prices, nil
}

// addMonths steps a (year, month) pair forward by n months.
func addMonths(year, month, n int) (int, int) {
	idx := year*12 + (month - 1) + n
	return idx / 12, idx%12 + 1
}
