package strategy

// HedgeCost locks HedgeRatio of demand at the baseline price and buys the
// remainder at the final month's spot price.
func HedgeCost(path []float64, in Inputs) float64 {
	hedged := in.Demand * in.HedgeRatio * in.BaselinePrice
	unhedged := in.Demand * (1 - in.HedgeRatio) * path[len(path)-1]
	return hedged + unhedged
}
