package strategy

// SpotNowCost buys everything at the first simulated price.
func SpotNowCost(path []float64, in Inputs) float64 {
	return in.Demand * path[0]
}

// SpotLaterCost buys demand/len(path) each month at that month's price.
// Summing prices first and dividing once keeps a flat path exact.
func SpotLaterCost(path []float64, in Inputs) float64 {
	sum := 0.0
	for _, p := range path {
		sum += p
	}
	return in.Demand * sum / float64(len(path))
}
