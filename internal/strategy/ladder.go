package strategy

// LadderMonths are the purchase months for the four equal tranches.
var LadderMonths = [4]int{0, 3, 6, 9}

// TrancheFraction is each ladder tranche's share of demand.
const TrancheFraction = 0.25

func LadderCost(path []float64, in Inputs) float64 {
	tranche := in.Demand * TrancheFraction
	cost := 0.0
	for _, m := range LadderMonths {
		cost += tranche * path[m]
	}
	return cost
}
