package supplier

import (
	"fmt"
	"math"
	"sort"

	"steel-procurement/internal/model"
)

const (
	LabelMinCarbon = "Min-CO2"
	LabelMinCost   = "Min-Cost"

	DefaultMenuPoints = 10
	minTons           = 1e-6
)

// MenuRequest sizes a cost/emissions trade-off menu for one order.
type MenuRequest struct {
	DemandTons   float64
	BudgetUSD    float64
	MaxSuppliers int
	Points       int
}

func (r MenuRequest) Validate() error {
	if !(r.DemandTons > 0) || math.IsInf(r.DemandTons, 0) {
		return model.InvalidParam("demand_tons", "must be a finite value > 0")
	}
	if !(r.BudgetUSD > 0) || math.IsInf(r.BudgetUSD, 0) {
		return model.InvalidParam("budget_usd", "must be a finite value > 0")
	}
	if r.MaxSuppliers < 1 {
		return model.InvalidParam("max_suppliers", "must be >= 1")
	}
	if r.Points < 2 {
		return model.InvalidParam("points", "must be >= 2")
	}
	return nil
}

type Allocation struct {
	Manufacturer string  `json:"manufacturer"`
	Tons         float64 `json:"tons"`
}

// Plan is one way to fill the order. Totals cover the whole demand.
type Plan struct {
	Label          string       `json:"label"`
	TotalCostUSD   float64      `json:"total_cost_usd"`
	TotalEmissions float64      `json:"total_emissions_tco2e"`
	Allocations    []Allocation `json:"allocations"`
}

func (p Plan) NumSuppliers() int { return len(p.Allocations) }

// mix is a per-ton blend of at most two offers on the frontier.
type mix struct {
	a, b   Offer
	weight float64 // share of b
}

func pure(o Offer) mix { return mix{a: o, b: o} }

func (m mix) cost() float64 { return (1-m.weight)*m.a.CostPerTon + m.weight*m.b.CostPerTon }
func (m mix) carbon() float64 { return (1-m.weight)*m.a.CarbonPerTon + m.weight*m.b.CarbonPerTon }

func (m mix) plan(label string, demand float64) Plan {
	p := Plan{
		Label:          label,
		TotalCostUSD:   m.cost() * demand,
		TotalEmissions: m.carbon() * demand,
	}
	add := func(o Offer, share float64) {
		if tons := share * demand; tons > minTons {
			p.Allocations = append(p.Allocations, Allocation{Manufacturer: o.Manufacturer, Tons: tons})
		}
	}
	if m.a.Manufacturer == m.b.Manufacturer {
		add(m.a, 1)
	} else {
		add(m.a, 1-m.weight)
		add(m.b, m.weight)
	}
	sort.Slice(p.Allocations, func(i, j int) bool {
		return p.Allocations[i].Manufacturer < p.Allocations[j].Manufacturer
	})
	return p
}

// Menu returns Pareto-efficient supply plans between the lowest-emission plan
// that fits the budget and the cheapest plan, ordered by emissions.
//
// Without capacity limits every per-ton plan is a blend of offers, so the
// efficient set is the lower-left convex hull of (cost, carbon) points and an
// optimal plan never needs more than two suppliers. With MaxSuppliers == 1 the
// menu is restricted to single offers on the Pareto front.
func Menu(offers []Offer, req MenuRequest) ([]Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("no offers: %w", model.ErrEmptyInput)
	}

	front := paretoFront(offers)
	if req.MaxSuppliers >= 2 {
		front = lowerHull(front)
	}
	blend := req.MaxSuppliers >= 2
	perTonBudget := req.BudgetUSD / req.DemandTons

	cheapest := front[0]
	if cheapest.CostPerTon > perTonBudget {
		return nil, model.InvalidParam("budget_usd", fmt.Sprintf("cheapest plan costs %.2f, budget is %.2f", cheapest.CostPerTon*req.DemandTons, req.BudgetUSD))
	}
	minCost := pure(cheapest)
	minCarbon := minCarbonWithin(front, perTonBudget, blend)

	plans := []Plan{
		minCarbon.plan(LabelMinCarbon, req.DemandTons),
		minCost.plan(LabelMinCost, req.DemandTons),
	}
	seen := map[[2]float64]bool{planKey(plans[0]): true}
	if seen[planKey(plans[1])] {
		plans = plans[:1]
	} else {
		seen[planKey(plans[1])] = true
	}

	lo, hi := minCarbon.carbon(), minCost.carbon()
	for i := 1; i < req.Points-1 && len(plans) < req.Points; i++ {
		limit := lo + (hi-lo)*float64(i)/float64(req.Points-1)
		m, ok := minCostWithin(front, limit, blend)
		if !ok {
			continue
		}
		p := m.plan(fmt.Sprintf("Trade-off (cap=%.2f)", limit*req.DemandTons), req.DemandTons)
		if key := planKey(p); !seen[key] {
			seen[key] = true
			plans = append(plans, p)
		}
	}

	for _, p := range plans {
		if math.IsInf(p.TotalEmissions, 0) || math.IsInf(p.TotalCostUSD, 0) {
			return nil, model.InvalidParam("demand_tons", "plan totals overflow float64")
		}
	}

	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].TotalEmissions != plans[j].TotalEmissions {
			return plans[i].TotalEmissions < plans[j].TotalEmissions
		}
		return plans[i].TotalCostUSD < plans[j].TotalCostUSD
	})
	return plans, nil
}

func planKey(p Plan) [2]float64 {
	return [2]float64{math.Round(p.TotalCostUSD*100) / 100, math.Round(p.TotalEmissions*1e6) / 1e6}
}

// paretoFront keeps offers no other offer beats on both cost and carbon,
// ordered by rising cost and falling carbon.
func paretoFront(offers []Offer) []Offer {
	sorted := append([]Offer(nil), offers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CostPerTon != sorted[j].CostPerTon {
			return sorted[i].CostPerTon < sorted[j].CostPerTon
		}
		if sorted[i].CarbonPerTon != sorted[j].CarbonPerTon {
			return sorted[i].CarbonPerTon < sorted[j].CarbonPerTon
		}
		return sorted[i].Manufacturer < sorted[j].Manufacturer
	})
	front := []Offer{sorted[0]}
	for _, o := range sorted[1:] {
		if o.CarbonPerTon < front[len(front)-1].CarbonPerTon {
			front = append(front, o)
		}
	}
	return front
}

// lowerHull drops front points that a blend of their neighbours dominates.
func lowerHull(front []Offer) []Offer {
	var hull []Offer
	for _, p := range front {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull
}

func cross(o, a, b Offer) float64 {
	return (a.CostPerTon-o.CostPerTon)*(b.CarbonPerTon-o.CarbonPerTon) -
		(a.CarbonPerTon-o.CarbonPerTon)*(b.CostPerTon-o.CostPerTon)
}

// minCarbonWithin is the lowest-carbon point on front costing at most budget per ton.
// front[0] must fit the budget.
func minCarbonWithin(front []Offer, budget float64, blend bool) mix {
	last := front[len(front)-1]
	if last.CostPerTon <= budget {
		return pure(last)
	}
	for i := 0; i+1 < len(front); i++ {
		a, b := front[i], front[i+1]
		if a.CostPerTon <= budget && budget < b.CostPerTon {
			if !blend {
				return pure(a)
			}
			return mix{a: a, b: b, weight: (budget - a.CostPerTon) / (b.CostPerTon - a.CostPerTon)}
		}
	}
	return pure(front[0])
}

// minCostWithin is the cheapest point on front emitting at most limit per ton.
func minCostWithin(front []Offer, limit float64, blend bool) (mix, bool) {
	if front[0].CarbonPerTon <= limit {
		return pure(front[0]), true
	}
	for i := 0; i+1 < len(front); i++ {
		a, b := front[i], front[i+1]
		if a.CarbonPerTon > limit && limit >= b.CarbonPerTon {
			if !blend {
				return pure(b), true
			}
			return mix{a: a, b: b, weight: (a.CarbonPerTon - limit) / (a.CarbonPerTon - b.CarbonPerTon)}, true
		}
	}
	return mix{}, false
}
