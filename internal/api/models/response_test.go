package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"steel-procurement/internal/analysis"
	"steel-procurement/internal/model"
	"steel-procurement/internal/procurement"
	"steel-procurement/internal/supplier"
)

func TestToMillions(t *testing.T) {
	assert.Equal(t, 0.7, ToMillions(700000))
	assert.Equal(t, 7.0, ToMillions(7_000_000))
	assert.Equal(t, 1.235, ToMillions(1_234_567.89))
	assert.Equal(t, 0.0, ToMillions(0))
	assert.Equal(t, "0.700", FormatMillions(700000))
	assert.Equal(t, "12.346", FormatMillions(12_345_678))
}

func TestNewAnalysisResponse(t *testing.T) {
	sums := map[model.Strategy]analysis.Summary{
		model.SpotNow: {Mean: 7_100_000, P05: 6_000_000, P95: 8_200_000, StdDev: 650_000},
		model.Hedge:   {Mean: 7_000_000, P05: 6_900_000, P95: 7_150_000, StdDev: 80_000},
	}
	seed := int64(7)
	res := &procurement.Result{
		RunID:     uuid.New(),
		CreatedAt: time.Now(),
		Params:    model.Params{Trials: 100, Demand: 10000, HedgeRatio: 0.7, Volatility: 0.05, BasePrice: 700, Seed: &seed},
		Summaries: sums,
		Ranking:   analysis.RankByMean(sums),
	}

	out := NewAnalysisResponse(res, "baseline")
	assert.Equal(t, res.RunID.String(), out.ID)
	assert.Equal(t, "baseline", out.Scenario)
	assert.Equal(t, StrategySummary{Label: "Spot Now", MeanMUSD: 7.1, P05MUSD: 6, P95MUSD: 8.2, StdMUSD: 0.65}, out.Summary["spot_now"])
	assert.Equal(t, "hedge", out.Ranking[0].Strategy)
	assert.Equal(t, 1, out.Ranking[0].Rank)
	assert.Equal(t, int64(7), *out.Seed)
}

func TestNewSupplierMenuResponse(t *testing.T) {
	assert.Equal(t, 1.24, Round(1.235, 2))
	assert.Equal(t, 650.1, Round(650.0999, 1))

	plans := []supplier.Plan{{
		Label:          supplier.LabelMinCarbon,
		TotalCostUSD:   650000.004,
		TotalEmissions: 1500.0000004,
		Allocations: []supplier.Allocation{
			{Manufacturer: "A", Tons: 333.3333333},
			{Manufacturer: "B", Tons: 666.6666667},
		},
	}}
	req := supplier.MenuRequest{DemandTons: 1000, BudgetUSD: 7e5, MaxSuppliers: 2, Points: 5}
	resp := NewSupplierMenuResponse(supplier.Coord{Lat: 1, Lon: 2}, req, plans)

	assert.Equal(t, 2, resp.MaxSuppliers)
	assert.Len(t, resp.Plans, 1)
	p := resp.Plans[0]
	assert.Equal(t, 650000.0, p.TotalCostUSD)
	assert.Equal(t, 1500.0, p.TotalEmissions)
	assert.Equal(t, 2, p.NumSuppliers)
	assert.Equal(t, []string{"A", "B"}, p.Suppliers)
	assert.Equal(t, map[string]float64{"A": 333.333, "B": 666.667}, p.AllocTons)
}
