package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steel-procurement/internal/model"
	"steel-procurement/internal/simulation"
)

func flatPath(price float64) []float64 {
	p := make([]float64, model.Horizon)
	for i := range p {
		p[i] = price
	}
	return p
}

func rampPath() []float64 {
	p := make([]float64, model.Horizon)
	for i := range p {
		p[i] = 600 + 10*float64(i)
	}
	return p
}

func TestCostFunctionsOnFlatPath(t *testing.T) {
	in := Inputs{Demand: 1000, HedgeRatio: 0.5, BaselinePrice: 700}
	path := flatPath(700)
	for _, s := range All() {
		fn, err := CostFor(s)
		require.NoError(t, err)
		assert.Equal(t, 700000.0, fn(path, in), s)
	}
}

func TestCostFunctionsOnRamp(t *testing.T) {
	in := Inputs{Demand: 1200, HedgeRatio: 0.25, BaselinePrice: 650}
	path := rampPath() // 600..710

	assert.Equal(t, 1200*600.0, SpotNowCost(path, in))
	assert.InDelta(t, 1200*655.0, SpotLaterCost(path, in), 1e-6)
	assert.InDelta(t, 300*(600.0+630+660+690), LadderCost(path, in), 1e-6)
	assert.InDelta(t, 1200*0.25*650+1200*0.75*710, HedgeCost(path, in), 1e-6)
}

func TestCostForUnknown(t *testing.T) {
	_, err := CostFor(model.Strategy("forward_curve"))
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestDescribeCoversAll(t *testing.T) {
	infos := Describe()
	require.Len(t, infos, len(All()))
	for i, s := range All() {
		assert.Equal(t, s, infos[i].Strategy)
		assert.NotEmpty(t, infos[i].Description)
	}
}

func TestEvaluateShapes(t *testing.T) {
	paths, err := simulation.Generate(flatPath(700), 500, 0.2, simulation.NewRand(nil))
	require.NoError(t, err)

	costs, err := Evaluate(context.Background(), paths, 1000, 0.5, 700)
	require.NoError(t, err)
	require.Len(t, costs, 4)
	for _, s := range All() {
		require.Len(t, costs[s], 500)
		for _, c := range costs[s] {
			assert.Greater(t, c, 0.0)
		}
	}
}

func TestEvaluateFullHedgeIgnoresPaths(t *testing.T) {
	paths, err := simulation.Generate(rampPath(), 300, 0.3, simulation.NewRand(nil))
	require.NoError(t, err)

	costs, err := Evaluate(context.Background(), paths, 1000, 1, 720)
	require.NoError(t, err)
	for _, c := range costs[model.Hedge] {
		assert.Equal(t, 720000.0, c)
	}
}

func TestEvaluateZeroHedgeIsFinalMonthSpot(t *testing.T) {
	paths, err := simulation.Generate(rampPath(), 300, 0.3, simulation.NewRand(nil))
	require.NoError(t, err)

	costs, err := Evaluate(context.Background(), paths, 1000, 0, 720)
	require.NoError(t, err)
	for i, c := range costs[model.Hedge] {
		assert.Equal(t, 1000*paths[i][model.Horizon-1], c)
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	good := simulation.Paths{flatPath(700)}
	tests := []struct {
		name     string
		paths    simulation.Paths
		demand   float64
		hedge    float64
		baseline float64
		field    string
	}{
		{"zero demand", good, 0, 0.5, 700, "demand"},
		{"hedge above one", good, 1000, 1.2, 700, "hedge_ratio"},
		{"negative hedge", good, 1000, -0.1, 700, "hedge_ratio"},
		{"zero baseline", good, 1000, 0.5, 0, "base_price"},
		{"no rows", simulation.Paths{}, 1000, 0.5, 700, "paths"},
		{"ragged row", simulation.Paths{flatPath(700)[:11]}, 1000, 0.5, 700, "paths"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(context.Background(), tt.paths, tt.demand, tt.hedge, tt.baseline)
			require.ErrorIs(t, err, model.ErrInvalidParameter)
			field, _ := model.FieldOf(err)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, simulation.Paths{flatPath(700)}, 1000, 0.5, 700)
	assert.ErrorIs(t, err, context.Canceled)
}
