package model

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Params {
	return Params{Trials: 1000, Volatility: 0.1, HedgeRatio: 0.5, Demand: 1000, BasePrice: 700}
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, validParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"zero trials", func(p *Params) { p.Trials = 0 }, "trials"},
		{"negative volatility", func(p *Params) { p.Volatility = -0.01 }, "volatility"},
		{"nan volatility", func(p *Params) { p.Volatility = math.NaN() }, "volatility"},
		{"inf volatility", func(p *Params) { p.Volatility = math.Inf(1) }, "volatility"},
		{"hedge above one", func(p *Params) { p.HedgeRatio = 1.01 }, "hedge_ratio"},
		{"zero demand", func(p *Params) { p.Demand = 0 }, "demand"},
		{"negative base price", func(p *Params) { p.BasePrice = -700 }, "base_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			require.ErrorIs(t, err, ErrInvalidParameter)
			field, ok := FieldOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestParamErrorThroughWrap(t *testing.T) {
	err := fmt.Errorf("run analysis: %w", InvalidParam("demand", "must be > 0"))
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.False(t, errors.Is(err, ErrEmptyInput))
	field, ok := FieldOf(err)
	assert.True(t, ok)
	assert.Equal(t, "demand", field)
	assert.Contains(t, err.Error(), "invalid parameter demand")

	_, ok = FieldOf(ErrEmptyInput)
	assert.False(t, ok)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("spot_later")
	require.NoError(t, err)
	assert.Equal(t, SpotLater, s)

	s, err = ParseStrategy("Spot Now")
	require.NoError(t, err)
	assert.Equal(t, SpotNow, s)

	_, err = ParseStrategy("collar")
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.False(t, Strategy("collar").Valid())
}

func TestScenarios(t *testing.T) {
	s, err := ParseScenario("")
	require.NoError(t, err)
	assert.Equal(t, ScenarioBaseline, s)

	for _, sc := range Scenarios() {
		m, ok := sc.Multiplier()
		assert.True(t, ok, sc)
		assert.Positive(t, m)
	}

	m, _ := ScenarioTariffsRecession.Multiplier()
	assert.InDelta(t, 1.12*0.85, m, 1e-12)

	_, err = ParseScenario("zombie_apocalypse")
	require.ErrorIs(t, err, ErrInvalidParameter)
	field, _ := FieldOf(err)
	assert.Equal(t, "scenario", field)
}

func TestValidateForecast(t *testing.T) {
	f := make([]float64, Horizon)
	for i := range f {
		f[i] = 700
	}
	assert.NoError(t, ValidateForecast(f))
	f[4] = math.Inf(1)
	assert.ErrorIs(t, ValidateForecast(f), ErrInvalidParameter)
	assert.ErrorIs(t, ValidateForecast(f[:3]), ErrInvalidParameter)
}
