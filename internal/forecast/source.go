package forecast

import (
	"context"
	"fmt"

	"steel-procurement/internal/model"
)

// Source supplies monthly steel price index forecasts per scenario.
type Source interface {
	Forecast(ctx context.Context, scenario model.Scenario, months int) ([]model.ForecastPoint, error)
	Scenarios() []model.Scenario
}

// AllScenarios fetches a forecast for every scenario src knows about.
func AllScenarios(ctx context.Context, src Source, months int) (map[model.Scenario][]model.ForecastPoint, error) {
	out := make(map[model.Scenario][]model.ForecastPoint)
	for _, s := range src.Scenarios() {
		points, err := src.Forecast(ctx, s, months)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s, err)
		}
		out[s] = points
	}
	return out, nil
}

func validateRequest(scenario model.Scenario, months int) error {
	if _, ok := scenario.Multiplier(); !ok {
		return model.InvalidParam("scenario", fmt.Sprintf("unknown scenario %q", scenario))
	}
	if months <= 0 {
		return model.InvalidParam("months", "must be > 0")
	}
	return nil
}
