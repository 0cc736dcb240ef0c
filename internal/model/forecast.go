package model

import "fmt"

// ForecastPoint is one month of the external forecaster's output.
// Index is the steel price index (1982=100).
type ForecastPoint struct {
	Month int     `json:"month" yaml:"month"`
	Year  int     `json:"year" yaml:"year"`
	Index float64 `json:"steel_price_index" yaml:"steel_price_index"`
}

// Scenario is a named what-if applied to the baseline forecast as a flat multiplier.
type Scenario string

const (
	ScenarioBaseline           Scenario = "baseline"
	ScenarioTariffs            Scenario = "tariffs"
	ScenarioRecession          Scenario = "recession"
	ScenarioInfrastructureBoom Scenario = "infrastructure_boom"
	ScenarioGreenSteel         Scenario = "green_steel"
	ScenarioTariffsRecession   Scenario = "tariffs_recession"
)

// Scenarios returns every known scenario in display order.
func Scenarios() []Scenario {
	return []Scenario{
		ScenarioBaseline,
		ScenarioTariffs,
		ScenarioRecession,
		ScenarioInfrastructureBoom,
		ScenarioGreenSteel,
		ScenarioTariffsRecession,
	}
}

// Multiplier returns the index scaling for s.
func (s Scenario) Multiplier() (float64, bool) {
	switch s {
	case ScenarioBaseline:
		return 1.0, true
	case ScenarioTariffs:
		return 1.12, true
	case ScenarioRecession:
		return 0.85, true
	case ScenarioInfrastructureBoom:
		return 1.08, true
	case ScenarioGreenSteel:
		return 1.15, true
	case ScenarioTariffsRecession:
		return 0.952, true
	default:
		return 0, false
	}
}

// ParseScenario defaults an empty name to baseline.
func ParseScenario(name string) (Scenario, error) {
	if name == "" {
		return ScenarioBaseline, nil
	}
	s := Scenario(name)
	if _, ok := s.Multiplier(); !ok {
		return "", InvalidParam("scenario", fmt.Sprintf("unknown scenario %q", name))
	}
	return s, nil
}
