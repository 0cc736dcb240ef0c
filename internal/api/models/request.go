package models

// SimulationParams are the knobs shared by single and comparison runs.
// Nil fields take the server defaults.
type SimulationParams struct {
	DemandTons     *float64 `json:"demand_tons,omitempty"`
	Trials         *int     `json:"trials,omitempty"`
	Volatility     *float64 `json:"volatility,omitempty"`      // monthly, 0.05 = 5%
	HedgeRatio     *float64 `json:"hedge_ratio,omitempty"`     // 0..1
	BasePrice      *float64 `json:"base_price,omitempty"`      // $/ton locked by the hedge
	IndexBasePrice *float64 `json:"index_base_price,omitempty"` // $/ton at index 100
	Seed           *int64   `json:"seed,omitempty"`
}

// AnalysisRequest represents the request body for POST /api/v1/analysis.
// Either Forecast ($/ton for each of the next 12 months) or Scenario is used, not both.
type AnalysisRequest struct {
	SimulationParams
	Forecast []float64 `json:"forecast,omitempty"`
	Scenario string    `json:"scenario,omitempty"`
}

// CompareRequest runs the same parameters over several scenarios. Empty means all.
type CompareRequest struct {
	SimulationParams
	Scenarios []string `json:"scenarios,omitempty"`
}

// ForecastRequest represents the request body for POST /api/v1/forecast
type ForecastRequest struct {
	Scenario string `json:"scenario"`
	Months   int    `json:"months"`
}

// SiteRequest locates a project by city and state, or by coordinates.
type SiteRequest struct {
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// SupplierMenuRequest represents the request body for POST /api/v1/suppliers/menu
type SupplierMenuRequest struct {
	SiteRequest
	DemandTons   *float64 `json:"demand_tons,omitempty"`
	BudgetUSD    float64  `json:"budget_usd"`
	MaxSuppliers *int     `json:"max_suppliers,omitempty"`
	Points       *int     `json:"points,omitempty"`
}
