package models

import (
	"time"

	"github.com/shopspring/decimal"

	"steel-procurement/internal/model"
	"steel-procurement/internal/procurement"
	"steel-procurement/internal/supplier"
)

var million = decimal.NewFromInt(1_000_000)

// ToMillions converts raw USD to $ millions rounded to 3 decimals.
// This is the only place money changes unit.
func ToMillions(usd float64) float64 {
	return decimal.NewFromFloat(usd).Div(million).Round(3).InexactFloat64()
}

// FormatMillions is ToMillions rendered with exactly 3 decimals.
func FormatMillions(usd float64) string {
	return decimal.NewFromFloat(usd).Div(million).StringFixed(3)
}

// Round rounds v half away from zero to places decimals.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// StrategySummary is one strategy's cost distribution in $ millions.
type StrategySummary struct {
	Label    string  `json:"label"`
	MeanMUSD float64 `json:"mean_musd"`
	P05MUSD  float64 `json:"p05_musd"`
	P95MUSD  float64 `json:"p95_musd"`
	StdMUSD  float64 `json:"std_musd"`
}

type RankedStrategy struct {
	Rank     int     `json:"rank"`
	Strategy string  `json:"strategy"`
	Label    string  `json:"label"`
	MeanMUSD float64 `json:"mean_musd"`
}

// AnalysisResponse represents the response from an analysis run
type AnalysisResponse struct {
	ID             string                     `json:"id"`
	CreatedAt      time.Time                  `json:"created_at"`
	Scenario       string                     `json:"scenario,omitempty"`
	Trials         int                        `json:"trials"`
	DemandTons     float64                    `json:"demand_tons"`
	Volatility     float64                    `json:"volatility"`
	HedgeRatio     float64                    `json:"hedge_ratio"`
	BasePrice      float64                    `json:"base_price"`
	Seed           *int64                     `json:"seed,omitempty"`
	ForecastPerTon []float64                  `json:"forecast_per_ton"`
	Summary        map[string]StrategySummary `json:"summary"`
	Ranking        []RankedStrategy           `json:"ranking"`
}

// NewAnalysisResponse converts an engine result into the wire shape.
func NewAnalysisResponse(res *procurement.Result, scenario string) AnalysisResponse {
	out := AnalysisResponse{
		ID:             res.RunID.String(),
		CreatedAt:      res.CreatedAt,
		Scenario:       scenario,
		Trials:         res.Params.Trials,
		DemandTons:     res.Params.Demand,
		Volatility:     res.Params.Volatility,
		HedgeRatio:     res.Params.HedgeRatio,
		BasePrice:      res.Params.BasePrice,
		Seed:           res.Params.Seed,
		ForecastPerTon: res.Forecast,
		Summary:        make(map[string]StrategySummary, len(res.Summaries)),
		Ranking:        make([]RankedStrategy, 0, len(res.Ranking)),
	}
	for s, sum := range res.Summaries {
		out.Summary[string(s)] = StrategySummary{
			Label:    s.Label(),
			MeanMUSD: ToMillions(sum.Mean),
			P05MUSD:  ToMillions(sum.P05),
			P95MUSD:  ToMillions(sum.P95),
			StdMUSD:  ToMillions(sum.StdDev),
		}
	}
	for _, r := range res.Ranking {
		out.Ranking = append(out.Ranking, RankedStrategy{
			Rank:     r.Rank,
			Strategy: string(r.Strategy),
			Label:    r.Strategy.Label(),
			MeanMUSD: ToMillions(r.Mean),
		})
	}
	return out
}

// CompareResponse represents the response from a scenario comparison
type CompareResponse struct {
	Comparison []AnalysisResponse `json:"comparison"`
}

// ForecastResponse mirrors the forecasting service's shape plus $/ton prices.
type ForecastResponse struct {
	Scenario    string                `json:"scenario"`
	Months      int                   `json:"months"`
	Data        []model.ForecastPoint `json:"data"`
	PricePerTon []float64             `json:"price_per_ton"`
}

type AllForecastsResponse struct {
	Months    int                              `json:"months"`
	Scenarios map[string][]model.ForecastPoint `json:"scenarios"`
}

// OfferResponse is a delivered price rounded for display: USD to cents, distances to km.
type OfferResponse struct {
	Manufacturer        string  `json:"manufacturer"`
	Country             string  `json:"country"`
	NearestPort         string  `json:"nearest_port,omitempty"`
	LandKm              float64 `json:"land_km"`
	SeaKm               float64 `json:"sea_km"`
	SteelCostPerTon     float64 `json:"steel_cost_per_ton_usd"`
	TransportCostPerTon float64 `json:"transport_cost_per_ton_usd"`
	CostPerTon          float64 `json:"cost_per_ton_usd"`
	CarbonPerTon        float64 `json:"carbon_per_ton"`
}

type LandedCostResponse struct {
	Site   supplier.Coord  `json:"site"`
	Offers []OfferResponse `json:"offers"`
}

func NewLandedCostResponse(site supplier.Coord, offers []supplier.Offer) LandedCostResponse {
	out := LandedCostResponse{Site: site, Offers: make([]OfferResponse, 0, len(offers))}
	for _, o := range offers {
		out.Offers = append(out.Offers, OfferResponse{
			Manufacturer:        o.Manufacturer,
			Country:             o.Country,
			NearestPort:         o.Port,
			LandKm:              Round(o.LandKm, 1),
			SeaKm:               Round(o.SeaKm, 1),
			SteelCostPerTon:     Round(o.SteelCostPerTon, 2),
			TransportCostPerTon: Round(o.TransportCostPerTon, 2),
			CostPerTon:          Round(o.CostPerTon, 2),
			CarbonPerTon:        Round(o.CarbonPerTon, 4),
		})
	}
	return out
}

// PlanResponse is one row of the supplier trade-off menu.
type PlanResponse struct {
	Label          string             `json:"label"`
	TotalCostUSD   float64            `json:"total_cost_usd"`
	TotalEmissions float64            `json:"total_emissions_tco2e"`
	NumSuppliers   int                `json:"num_suppliers"`
	Suppliers      []string           `json:"suppliers"`
	AllocTons      map[string]float64 `json:"alloc_tons"`
}

type SupplierMenuResponse struct {
	Site         supplier.Coord `json:"site"`
	DemandTons   float64        `json:"demand_tons"`
	BudgetUSD    float64        `json:"budget_usd"`
	MaxSuppliers int            `json:"max_suppliers"`
	Plans        []PlanResponse `json:"plans"`
}

func NewSupplierMenuResponse(site supplier.Coord, req supplier.MenuRequest, plans []supplier.Plan) SupplierMenuResponse {
	out := SupplierMenuResponse{
		Site:         site,
		DemandTons:   req.DemandTons,
		BudgetUSD:    req.BudgetUSD,
		MaxSuppliers: req.MaxSuppliers,
		Plans:        make([]PlanResponse, 0, len(plans)),
	}
	for _, p := range plans {
		pr := PlanResponse{
			Label:          p.Label,
			TotalCostUSD:   Round(p.TotalCostUSD, 2),
			TotalEmissions: Round(p.TotalEmissions, 6),
			NumSuppliers:   p.NumSuppliers(),
			AllocTons:      make(map[string]float64, len(p.Allocations)),
		}
		for _, a := range p.Allocations {
			pr.Suppliers = append(pr.Suppliers, a.Manufacturer)
			pr.AllocTons[a.Manufacturer] = Round(a.Tons, 3)
		}
		out.Plans = append(out.Plans, pr)
	}
	return out
}

type ManufacturersResponse struct {
	Manufacturers []supplier.Manufacturer `json:"manufacturers"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type ScenarioInfo struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
