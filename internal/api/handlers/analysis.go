package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"steel-procurement/internal/api/models"
	"steel-procurement/internal/config"
	"steel-procurement/internal/forecast"
	"steel-procurement/internal/model"
	"steel-procurement/internal/procurement"
)

// AnalysisHandler runs Monte Carlo procurement analyses.
type AnalysisHandler struct {
	engine *procurement.Engine
	source forecast.Source
	cfg    config.SimulationConfig
}

func NewAnalysisHandler(engine *procurement.Engine, source forecast.Source, cfg config.SimulationConfig) *AnalysisHandler {
	return &AnalysisHandler{engine: engine, source: source, cfg: cfg}
}

// RunAnalysis handles POST /api/v1/analysis
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	params, indexBase, err := h.resolveParams(req.SimulationParams)
	if err != nil {
		writeError(c, err)
		return
	}

	var (
		prices   []float64
		scenario string
	)
	switch {
	case len(req.Forecast) > 0 && req.Scenario != "":
		writeError(c, model.InvalidParam("forecast", "give either forecast or scenario, not both"))
		return
	case len(req.Forecast) > 0:
		prices = req.Forecast
	default:
		s, err := model.ParseScenario(req.Scenario)
		if err != nil {
			writeError(c, err)
			return
		}
		scenario = string(s)
		prices, err = h.scenarioPrices(c.Request.Context(), s, indexBase)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	res, err := h.engine.Run(c.Request.Context(), prices, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewAnalysisResponse(res, scenario))
}

// CompareScenarios handles POST /api/v1/analysis/compare
func (h *AnalysisHandler) CompareScenarios(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	params, indexBase, err := h.resolveParams(req.SimulationParams)
	if err != nil {
		writeError(c, err)
		return
	}

	scenarios := h.source.Scenarios()
	if len(req.Scenarios) > 0 {
		scenarios = make([]model.Scenario, 0, len(req.Scenarios))
		for _, name := range req.Scenarios {
			s, err := model.ParseScenario(name)
			if err != nil {
				writeError(c, err)
				return
			}
			scenarios = append(scenarios, s)
		}
	}

	// Every scenario shares the seed, so differences come from the forecast alone.
	comparison := make([]models.AnalysisResponse, len(scenarios))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(max(1, h.cfg.MaxParallelScenarios))
	for i, s := range scenarios {
		i, s := i, s
		g.Go(func() error {
			prices, err := h.scenarioPrices(ctx, s, indexBase)
			if err != nil {
				return err
			}
			res, err := h.engine.Run(ctx, prices, params)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", s, err)
			}
			comparison[i] = models.NewAnalysisResponse(res, string(s))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

func (h *AnalysisHandler) scenarioPrices(ctx context.Context, s model.Scenario, indexBase float64) ([]float64, error) {
	points, err := h.source.Forecast(ctx, s, model.Horizon)
	if err != nil {
		return nil, err
	}
	return forecast.ToPrices(points, indexBase)
}

// resolveParams fills defaults from config and enforces the server trial cap.
func (h *AnalysisHandler) resolveParams(req models.SimulationParams) (model.Params, float64, error) {
	p := model.Params{
		Trials:     h.cfg.DefaultTrials,
		Volatility: h.cfg.DefaultVolatility,
		HedgeRatio: h.cfg.DefaultHedgeRatio,
		Demand:     h.cfg.DefaultDemandTons,
		Seed:       req.Seed,
	}
	indexBase := h.cfg.IndexBasePrice
	if req.IndexBasePrice != nil {
		indexBase = *req.IndexBasePrice
		if !(indexBase > 0) {
			return model.Params{}, 0, model.InvalidParam("index_base_price", "must be > 0")
		}
	}
	p.BasePrice = indexBase

	if req.Trials != nil {
		p.Trials = *req.Trials
	}
	if req.Volatility != nil {
		p.Volatility = *req.Volatility
	}
	if req.HedgeRatio != nil {
		p.HedgeRatio = *req.HedgeRatio
	}
	if req.DemandTons != nil {
		p.Demand = *req.DemandTons
	}
	if req.BasePrice != nil {
		p.BasePrice = *req.BasePrice
	}

	if err := p.Validate(); err != nil {
		return model.Params{}, 0, err
	}
	if p.Trials > h.cfg.MaxTrials {
		return model.Params{}, 0, model.InvalidParam("trials", fmt.Sprintf("must be <= %d", h.cfg.MaxTrials))
	}
	return p, indexBase, nil
}
