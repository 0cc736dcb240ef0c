package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"steel-procurement/internal/api/models"
	"steel-procurement/internal/forecast"
	"steel-procurement/internal/model"
)

const defaultForecastMonths = model.Horizon

// ForecastHandler proxies the configured forecast source.
type ForecastHandler struct {
	source         forecast.Source
	indexBasePrice float64
}

func NewForecastHandler(source forecast.Source, indexBasePrice float64) *ForecastHandler {
	return &ForecastHandler{source: source, indexBasePrice: indexBasePrice}
}

// GetForecast handles POST /api/v1/forecast
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if req.Months == 0 {
		req.Months = defaultForecastMonths
	}
	scenario, err := model.ParseScenario(req.Scenario)
	if err != nil {
		writeError(c, err)
		return
	}

	points, err := h.source.Forecast(c.Request.Context(), scenario, req.Months)
	if err != nil {
		writeError(c, err)
		return
	}
	prices, err := forecast.ToPrices(points, h.indexBasePrice)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ForecastResponse{
		Scenario:    string(scenario),
		Months:      req.Months,
		Data:        points,
		PricePerTon: prices,
	})
}

// AllForecasts handles GET /api/v1/forecast/all?months=12
func (h *ForecastHandler) AllForecasts(c *gin.Context) {
	months := defaultForecastMonths
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, model.InvalidParam("months", "must be an integer"))
			return
		}
		months = n
	}

	all, err := forecast.AllScenarios(c.Request.Context(), h.source, months)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make(map[string][]model.ForecastPoint, len(all))
	for s, points := range all {
		out[string(s)] = points
	}
	c.JSON(http.StatusOK, models.AllForecastsResponse{Months: months, Scenarios: out})
}
