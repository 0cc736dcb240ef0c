package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"steel-procurement/internal/api/models"
	"steel-procurement/internal/model"
	"steel-procurement/internal/strategy"
)

// StrategyHandler handles strategy and scenario listings
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	infos := strategy.Describe()
	out := make([]models.StrategyInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, models.StrategyInfo{
			Name:        string(info.Strategy),
			Label:       info.Label,
			Description: info.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"strategies": out})
}

// ListScenarios handles GET /api/v1/scenarios
func (h *StrategyHandler) ListScenarios(c *gin.Context) {
	out := make([]models.ScenarioInfo, 0, len(model.Scenarios()))
	for _, s := range model.Scenarios() {
		m, _ := s.Multiplier()
		out = append(out, models.ScenarioInfo{Name: string(s), Multiplier: m})
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": out})
}
