package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"steel-procurement/internal/api/handlers"
	"steel-procurement/internal/api/middleware"
	"steel-procurement/internal/config"
	"steel-procurement/internal/forecast"
	"steel-procurement/internal/procurement"
	"steel-procurement/internal/supplier"
)

// NewRouter wires handlers and middleware. Gin mode is left to the caller.
// Supplier routes are mounted only when catalog is non-nil.
func NewRouter(cfg *config.Config, source forecast.Source, engine *procurement.Engine, catalog *supplier.Catalog) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	analysisHandler := handlers.NewAnalysisHandler(engine, source, cfg.Simulation)
	forecastHandler := handlers.NewForecastHandler(source, cfg.Simulation.IndexBasePrice)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "forecast_source": cfg.Forecast.Source, "suppliers": catalog != nil})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/scenarios", strategyHandler.ListScenarios)

		api.POST("/forecast", forecastHandler.GetForecast)
		api.GET("/forecast/all", forecastHandler.AllForecasts)

		sim := api.Group("/analysis", middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
		sim.POST("", analysisHandler.RunAnalysis)
		sim.POST("/compare", analysisHandler.CompareScenarios)

		if catalog != nil {
			supplierHandler := handlers.NewSupplierHandler(catalog, cfg.Suppliers, cfg.Simulation.DefaultDemandTons)
			api.GET("/suppliers", supplierHandler.ListManufacturers)
			api.POST("/suppliers/landed-cost", supplierHandler.LandedCosts)
			api.POST("/suppliers/menu", supplierHandler.Menu)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
