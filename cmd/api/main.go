package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"steel-procurement/internal/api"
	"steel-procurement/internal/config"
	"steel-procurement/internal/forecast"
	"steel-procurement/internal/logger"
	"steel-procurement/internal/procurement"
	"steel-procurement/internal/supplier"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("PROCURE_CONFIG"), "Path to YAML config")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("config", *cfgPath).Msg("failed to load config")
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	gin.SetMode(cfg.Server.Mode)

	source, closeSource, err := forecast.Open(cfg.Forecast)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("source", cfg.Forecast.Source).Msg("failed to open forecast source")
	}
	defer closeSource()

	var catalog *supplier.Catalog
	if cfg.Suppliers.File != "" {
		catalog, err = supplier.LoadCatalog(cfg.Suppliers.File)
		if err != nil {
			logger.Log.Fatal().Err(err).Str("file", cfg.Suppliers.File).Msg("failed to load supplier catalog")
		}
	}

	router := api.NewRouter(cfg, source, procurement.New(), catalog)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("forecast_source", cfg.Forecast.Source).
			Int("max_trials", cfg.Simulation.MaxTrials).
			Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("server forced to shutdown")
	}
	logger.Log.Info().Msg("server exiting")
}
