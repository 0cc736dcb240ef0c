package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"steel-procurement/internal/forecast"
	"steel-procurement/internal/model"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List forecast scenarios and their multipliers",
		// Needs no config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-22s %s\n", "scenario", "multiplier")
			for _, s := range model.Scenarios() {
				m, _ := s.Multiplier()
				fmt.Fprintf(out, "%-22s %.3f\n", s, m)
			}
		},
	}
}

func newForecastCmd(root *rootOptions) *cobra.Command {
	var (
		scenarioName string
		months       int
	)
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print a scenario forecast from the configured source",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := model.ParseScenario(scenarioName)
			if err != nil {
				return err
			}
			src, closeSrc, err := forecast.Open(root.cfg.Forecast)
			if err != nil {
				return err
			}
			defer closeSrc()

			points, err := src.Forecast(cmd.Context(), scenario, months)
			if err != nil {
				return err
			}
			prices, err := forecast.ToPrices(points, root.cfg.Simulation.IndexBasePrice)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s %10s %10s\n", "month", "index", "$/ton")
			for i, p := range points {
				fmt.Fprintf(out, "%04d-%02d  %10.2f %10.2f\n", p.Year, p.Month, p.Index, prices[i])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scenarioName, "scenario", "baseline", "scenario name")
	cmd.Flags().IntVar(&months, "months", model.Horizon, "months to forecast")
	return cmd
}

func newSyncForecastCmd(root *rootOptions) *cobra.Command {
	var (
		baseURL string
		outPath string
		months  int
	)
	cmd := &cobra.Command{
		Use:   "sync-forecast",
		Short: "Snapshot the remote forecaster's baseline into a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = root.cfg.Forecast.BaseURL
			}
			if baseURL == "" {
				return fmt.Errorf("--url or forecast.base_url is required")
			}
			if outPath == "" {
				outPath = root.cfg.Forecast.File
			}

			cfg := root.cfg.Forecast
			client := forecast.NewClient(baseURL, cfg.APIKey, time.Duration(cfg.TimeoutSeconds)*time.Second, nil)
			points, err := client.Forecast(cmd.Context(), model.ScenarioBaseline, months)
			if err != nil {
				return err
			}
			baseline, err := forecast.BaselineFromPoints(baseURL, points)
			if err != nil {
				return err
			}
			if err := forecast.SaveFile(outPath, baseline); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d months starting %04d-%02d to %s\n",
				len(baseline.Index), baseline.StartYear, baseline.StartMonth, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "forecast service base URL (default: forecast.base_url)")
	cmd.Flags().StringVar(&outPath, "out", "", "output YAML path (default: forecast.file)")
	cmd.Flags().IntVar(&months, "months", 24, "months to snapshot")
	return cmd
}
