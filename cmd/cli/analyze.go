package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"steel-procurement/internal/api/models"
	"steel-procurement/internal/forecast"
	"steel-procurement/internal/model"
	"steel-procurement/internal/procurement"
)

type analyzeOptions struct {
	csvPath    string
	scenario   string
	sims       int
	vol        float64
	hedgeRatio float64
	basePrice  float64
	hedgePrice float64
	demand     float64
	seed       int64
	outdir     string
	raw        bool
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the Monte Carlo strategy analysis and write CSV outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.csvPath, "csv", "", "CSV with Month, Year, Steel_Price_Index_(1982=100); last 12 rows are the forecast")
	f.StringVar(&o.scenario, "scenario", "baseline", "scenario from the configured forecast source (ignored with --csv)")
	f.IntVar(&o.sims, "sims", 10000, "number of Monte Carlo simulations")
	f.Float64Var(&o.vol, "vol", 0.05, "monthly volatility (0.05 = 5%)")
	f.Float64Var(&o.hedgeRatio, "hedge-ratio", 0.70, "hedge ratio for the hedge strategy (0..1)")
	f.Float64Var(&o.basePrice, "base-price-2024", 700, "$/ton when index = 100")
	f.Float64Var(&o.hedgePrice, "hedge-price", 0, "$/ton locked by the hedge (default: --base-price-2024)")
	f.Float64Var(&o.demand, "demand", 10000, "total steel demand in tons")
	f.Int64Var(&o.seed, "seed", 7, "random seed")
	f.StringVar(&o.outdir, "outdir", ".", "output directory for CSVs")
	f.BoolVar(&o.raw, "raw", false, "also write per-trial costs")
	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, o *analyzeOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if limit := root.cfg.Simulation.MaxTrials; o.sims > limit {
		return model.InvalidParam("sims", fmt.Sprintf("must be <= %d (simulation.max_trials)", limit))
	}

	var (
		points []model.ForecastPoint
		err    error
	)
	if o.csvPath != "" {
		points, err = forecast.LoadIndexCSV(o.csvPath)
	} else {
		var scenario model.Scenario
		scenario, err = model.ParseScenario(o.scenario)
		if err != nil {
			return err
		}
		src, closeSrc, openErr := forecast.Open(root.cfg.Forecast)
		if openErr != nil {
			return openErr
		}
		defer closeSrc()
		points, err = src.Forecast(ctx, scenario, model.Horizon)
	}
	if err != nil {
		return err
	}

	prices, err := forecast.ToPrices(points, o.basePrice)
	if err != nil {
		return err
	}

	hedgePrice := o.hedgePrice
	if hedgePrice == 0 {
		hedgePrice = o.basePrice
	}
	seed := o.seed
	params := model.Params{
		Trials:     o.sims,
		Volatility: o.vol,
		HedgeRatio: o.hedgeRatio,
		Demand:     o.demand,
		BasePrice:  hedgePrice,
		Seed:       &seed,
	}

	var engineOpts []procurement.Option
	if o.raw {
		engineOpts = append(engineOpts, procurement.WithRawCosts())
	}
	res, err := procurement.New(engineOpts...).Run(ctx, prices, params)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(o.outdir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	written := []string{
		filepath.Join(o.outdir, "baseline_prices.csv"),
		filepath.Join(o.outdir, "strategy_summary.csv"),
	}
	if err := procurement.WriteBaselineCSV(written[0], points, prices); err != nil {
		return err
	}
	if err := procurement.WriteSummaryCSV(written[1], res, models.FormatMillions); err != nil {
		return err
	}
	if o.raw {
		rawPath := filepath.Join(o.outdir, "strategy_raw_costs.csv")
		if err := procurement.WriteRawCostsCSV(rawPath, res); err != nil {
			return err
		}
		written = append(written, rawPath)
	}

	printSummary(out, res)
	fmt.Fprintln(out)
	for _, p := range written {
		fmt.Fprintf(out, "Wrote %s\n", p)
	}
	return nil
}

func printSummary(w io.Writer, res *procurement.Result) {
	p := res.Params
	fmt.Fprintf(w, "Run %s  trials=%d  vol=%.3f  hedge_ratio=%.2f  demand=%.0f t  hedge_price=$%.2f/t\n\n",
		res.RunID, p.Trials, p.Volatility, p.HedgeRatio, p.Demand, p.BasePrice)
	fmt.Fprintf(w, "%-4s %-12s %12s %12s %12s %12s\n", "rank", "strategy", "mean $M", "p05 $M", "p95 $M", "std $M")
	for _, r := range res.Ranking {
		fmt.Fprintf(w, "%-4d %-12s %12s %12s %12s %12s\n",
			r.Rank,
			r.Strategy.Label(),
			models.FormatMillions(r.Mean),
			models.FormatMillions(r.P05),
			models.FormatMillions(r.P95),
			models.FormatMillions(r.StdDev),
		)
	}
}
