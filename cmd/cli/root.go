package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"steel-procurement/internal/config"
	"steel-procurement/internal/logger"
)

type rootOptions struct {
	configFile string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "procure",
		Short: "Steel procurement strategy analysis",
		Long: `Monte Carlo evaluation of steel purchasing strategies
(Spot Now, Spot Later, Ladder, Hedge) over a 12-month price forecast.

Examples:
  procure analyze --csv steel_index.csv --demand 10000
  procure analyze --scenario tariffs --sims 20000 --raw
  procure forecast --scenario recession
  procure sync-forecast --out data/forecast_baseline.yaml
  procure suppliers --city Chicago --state Illinois --budget 9000000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Logging.Level = opts.logLevel
			}
			logger.Init(cfg.Logging.Level, cfg.Logging.Format)
			opts.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (defaults plus PROCURE_* env when empty)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newScenariosCmd(),
		newForecastCmd(opts),
		newSyncForecastCmd(opts),
		newSuppliersCmd(opts),
	)
	return cmd
}
