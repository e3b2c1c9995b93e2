package main

import (
	"github.com/spf13/cobra"

	"equity-analytics/engine"
)

var (
	anTicker     string
	anPricesPath string
	anFundsPath  string
	anBenchPath  string
	anDays       int
	anSeed       int64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one ticker and print its report as JSON",
	Long: `Analyze runs the full pipeline over one ticker: technical indicators,
the fundamental score, risk statistics, and the price forecast.

Without fixture files the command generates a seeded synthetic price
series and snapshot, including a synthetic benchmark for beta.

Example:
  analyzer analyze -t AAPL --prices data/aapl.json --fundamentals data/aapl_fundamentals.json
  analyzer analyze -t DEMO --days 252 --seed 7`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&anTicker, "ticker", "t", "", "ticker to analyze (required)")
	analyzeCmd.Flags().StringVarP(&anPricesPath, "prices", "p", "", "path to a price series JSON fixture")
	analyzeCmd.Flags().StringVarP(&anFundsPath, "fundamentals", "f", "", "path to a fundamental snapshot JSON fixture")
	analyzeCmd.Flags().StringVar(&anBenchPath, "benchmark", "", "path to a benchmark price series JSON fixture")
	analyzeCmd.Flags().IntVar(&anDays, "days", 252, "synthetic series length in trading days")
	analyzeCmd.Flags().Int64Var(&anSeed, "seed", 42, "random seed for synthetic data")

	analyzeCmd.MarkFlagRequired("ticker")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, shutdown, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	req := engine.Request{Ticker: anTicker}

	if anPricesPath != "" {
		req.Prices, err = loadPriceSeries(anPricesPath, anTicker)
		if err != nil {
			return err
		}
	} else {
		req.Prices = syntheticSeries(anTicker, anDays, anSeed)
	}

	if anFundsPath != "" {
		req.Fundamentals, err = loadSnapshot(anFundsPath)
		if err != nil {
			return err
		}
	} else {
		req.Fundamentals = syntheticSnapshot(anSeed)
	}

	switch {
	case anBenchPath != "":
		req.Benchmark, err = loadPriceSeries(anBenchPath, "BENCH")
		if err != nil {
			return err
		}
	case anPricesPath == "":
		// Synthetic prices share the synthetic benchmark's date grid,
		// fixture prices generally do not.
		req.Benchmark = syntheticSeries("SPY", anDays, anSeed+100)
	}

	report, err := engine.New(cfg).Analyze(cmd.Context(), req)
	if err != nil {
		return err
	}
	return printJSON(report)
}
