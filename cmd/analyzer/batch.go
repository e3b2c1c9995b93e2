package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"equity-analytics/engine"
	"equity-analytics/models"
	"equity-analytics/observability"
)

var (
	bTickers []string
	bDir     string
	bDays    int
	bSeed    int64
	bOut     string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze a set of tickers concurrently",
	Long: `Batch runs the pipeline over several tickers through the bounded
worker pool and prints one summary line per ticker. One failed ticker
never aborts the rest.

With --dir each ticker loads <dir>/<TICKER>.json price bars and, when
present, <dir>/<TICKER>_fundamentals.json. Without it every ticker gets
its own seeded synthetic series.

Example:
  analyzer batch -t AAPL,MSFT,GOOG --days 252
  analyzer batch -t AAPL,MSFT --dir fixtures/ --out reports.json`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringSliceVarP(&bTickers, "tickers", "t", nil, "comma separated tickers to analyze (required)")
	batchCmd.Flags().StringVarP(&bDir, "dir", "d", "", "fixture directory with <TICKER>.json price files")
	batchCmd.Flags().IntVar(&bDays, "days", 252, "synthetic series length in trading days")
	batchCmd.Flags().Int64Var(&bSeed, "seed", 42, "base random seed for synthetic data")
	batchCmd.Flags().StringVarP(&bOut, "out", "o", "", "write the full JSON reports to this file")

	batchCmd.MarkFlagRequired("tickers")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, shutdown, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	run := models.NewBatchRun(bTickers)
	observability.Info("batch starting", "run_id", run.ID, "tickers", len(bTickers))

	reqs := make([]engine.Request, len(bTickers))
	if bDir != "" {
		for i, ticker := range bTickers {
			req, err := fixtureRequest(bDir, ticker)
			if err != nil {
				run.Fail(err.Error(), time.Since(run.RunAt).Milliseconds())
				observability.Error("batch failed", "run_id", run.ID, "error", err)
				return err
			}
			reqs[i] = req
		}
	} else {
		bench := syntheticSeries("SPY", bDays, bSeed+100)
		for i, ticker := range bTickers {
			seed := bSeed + int64(i)
			reqs[i] = engine.Request{
				Ticker:       ticker,
				Prices:       syntheticSeries(ticker, bDays, seed),
				Fundamentals: syntheticSnapshot(seed),
				Benchmark:    bench,
			}
		}
	}

	results := engine.New(cfg).AnalyzeBatch(cmd.Context(), reqs)

	reports := make([]*models.AnalysisReport, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			run.AddOutcome(models.BatchOutcome{Ticker: res.Ticker, Error: res.Err.Error()})
			fmt.Printf("%-8s FAILED  %v\n", res.Ticker, res.Err)
			continue
		}
		score := res.Report.Score.TotalScore
		run.AddOutcome(models.BatchOutcome{
			Ticker:   res.Ticker,
			ReportID: res.Report.ID,
			Score:    &score,
			Rating:   res.Report.Rating,
		})
		fmt.Printf("%-8s %-12s score %5.1f\n", res.Ticker, res.Report.Rating, score)
		reports = append(reports, res.Report)
	}
	run.Complete(time.Since(run.RunAt).Milliseconds(), run.TopByScore(3))
	fmt.Printf("\n%d analyzed, %d failed (run %s)\n", run.Succeeded(), run.Failed(), run.ID)

	if bOut != "" {
		artifact := batchArtifact{Run: run, Reports: reports}
		if err := writeJSON(bOut, artifact); err != nil {
			return err
		}
		fmt.Printf("reports written to %s\n", bOut)
	}
	return nil
}

// batchArtifact is the document --out writes: the run record plus the
// full report for every ticker that succeeded.
type batchArtifact struct {
	Run     *models.BatchRun         `json:"run"`
	Reports []*models.AnalysisReport `json:"reports"`
}

// fixtureRequest loads one ticker's price and optional fundamentals
// fixtures from dir.
func fixtureRequest(dir, ticker string) (engine.Request, error) {
	series, err := loadPriceSeries(filepath.Join(dir, ticker+".json"), ticker)
	if err != nil {
		return engine.Request{}, err
	}
	req := engine.Request{Ticker: ticker, Prices: series}

	fundsPath := filepath.Join(dir, ticker+"_fundamentals.json")
	if _, err := os.Stat(fundsPath); err == nil {
		req.Fundamentals, err = loadSnapshot(fundsPath)
		if err != nil {
			return engine.Request{}, err
		}
	}
	return req, nil
}
