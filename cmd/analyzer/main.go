package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"equity-analytics/config"
	"equity-analytics/observability"
)

var (
	cfgPath    string
	production bool
	tracing    bool
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Quantitative equity analytics engine",
	Long: `Analyzer runs the equity analytics pipeline from the command line:
technical indicators, fundamental scoring, risk statistics, and price
forecasts for one ticker or a batch of them.

Price bars come from JSON fixtures or from seeded synthetic series, so
every command works offline and reproducibly.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to a YAML config file (default: environment)")
	rootCmd.PersistentFlags().BoolVar(&production, "production", false, "emit JSON logs")
	rootCmd.PersistentFlags().BoolVar(&tracing, "tracing", false, "export spans to stdout")
}

// setup loads configuration and brings up logging, metrics, and
// tracing. The returned shutdown function flushes the trace exporter.
func setup(ctx context.Context) (*config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	observability.InitLogger(production || cfg.Observability.Production)
	observability.InitMetrics()
	if err := observability.InitTracing(ctx, cfg.Observability.ServiceName, tracing || cfg.Observability.TracingEnabled); err != nil {
		return nil, nil, err
	}

	shutdown := func() {
		if err := observability.ShutdownTracing(ctx); err != nil {
			observability.Warn("tracing shutdown failed", "error", err)
		}
	}
	return cfg, shutdown, nil
}

func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFile(cfgPath)
	}
	return config.Load()
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
