package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Technical indicator configuration
	Indicators IndicatorConfig `yaml:"indicators"`

	// Fundamental scoring table
	Scoring ScoringTable `yaml:"scoring"`

	// Risk analytics configuration
	Risk RiskConfig `yaml:"risk"`

	// Price forecast configuration
	Forecast ForecastConfig `yaml:"forecast"`

	// Intrinsic valuation configuration
	Valuation ValuationConfig `yaml:"valuation"`

	// Portfolio analytics configuration
	Portfolio PortfolioConfig `yaml:"portfolio"`

	// Batch orchestration configuration
	Batch BatchConfig `yaml:"batch"`

	// Logging and tracing configuration
	Observability ObservabilityConfig `yaml:"observability"`
}

// IndicatorConfig holds technical indicator windows
type IndicatorConfig struct {
	SMAWindows      []int   `yaml:"sma_windows"`
	EMAWindows      []int   `yaml:"ema_windows"`
	RSIWindow       int     `yaml:"rsi_window"`
	MACDFast        int     `yaml:"macd_fast"`
	MACDSlow        int     `yaml:"macd_slow"`
	MACDSignal      int     `yaml:"macd_signal"`
	BollingerWindow int     `yaml:"bollinger_window"`
	BollingerWidth  float64 `yaml:"bollinger_width"`
}

// RiskConfig holds risk analytics parameters. RiskFreeRate is an annual
// decimal rate; VaRConfidences lists the confidence levels for the two
// VaR fields of the report, lower first.
type RiskConfig struct {
	AnnualizationFactor float64   `yaml:"annualization_factor"`
	RiskFreeRate        float64   `yaml:"risk_free_rate"`
	VaRConfidences      []float64 `yaml:"var_confidences"`
	MinObservations     int       `yaml:"min_observations"`
	MinBetaObservations int       `yaml:"min_beta_observations"`
}

// ForecastConfig holds price forecast configuration
type ForecastConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ValuationConfig holds the assumptions behind the intrinsic valuation
// models. Rates are annual decimals.
type ValuationConfig struct {
	RiskFreeRate    float64 `yaml:"risk_free_rate"`
	MarketReturn    float64 `yaml:"market_return"`
	CostOfDebt      float64 `yaml:"cost_of_debt"`
	TaxRate         float64 `yaml:"tax_rate"`
	TerminalGrowth  float64 `yaml:"terminal_growth"`
	MaxFCFGrowth    float64 `yaml:"max_fcf_growth"`
	ProjectionYears int     `yaml:"projection_years"`
	FairPE          float64 `yaml:"fair_pe"`
	IndustryPB      float64 `yaml:"industry_pb"`
}

// PortfolioConfig holds portfolio analytics parameters. RiskFreeRatePct
// is an annual percentage, matching the percentage units of portfolio
// performance figures.
type PortfolioConfig struct {
	RiskFreeRatePct float64 `yaml:"risk_free_rate_pct"`
}

// BatchConfig holds batch orchestration configuration
type BatchConfig struct {
	MaxConcurrency int `yaml:"max_concurrency"`
}

// ObservabilityConfig holds logging and tracing configuration
type ObservabilityConfig struct {
	Production     bool   `yaml:"production"`
	TracingEnabled bool   `yaml:"tracing_enabled"`
	ServiceName    string `yaml:"service_name"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Indicators: IndicatorConfig{
			SMAWindows:      []int{20, 50, 200},
			EMAWindows:      []int{12, 26},
			RSIWindow:       14,
			MACDFast:        12,
			MACDSlow:        26,
			MACDSignal:      9,
			BollingerWindow: 20,
			BollingerWidth:  2.0,
		},
		Scoring: DefaultScoringTable(),
		Risk: RiskConfig{
			AnnualizationFactor: 252,
			RiskFreeRate:        0,
			VaRConfidences:      []float64{0.95, 0.99},
			MinObservations:     10,
			MinBetaObservations: 30,
		},
		Forecast: ForecastConfig{
			Enabled: true,
		},
		Valuation: ValuationConfig{
			RiskFreeRate:    0.04,
			MarketReturn:    0.10,
			CostOfDebt:      0.05,
			TaxRate:         0.21,
			TerminalGrowth:  0.03,
			MaxFCFGrowth:    0.15,
			ProjectionYears: 5,
			FairPE:          18,
			IndustryPB:      2.0,
		},
		Portfolio: PortfolioConfig{
			RiskFreeRatePct: 2.0,
		},
		Batch: BatchConfig{
			MaxConcurrency: 4,
		},
		Observability: ObservabilityConfig{
			Production:     false,
			TracingEnabled: false,
			ServiceName:    "equity-analytics",
		},
	}
}

// Load loads configuration from environment variables over the defaults
func Load() (*Config, error) {
	cfg := Default()

	cfg.Indicators.RSIWindow = getEnvInt("RSI_WINDOW", cfg.Indicators.RSIWindow)
	cfg.Indicators.MACDFast = getEnvInt("MACD_FAST", cfg.Indicators.MACDFast)
	cfg.Indicators.MACDSlow = getEnvInt("MACD_SLOW", cfg.Indicators.MACDSlow)
	cfg.Indicators.MACDSignal = getEnvInt("MACD_SIGNAL", cfg.Indicators.MACDSignal)
	cfg.Indicators.BollingerWindow = getEnvInt("BOLLINGER_WINDOW", cfg.Indicators.BollingerWindow)
	cfg.Indicators.BollingerWidth = getEnvFloatUnbounded("BOLLINGER_WIDTH", cfg.Indicators.BollingerWidth)

	cfg.Risk.AnnualizationFactor = getEnvFloatUnbounded("ANNUALIZATION_FACTOR", cfg.Risk.AnnualizationFactor)
	cfg.Risk.RiskFreeRate = getEnvFloat("RISK_FREE_RATE", cfg.Risk.RiskFreeRate)
	cfg.Risk.MinObservations = getEnvInt("MIN_OBSERVATIONS", cfg.Risk.MinObservations)
	cfg.Risk.MinBetaObservations = getEnvInt("MIN_BETA_OBSERVATIONS", cfg.Risk.MinBetaObservations)

	cfg.Forecast.Enabled = getEnvBool("FORECAST_ENABLED", cfg.Forecast.Enabled)

	cfg.Valuation.FairPE = getEnvFloatUnbounded("VALUATION_FAIR_PE", cfg.Valuation.FairPE)
	cfg.Valuation.IndustryPB = getEnvFloatUnbounded("VALUATION_INDUSTRY_PB", cfg.Valuation.IndustryPB)

	cfg.Portfolio.RiskFreeRatePct = getEnvFloatUnbounded("PORTFOLIO_RISK_FREE_RATE_PCT", cfg.Portfolio.RiskFreeRatePct)

	cfg.Batch.MaxConcurrency = getEnvInt("MAX_CONCURRENCY", cfg.Batch.MaxConcurrency)

	cfg.Observability.Production = getEnvBool("PRODUCTION_LOGGING", cfg.Observability.Production)
	cfg.Observability.TracingEnabled = getEnvBool("TRACING_ENABLED", cfg.Observability.TracingEnabled)
	cfg.Observability.ServiceName = getEnvString("SERVICE_NAME", cfg.Observability.ServiceName)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads a YAML configuration file over the defaults
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, w := range c.Indicators.SMAWindows {
		if w <= 0 {
			return fmt.Errorf("sma_windows must be positive, got %d", w)
		}
	}
	for _, w := range c.Indicators.EMAWindows {
		if w <= 0 {
			return fmt.Errorf("ema_windows must be positive, got %d", w)
		}
	}
	if c.Indicators.RSIWindow <= 0 {
		return fmt.Errorf("RSI_WINDOW must be positive, got %d", c.Indicators.RSIWindow)
	}
	if c.Indicators.MACDFast <= 0 || c.Indicators.MACDSlow <= 0 || c.Indicators.MACDSignal <= 0 {
		return fmt.Errorf("MACD windows must be positive, got %d/%d/%d",
			c.Indicators.MACDFast, c.Indicators.MACDSlow, c.Indicators.MACDSignal)
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("MACD_FAST must be shorter than MACD_SLOW, got %d/%d",
			c.Indicators.MACDFast, c.Indicators.MACDSlow)
	}
	if c.Indicators.BollingerWindow <= 0 {
		return fmt.Errorf("BOLLINGER_WINDOW must be positive, got %d", c.Indicators.BollingerWindow)
	}
	if c.Indicators.BollingerWidth <= 0 {
		return fmt.Errorf("BOLLINGER_WIDTH must be positive, got %.2f", c.Indicators.BollingerWidth)
	}

	if err := c.Scoring.Validate(); err != nil {
		return err
	}

	if c.Risk.AnnualizationFactor <= 0 {
		return fmt.Errorf("ANNUALIZATION_FACTOR must be positive, got %.2f", c.Risk.AnnualizationFactor)
	}
	if c.Risk.RiskFreeRate < 0 {
		return fmt.Errorf("RISK_FREE_RATE must not be negative, got %.4f", c.Risk.RiskFreeRate)
	}
	if len(c.Risk.VaRConfidences) != 2 {
		return fmt.Errorf("var_confidences must list exactly two levels, got %d", len(c.Risk.VaRConfidences))
	}
	for _, q := range c.Risk.VaRConfidences {
		if q <= 0 || q >= 1 {
			return fmt.Errorf("var_confidences must fall inside (0, 1), got %.4f", q)
		}
	}
	if c.Risk.VaRConfidences[0] >= c.Risk.VaRConfidences[1] {
		return fmt.Errorf("var_confidences must increase, got %.2f/%.2f",
			c.Risk.VaRConfidences[0], c.Risk.VaRConfidences[1])
	}
	if c.Risk.MinObservations < 2 {
		return fmt.Errorf("MIN_OBSERVATIONS must be at least 2, got %d", c.Risk.MinObservations)
	}
	if c.Risk.MinBetaObservations < 2 {
		return fmt.Errorf("MIN_BETA_OBSERVATIONS must be at least 2, got %d", c.Risk.MinBetaObservations)
	}

	if c.Valuation.MarketReturn <= c.Valuation.RiskFreeRate {
		return fmt.Errorf("market_return %.4f must exceed the valuation risk_free_rate %.4f",
			c.Valuation.MarketReturn, c.Valuation.RiskFreeRate)
	}
	if c.Valuation.TaxRate < 0 || c.Valuation.TaxRate >= 1 {
		return fmt.Errorf("tax_rate must be in [0, 1), got %.4f", c.Valuation.TaxRate)
	}
	if c.Valuation.TerminalGrowth < 0 {
		return fmt.Errorf("terminal_growth must not be negative, got %.4f", c.Valuation.TerminalGrowth)
	}
	if c.Valuation.MaxFCFGrowth < 0 {
		return fmt.Errorf("max_fcf_growth must not be negative, got %.4f", c.Valuation.MaxFCFGrowth)
	}
	if c.Valuation.ProjectionYears < 1 {
		return fmt.Errorf("projection_years must be at least 1, got %d", c.Valuation.ProjectionYears)
	}
	if c.Valuation.FairPE <= 0 {
		return fmt.Errorf("VALUATION_FAIR_PE must be positive, got %.2f", c.Valuation.FairPE)
	}
	if c.Valuation.IndustryPB <= 0 {
		return fmt.Errorf("VALUATION_INDUSTRY_PB must be positive, got %.2f", c.Valuation.IndustryPB)
	}

	if c.Portfolio.RiskFreeRatePct < 0 {
		return fmt.Errorf("PORTFOLIO_RISK_FREE_RATE_PCT must not be negative, got %.2f", c.Portfolio.RiskFreeRatePct)
	}

	if c.Batch.MaxConcurrency <= 0 {
		return fmt.Errorf("MAX_CONCURRENCY must be positive, got %d", c.Batch.MaxConcurrency)
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil && parsed >= 0 && parsed <= 1 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatUnbounded(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return Default()
}
