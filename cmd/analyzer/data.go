package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"equity-analytics/models"
)

// loadPriceSeries reads a price fixture: either a full series object or
// a bare bar array, which is attributed to ticker.
func loadPriceSeries(path, ticker string) (*models.PriceSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prices: %w", err)
	}

	var series models.PriceSeries
	if err := json.Unmarshal(data, &series); err == nil && len(series.Bars) > 0 {
		if series.Ticker == "" {
			series.Ticker = ticker
		}
		return &series, nil
	}

	var bars []models.PriceBar
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, fmt.Errorf("parse prices %s: %w", path, err)
	}
	return &models.PriceSeries{Ticker: ticker, Bars: bars}, nil
}

// loadSnapshot reads a fundamental snapshot fixture.
func loadSnapshot(path string) (*models.FundamentalSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fundamentals: %w", err)
	}
	var snapshot models.FundamentalSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse fundamentals %s: %w", path, err)
	}
	return &snapshot, nil
}

// syntheticSeries generates a seeded geometric random walk over weekday
// bars starting January 2024, so the pipeline can run offline with
// reproducible data.
func syntheticSeries(ticker string, days int, seed int64) *models.PriceSeries {
	rng := rand.New(rand.NewSource(seed))
	bars := make([]models.PriceBar, 0, days)

	price := 50 + rng.Float64()*150
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for len(bars) < days {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		open := price
		price *= 1 + 0.0003 + rng.NormFloat64()*0.015
		high := math.Max(open, price) * (1 + rng.Float64()*0.005)
		low := math.Min(open, price) * (1 - rng.Float64()*0.005)

		bars = append(bars, models.PriceBar{
			Date:   date,
			Open:   decimal.NewFromFloat(open).Round(2),
			High:   decimal.NewFromFloat(high).Round(2),
			Low:    decimal.NewFromFloat(low).Round(2),
			Close:  decimal.NewFromFloat(price).Round(2),
			Volume: 1_000_000 + rng.Int63n(9_000_000),
		})
	}
	return &models.PriceSeries{Ticker: ticker, Bars: bars}
}

// syntheticSnapshot derives a plausible fundamental snapshot from seed.
func syntheticSnapshot(seed int64) *models.FundamentalSnapshot {
	rng := rand.New(rand.NewSource(seed + 1))
	f := func(lo, hi float64) *float64 {
		v := lo + rng.Float64()*(hi-lo)
		return &v
	}
	return &models.FundamentalSnapshot{
		GrossMargin:     f(25, 70),
		OperatingMargin: f(5, 35),
		NetMargin:       f(2, 30),
		FCFMargin:       f(2, 25),
		ROE:             f(4, 30),
		ROA:             f(2, 18),
		RevenueGrowth:   f(-5, 30),
		EarningsGrowth:  f(-10, 35),
		DividendYield:   f(0, 3),
		PERatio:         f(8, 40),
		ForwardPE:       f(8, 35),
		PEGRatio:        f(0.5, 3),
		PriceToBook:     f(1, 10),
		DebtToEquity:    f(0.1, 2),
		CurrentRatio:    f(0.8, 3),
		QuickRatio:      f(0.5, 2.5),
		Beta:            f(0.6, 1.8),
		EPS:             f(1, 12),
		BookValue:       f(5, 80),
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func writeJSON(path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
