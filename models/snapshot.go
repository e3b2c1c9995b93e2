package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FundamentalSnapshot represents the fundamental metrics of one company
// at a point in time. Ratio fields are pointers so a missing metric is
// distinguishable from a zero one; margin, growth, and yield figures are
// percentages. Money fields use a zero value when unknown.
type FundamentalSnapshot struct {
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	NetMargin       *float64 `json:"net_margin,omitempty"`
	FCFMargin       *float64 `json:"fcf_margin,omitempty"`
	ROE             *float64 `json:"roe,omitempty"`
	ROA             *float64 `json:"roa,omitempty"`
	RevenueGrowth   *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth  *float64 `json:"earnings_growth,omitempty"`
	DividendYield   *float64 `json:"dividend_yield,omitempty"`
	PERatio         *float64 `json:"pe_ratio,omitempty"`
	ForwardPE       *float64 `json:"forward_pe,omitempty"`
	PEGRatio        *float64 `json:"peg_ratio,omitempty"`
	PriceToBook     *float64 `json:"price_to_book,omitempty"`
	DebtToEquity    *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio    *float64 `json:"current_ratio,omitempty"`
	QuickRatio      *float64 `json:"quick_ratio,omitempty"`
	Beta            *float64 `json:"beta,omitempty"`
	EPS             *float64 `json:"eps,omitempty"`
	BookValue       *float64 `json:"book_value_per_share,omitempty"`

	MarketCap         decimal.Decimal `json:"market_cap"`
	Revenue           decimal.Decimal `json:"revenue"`
	FreeCashFlow      decimal.Decimal `json:"free_cash_flow"`
	TotalCash         decimal.Decimal `json:"total_cash"`
	TotalDebt         decimal.Decimal `json:"total_debt"`
	SharesOutstanding decimal.Decimal `json:"shares_outstanding"`
}

// Metric keys used by scoring tables and weighted aggregations.
const (
	MetricGrossMargin     = "gross_margin"
	MetricOperatingMargin = "operating_margin"
	MetricNetMargin       = "net_margin"
	MetricFCFMargin       = "fcf_margin"
	MetricROE             = "roe"
	MetricROA             = "roa"
	MetricRevenueGrowth   = "revenue_growth"
	MetricEarningsGrowth  = "earnings_growth"
	MetricDividendYield   = "dividend_yield"
	MetricPERatio         = "pe_ratio"
	MetricForwardPE       = "forward_pe"
	MetricPEGRatio        = "peg_ratio"
	MetricPriceToBook     = "price_to_book"
	MetricDebtToEquity    = "debt_to_equity"
	MetricCurrentRatio    = "current_ratio"
	MetricQuickRatio      = "quick_ratio"
	MetricBeta            = "beta"
	MetricEPS             = "eps"
	MetricBookValue       = "book_value_per_share"
)

var ratioFields = map[string]func(*FundamentalSnapshot) *float64{
	MetricGrossMargin:     func(s *FundamentalSnapshot) *float64 { return s.GrossMargin },
	MetricOperatingMargin: func(s *FundamentalSnapshot) *float64 { return s.OperatingMargin },
	MetricNetMargin:       func(s *FundamentalSnapshot) *float64 { return s.NetMargin },
	MetricFCFMargin:       func(s *FundamentalSnapshot) *float64 { return s.FCFMargin },
	MetricROE:             func(s *FundamentalSnapshot) *float64 { return s.ROE },
	MetricROA:             func(s *FundamentalSnapshot) *float64 { return s.ROA },
	MetricRevenueGrowth:   func(s *FundamentalSnapshot) *float64 { return s.RevenueGrowth },
	MetricEarningsGrowth:  func(s *FundamentalSnapshot) *float64 { return s.EarningsGrowth },
	MetricDividendYield:   func(s *FundamentalSnapshot) *float64 { return s.DividendYield },
	MetricPERatio:         func(s *FundamentalSnapshot) *float64 { return s.PERatio },
	MetricForwardPE:       func(s *FundamentalSnapshot) *float64 { return s.ForwardPE },
	MetricPEGRatio:        func(s *FundamentalSnapshot) *float64 { return s.PEGRatio },
	MetricPriceToBook:     func(s *FundamentalSnapshot) *float64 { return s.PriceToBook },
	MetricDebtToEquity:    func(s *FundamentalSnapshot) *float64 { return s.DebtToEquity },
	MetricCurrentRatio:    func(s *FundamentalSnapshot) *float64 { return s.CurrentRatio },
	MetricQuickRatio:      func(s *FundamentalSnapshot) *float64 { return s.QuickRatio },
	MetricBeta:            func(s *FundamentalSnapshot) *float64 { return s.Beta },
	MetricEPS:             func(s *FundamentalSnapshot) *float64 { return s.EPS },
	MetricBookValue:       func(s *FundamentalSnapshot) *float64 { return s.BookValue },
}

// Ratio returns the named ratio metric and whether it is present. A nil
// snapshot has no metrics.
func (s *FundamentalSnapshot) Ratio(key string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	get, ok := ratioFields[key]
	if !ok {
		return 0, false
	}
	p := get(s)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// KnownMetric reports whether key names a snapshot ratio metric.
func KnownMetric(key string) bool {
	_, ok := ratioFields[key]
	return ok
}

// MetricKeys returns all snapshot ratio metric keys in sorted order.
func MetricKeys() []string {
	keys := make([]string, 0, len(ratioFields))
	for k := range ratioFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
