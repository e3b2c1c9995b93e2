package valuation

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"equity-analytics/config"
	"equity-analytics/models"
)

// ErrNotApplicable reports that a valuation model cannot price the
// company from the data at hand.
var ErrNotApplicable = errors.New("valuation model not applicable")

// Method names attached to estimates.
const (
	MethodDCF = "dcf"
	MethodPE  = "pe"
	MethodPB  = "pb"
)

// DCF values the company by projecting free cash flow at the revenue
// growth rate, capped at the configured maximum, and discounting at the
// weighted average cost of capital. Companies without positive free
// cash flow or a share count are not applicable, as are those whose
// WACC does not clear the terminal growth rate.
func DCF(snapshot *models.FundamentalSnapshot, cfg config.ValuationConfig) (*models.ValuationEstimate, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("dcf needs a fundamental snapshot: %w", ErrNotApplicable)
	}
	shares := snapshot.SharesOutstanding
	if !shares.IsPositive() {
		return nil, fmt.Errorf("dcf needs shares outstanding: %w", ErrNotApplicable)
	}
	if !snapshot.FreeCashFlow.IsPositive() {
		return nil, fmt.Errorf("dcf needs positive free cash flow: %w", ErrNotApplicable)
	}

	var revenueGrowth float64
	if snapshot.RevenueGrowth != nil {
		revenueGrowth = *snapshot.RevenueGrowth / 100
	}
	growth := math.Min(revenueGrowth, cfg.MaxFCFGrowth)

	beta := 1.0
	if snapshot.Beta != nil {
		beta = *snapshot.Beta
	}
	costOfEquity := cfg.RiskFreeRate + beta*(cfg.MarketReturn-cfg.RiskFreeRate)

	var debtToEquity float64
	if snapshot.DebtToEquity != nil {
		debtToEquity = *snapshot.DebtToEquity
	}
	wacc := costOfEquity
	if debtToEquity > 0 {
		equityWeight := 1 / (1 + debtToEquity)
		debtWeight := debtToEquity / (1 + debtToEquity)
		wacc = costOfEquity*equityWeight + cfg.CostOfDebt*debtWeight*(1-cfg.TaxRate)
	}
	if wacc <= cfg.TerminalGrowth {
		return nil, fmt.Errorf("wacc %.4f does not clear the terminal growth rate: %w", wacc, ErrNotApplicable)
	}

	growthFactor := decimal.NewFromFloat(1 + growth)
	enterprise := decimal.Zero
	projected := snapshot.FreeCashFlow
	for year := 1; year <= cfg.ProjectionYears; year++ {
		projected = projected.Mul(growthFactor)
		discount := decimal.NewFromFloat(math.Pow(1+wacc, float64(year)))
		enterprise = enterprise.Add(projected.Div(discount))
	}
	terminal := projected.Mul(decimal.NewFromFloat(1 + cfg.TerminalGrowth)).
		Div(decimal.NewFromFloat(wacc - cfg.TerminalGrowth))
	horizon := decimal.NewFromFloat(math.Pow(1+wacc, float64(cfg.ProjectionYears)))
	enterprise = enterprise.Add(terminal.Div(horizon))

	equity := enterprise.Sub(snapshot.TotalDebt).Add(snapshot.TotalCash)
	return &models.ValuationEstimate{
		Method:         MethodDCF,
		IntrinsicValue: equity.Div(shares).Round(2),
		Assumptions: map[string]float64{
			"fcf_growth":      growth,
			"wacc":            wacc,
			"terminal_growth": cfg.TerminalGrowth,
			"beta":            beta,
		},
	}, nil
}

// PEMultiple prices the company at the configured fair earnings
// multiple. Companies without positive earnings per share are not
// applicable.
func PEMultiple(snapshot *models.FundamentalSnapshot, cfg config.ValuationConfig) (*models.ValuationEstimate, error) {
	if snapshot == nil || snapshot.EPS == nil || *snapshot.EPS <= 0 {
		return nil, fmt.Errorf("pe multiple needs positive earnings per share: %w", ErrNotApplicable)
	}

	eps := *snapshot.EPS
	assumptions := map[string]float64{
		"fair_pe": cfg.FairPE,
		"eps":     eps,
	}
	if snapshot.ForwardPE != nil && *snapshot.ForwardPE > 0 {
		assumptions["target_pe"] = *snapshot.ForwardPE
	} else if snapshot.PERatio != nil && *snapshot.PERatio > 0 {
		assumptions["target_pe"] = *snapshot.PERatio
	}

	return &models.ValuationEstimate{
		Method:         MethodPE,
		IntrinsicValue: decimal.NewFromFloat(eps * cfg.FairPE).Round(2),
		Assumptions:    assumptions,
	}, nil
}

// PBMultiple prices the company at the configured industry book
// multiple. Companies without positive book value per share are not
// applicable.
func PBMultiple(snapshot *models.FundamentalSnapshot, cfg config.ValuationConfig) (*models.ValuationEstimate, error) {
	if snapshot == nil || snapshot.BookValue == nil || *snapshot.BookValue <= 0 {
		return nil, fmt.Errorf("pb multiple needs positive book value per share: %w", ErrNotApplicable)
	}

	bookValue := *snapshot.BookValue
	return &models.ValuationEstimate{
		Method:         MethodPB,
		IntrinsicValue: decimal.NewFromFloat(bookValue * cfg.IndustryPB).Round(2),
		Assumptions: map[string]float64{
			"book_value":  bookValue,
			"industry_pb": cfg.IndustryPB,
		},
	}, nil
}

// Comprehensive runs every valuation model, skips the ones that do not
// apply, and averages the positive estimates into an assessment of the
// current price. It fails with ErrNotApplicable when no model yields a
// positive intrinsic value.
func Comprehensive(ticker string, price decimal.Decimal, snapshot *models.FundamentalSnapshot, cfg config.ValuationConfig) (*models.ValuationSummary, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("current price must be positive, got %s", price)
	}

	summary := &models.ValuationSummary{
		Ticker:       ticker,
		CurrentPrice: price,
	}

	runs := []func(*models.FundamentalSnapshot, config.ValuationConfig) (*models.ValuationEstimate, error){
		DCF,
		PEMultiple,
		PBMultiple,
	}
	total := decimal.Zero
	count := 0
	for _, run := range runs {
		est, err := run(snapshot, cfg)
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		summary.Estimates = append(summary.Estimates, *est)
		if est.IntrinsicValue.IsPositive() {
			total = total.Add(est.IntrinsicValue)
			count++
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("no valuation model applies to %s: %w", ticker, ErrNotApplicable)
	}

	avg := total.Div(decimal.NewFromInt(int64(count))).Round(2)
	summary.AverageIntrinsic = avg
	summary.DiscountPct = avg.Sub(price).Div(price).InexactFloat64() * 100
	summary.Assessment = assessmentFor(summary.DiscountPct)
	return summary, nil
}

func assessmentFor(discountPct float64) string {
	switch {
	case discountPct > 20:
		return "Significantly Undervalued"
	case discountPct > 10:
		return "Undervalued"
	case discountPct > -10:
		return "Fairly Valued"
	case discountPct > -20:
		return "Overvalued"
	default:
		return "Significantly Overvalued"
	}
}
