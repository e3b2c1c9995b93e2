package valuation

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"equity-analytics/config"
	"equity-analytics/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func dcfSnapshot() *models.FundamentalSnapshot {
	return &models.FundamentalSnapshot{
		RevenueGrowth:     floatPtr(10),
		Beta:              floatPtr(1.0),
		FreeCashFlow:      decimal.NewFromInt(1000),
		TotalCash:         decimal.NewFromInt(200),
		TotalDebt:         decimal.NewFromInt(500),
		SharesOutstanding: decimal.NewFromInt(100),
	}
}

func TestDCF(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	est, err := DCF(dcfSnapshot(), cfg)
	if err != nil {
		t.Fatalf("DCF returned error: %v", err)
	}

	if est.Method != MethodDCF {
		t.Errorf("expected method %s, got %s", MethodDCF, est.Method)
	}

	// With growth and WACC both at 10% every projected year discounts
	// back to the base cash flow, and the terminal value's growth
	// factors cancel: 5*1000 + 1000*1.03/0.07 = 19714.29 enterprise,
	// minus net debt 300, over 100 shares.
	want := decimal.RequireFromString("194.14")
	if !est.IntrinsicValue.Equal(want) {
		t.Errorf("intrinsic value = %s, want %s", est.IntrinsicValue, want)
	}

	if math.Abs(est.Assumptions["wacc"]-0.10) > 1e-12 {
		t.Errorf("wacc = %v, want 0.10", est.Assumptions["wacc"])
	}
	if math.Abs(est.Assumptions["fcf_growth"]-0.10) > 1e-12 {
		t.Errorf("fcf_growth = %v, want 0.10", est.Assumptions["fcf_growth"])
	}
	if est.Assumptions["beta"] != 1.0 {
		t.Errorf("beta = %v, want 1.0", est.Assumptions["beta"])
	}
}

func TestDCF_GrowthCap(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	snapshot := dcfSnapshot()
	snapshot.RevenueGrowth = floatPtr(40)

	est, err := DCF(snapshot, cfg)
	if err != nil {
		t.Fatalf("DCF returned error: %v", err)
	}
	if est.Assumptions["fcf_growth"] != cfg.MaxFCFGrowth {
		t.Errorf("growth should cap at %v, got %v", cfg.MaxFCFGrowth, est.Assumptions["fcf_growth"])
	}
}

func TestDCF_LeveredWACC(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	snapshot := dcfSnapshot()
	snapshot.DebtToEquity = floatPtr(1.0)

	est, err := DCF(snapshot, cfg)
	if err != nil {
		t.Fatalf("DCF returned error: %v", err)
	}
	// Equal weights: 0.10*0.5 + 0.05*0.5*(1-0.21) = 0.06975
	if math.Abs(est.Assumptions["wacc"]-0.06975) > 1e-12 {
		t.Errorf("wacc = %v, want 0.06975", est.Assumptions["wacc"])
	}
	if !est.IntrinsicValue.IsPositive() {
		t.Errorf("expected a positive intrinsic value, got %s", est.IntrinsicValue)
	}
}

func TestDCF_NotApplicable(t *testing.T) {
	cfg := config.NewTestConfig().Valuation

	lowBeta := dcfSnapshot()
	lowBeta.Beta = floatPtr(-0.5) // cost of equity falls below terminal growth

	noShares := dcfSnapshot()
	noShares.SharesOutstanding = decimal.Zero

	noFCF := dcfSnapshot()
	noFCF.FreeCashFlow = decimal.NewFromInt(-50)

	tests := []struct {
		name     string
		snapshot *models.FundamentalSnapshot
	}{
		{"nil snapshot", nil},
		{"no shares outstanding", noShares},
		{"negative free cash flow", noFCF},
		{"wacc below terminal growth", lowBeta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DCF(tt.snapshot, cfg); !errors.Is(err, ErrNotApplicable) {
				t.Errorf("expected ErrNotApplicable, got %v", err)
			}
		})
	}
}

func TestPEMultiple(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	snapshot := &models.FundamentalSnapshot{
		EPS:       floatPtr(5),
		ForwardPE: floatPtr(22),
	}

	est, err := PEMultiple(snapshot, cfg)
	if err != nil {
		t.Fatalf("PEMultiple returned error: %v", err)
	}
	if !est.IntrinsicValue.Equal(decimal.NewFromInt(90)) {
		t.Errorf("intrinsic value = %s, want 90 at a fair P/E of 18", est.IntrinsicValue)
	}
	if est.Assumptions["target_pe"] != 22 {
		t.Errorf("target_pe = %v, want the forward P/E", est.Assumptions["target_pe"])
	}
}

func TestPEMultiple_TrailingFallback(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	snapshot := &models.FundamentalSnapshot{
		EPS:     floatPtr(5),
		PERatio: floatPtr(25),
	}

	est, err := PEMultiple(snapshot, cfg)
	if err != nil {
		t.Fatalf("PEMultiple returned error: %v", err)
	}
	if est.Assumptions["target_pe"] != 25 {
		t.Errorf("target_pe = %v, want the trailing P/E", est.Assumptions["target_pe"])
	}
}

func TestPEMultiple_NotApplicable(t *testing.T) {
	cfg := config.NewTestConfig().Valuation

	if _, err := PEMultiple(nil, cfg); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("nil snapshot: expected ErrNotApplicable, got %v", err)
	}
	if _, err := PEMultiple(&models.FundamentalSnapshot{}, cfg); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("missing EPS: expected ErrNotApplicable, got %v", err)
	}
	if _, err := PEMultiple(&models.FundamentalSnapshot{EPS: floatPtr(-2)}, cfg); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("negative EPS: expected ErrNotApplicable, got %v", err)
	}
}

func TestPBMultiple(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	snapshot := &models.FundamentalSnapshot{BookValue: floatPtr(30)}

	est, err := PBMultiple(snapshot, cfg)
	if err != nil {
		t.Fatalf("PBMultiple returned error: %v", err)
	}
	if !est.IntrinsicValue.Equal(decimal.NewFromInt(60)) {
		t.Errorf("intrinsic value = %s, want 60 at an industry P/B of 2", est.IntrinsicValue)
	}
}

func TestPBMultiple_NotApplicable(t *testing.T) {
	cfg := config.NewTestConfig().Valuation

	if _, err := PBMultiple(&models.FundamentalSnapshot{}, cfg); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("missing book value: expected ErrNotApplicable, got %v", err)
	}
	if _, err := PBMultiple(&models.FundamentalSnapshot{BookValue: floatPtr(-3)}, cfg); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("negative book value: expected ErrNotApplicable, got %v", err)
	}
}

func TestComprehensive(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	snapshot := dcfSnapshot()
	snapshot.EPS = floatPtr(5)
	snapshot.BookValue = floatPtr(30)

	summary, err := Comprehensive("AAPL", decimal.NewFromInt(100), snapshot, cfg)
	if err != nil {
		t.Fatalf("Comprehensive returned error: %v", err)
	}

	if summary.Ticker != "AAPL" {
		t.Errorf("expected Ticker=AAPL, got %s", summary.Ticker)
	}
	if len(summary.Estimates) != 3 {
		t.Fatalf("expected 3 estimates, got %d", len(summary.Estimates))
	}

	// (194.14 + 90 + 60) / 3
	want := decimal.RequireFromString("114.71")
	if !summary.AverageIntrinsic.Equal(want) {
		t.Errorf("average intrinsic = %s, want %s", summary.AverageIntrinsic, want)
	}
	if math.Abs(summary.DiscountPct-14.71) > 1e-9 {
		t.Errorf("discount = %v, want 14.71", summary.DiscountPct)
	}
	if summary.Assessment != "Undervalued" {
		t.Errorf("assessment = %s, want Undervalued", summary.Assessment)
	}
}

func TestComprehensive_PartialMethods(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	snapshot := &models.FundamentalSnapshot{EPS: floatPtr(5)}

	summary, err := Comprehensive("AAPL", decimal.NewFromInt(100), snapshot, cfg)
	if err != nil {
		t.Fatalf("Comprehensive returned error: %v", err)
	}
	if len(summary.Estimates) != 1 || summary.Estimates[0].Method != MethodPE {
		t.Fatalf("expected only the P/E estimate, got %+v", summary.Estimates)
	}
	if summary.Assessment != "Overvalued" {
		t.Errorf("assessment = %s, want Overvalued at a 10%% premium", summary.Assessment)
	}
}

func TestComprehensive_NoneApply(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	_, err := Comprehensive("AAPL", decimal.NewFromInt(100), &models.FundamentalSnapshot{}, cfg)
	if !errors.Is(err, ErrNotApplicable) {
		t.Errorf("expected ErrNotApplicable, got %v", err)
	}
}

func TestComprehensive_BadPrice(t *testing.T) {
	cfg := config.NewTestConfig().Valuation
	_, err := Comprehensive("AAPL", decimal.Zero, dcfSnapshot(), cfg)
	if err == nil {
		t.Fatal("expected an error for a non positive price")
	}
	if errors.Is(err, ErrNotApplicable) {
		t.Error("a bad price is not a model applicability condition")
	}
}

func TestAssessmentBands(t *testing.T) {
	tests := []struct {
		discount float64
		want     string
	}{
		{25, "Significantly Undervalued"},
		{20, "Undervalued"},
		{15, "Undervalued"},
		{10, "Fairly Valued"},
		{0, "Fairly Valued"},
		{-10, "Overvalued"},
		{-15, "Overvalued"},
		{-20, "Significantly Overvalued"},
		{-25, "Significantly Overvalued"},
	}
	for _, tt := range tests {
		if got := assessmentFor(tt.discount); got != tt.want {
			t.Errorf("assessmentFor(%v) = %s, want %s", tt.discount, got, tt.want)
		}
	}
}
