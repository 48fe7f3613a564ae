package metrics

import (
	"math"
	"testing"

	"finsight-analytics/internal/types"
)

func f(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateFullStatement(t *testing.T) {
	st := &types.MonthlyStatement{
		Revenue:            f(100000),
		NetIncome:          f(12000),
		GrossProfit:        f(40000),
		OperatingIncome:    f(15000),
		CostOfGoodsSold:    f(60000),
		InterestExpense:    f(3000),
		TotalAssets:        f(500000),
		CurrentAssets:      f(200000),
		CurrentLiabilities: f(100000),
		Equity:             f(250000),
		Cash:               f(50000),
		Inventory:          f(40000),
		AccountsReceivable: f(30000),
		AccountsPayable:    f(20000),
		ShortTermDebt:      f(50000),
		LongTermDebt:       f(100000),
	}

	m := Calculate(st)

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"gross profit margin", m.GrossProfitMargin, 0.4},
		{"net profit margin", m.NetProfitMargin, 0.12},
		{"operating margin", m.OperatingMargin, 0.15},
		{"return on assets", m.ReturnOnAssets, 0.024},
		{"return on equity", m.ReturnOnEquity, 0.048},
		{"current ratio", m.CurrentRatio, 2.0},
		{"quick ratio", m.QuickRatio, 1.6},
		{"cash ratio", m.CashRatio, 0.5},
		{"debt to equity", m.DebtToEquity, 0.6},
		{"debt to assets", m.DebtToAssets, 0.3},
		{"interest coverage", m.InterestCoverage, 5.0},
		{"asset turnover", m.AssetTurnover, 0.2},
		{"inventory turnover", m.InventoryTurnover, 1.5},
		{"receivables turnover", m.ReceivablesTurnover, 100000.0 / 30000.0},
		{"payables turnover", m.PayablesTurnover, 3.0},
		{"working capital", m.WorkingCapital, 100000},
	}
	for _, c := range checks {
		if c.got == nil {
			t.Errorf("%s: expected %v, got nil", c.name, c.want)
			continue
		}
		if !almostEqual(*c.got, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, *c.got)
		}
	}

	// CCC = 365/1.5 + 365/(10/3) - 365/3
	wantCCC := 365.0/1.5 + 365.0/(100000.0/30000.0) - 365.0/3.0
	if m.CashConversionCycle == nil || !almostEqual(*m.CashConversionCycle, wantCCC) {
		t.Errorf("cash conversion cycle: expected %v, got %v", wantCCC, m.CashConversionCycle)
	}
}

func TestCalculateZeroDenominators(t *testing.T) {
	st := &types.MonthlyStatement{
		Revenue:   f(0),
		NetIncome: f(5000),
		Equity:    f(0),
	}
	m := Calculate(st)
	if m.NetProfitMargin != nil {
		t.Errorf("Expected nil net margin on zero revenue, got %v", *m.NetProfitMargin)
	}
	if m.ReturnOnEquity != nil {
		t.Errorf("Expected nil ROE on zero equity, got %v", *m.ReturnOnEquity)
	}
	if m.CurrentRatio != nil {
		t.Errorf("Expected nil current ratio on missing liabilities, got %v", *m.CurrentRatio)
	}
}

func TestCurrentRatioOnlyGuardsDenominator(t *testing.T) {
	// Zero current assets is a real (bad) value, not a missing one.
	st := &types.MonthlyStatement{
		CurrentAssets:      f(0),
		CurrentLiabilities: f(50000),
	}
	m := Calculate(st)
	if m.CurrentRatio == nil || *m.CurrentRatio != 0 {
		t.Errorf("Expected current ratio 0, got %v", m.CurrentRatio)
	}
}

func TestQuickRatioFallsBackWithoutInventory(t *testing.T) {
	st := &types.MonthlyStatement{
		CurrentAssets:      f(150000),
		CurrentLiabilities: f(100000),
	}
	m := Calculate(st)
	if m.QuickRatio == nil || !almostEqual(*m.QuickRatio, 1.5) {
		t.Errorf("Expected quick ratio 1.5 without inventory, got %v", m.QuickRatio)
	}
}

func TestDebtToEquityNilWithoutDebt(t *testing.T) {
	st := &types.MonthlyStatement{Equity: f(250000)}
	m := Calculate(st)
	if m.DebtToEquity != nil {
		t.Errorf("Expected nil debt-to-equity with no debt, got %v", *m.DebtToEquity)
	}
}

func TestGradeStrongCompany(t *testing.T) {
	m := &types.ComputedMetrics{
		GrossProfitMargin: f(0.45),
		NetProfitMargin:   f(0.18),
		CurrentRatio:      f(2.5),
		QuickRatio:        f(1.8),
		DebtToEquity:      f(0.4),
		InterestCoverage:  f(6.0),
		CashRatio:         f(0.6),
		WorkingCapital:    f(120000),
	}
	g := Grade(m, "Services")
	// 100*.30 + 100*.20 + 100*.20 + 100*.15 + 85*.10 + 85*.05
	want := 30.0 + 20 + 20 + 15 + 8.5 + 4.25
	if !almostEqual(g.CreditScore, want) {
		t.Errorf("Expected credit score %v, got %v", want, g.CreditScore)
	}
	if g.CreditGrade != "A+" {
		t.Errorf("Expected grade A+, got %s", g.CreditGrade)
	}
}

func TestGradeNoData(t *testing.T) {
	g := Grade(&types.ComputedMetrics{}, "Unknown Industry")
	// All components sit at their base of 50, tax at 85, industry default 70.
	want := 50*0.30 + 50*0.20 + 50*0.20 + 50*0.15 + 85*0.10 + 70*0.05
	if !almostEqual(g.CreditScore, want) {
		t.Errorf("Expected credit score %v, got %v", want, g.CreditScore)
	}
	if g.CreditGrade != "C" {
		t.Errorf("Expected grade C, got %s", g.CreditGrade)
	}
}
