package metrics

import (
	"testing"

	"finsight-analytics/internal/types"
)

func TestTrendLinearSeries(t *testing.T) {
	// Revenue climbs 10000 a month; a perfect linear fit continues it.
	history := []types.MonthlyStatement{
		{Revenue: f(100000), OperatingExpense: f(50000), OperatingCashFlow: f(20000)},
		{Revenue: f(110000), OperatingExpense: f(50000), OperatingCashFlow: f(20000)},
		{Revenue: f(120000), OperatingExpense: f(50000), OperatingCashFlow: f(20000)},
	}

	fc := Trend(history, 3)

	wantRevenue := []float64{130000, 140000, 150000}
	if len(fc.RevenueForecast) != 3 {
		t.Fatalf("Expected 3 revenue points, got %d", len(fc.RevenueForecast))
	}
	for i, want := range wantRevenue {
		if !almostEqual(fc.RevenueForecast[i], want) {
			t.Errorf("Expected revenue[%d] %.0f, got %.4f", i, want, fc.RevenueForecast[i])
		}
	}
	for i, got := range fc.ExpenseForecast {
		if !almostEqual(got, 50000) {
			t.Errorf("Expected flat expense 50000, got %.4f at %d", got, i)
		}
	}

	// (150000 - 130000) / 130000
	if !almostEqual(fc.GrowthRate, 20000.0/130000.0) {
		t.Errorf("Expected growth rate %.6f, got %.6f", 20000.0/130000.0, fc.GrowthRate)
	}
	if fc.ConfidenceLevel != 0.95 {
		t.Errorf("Expected confidence level 0.95, got %v", fc.ConfidenceLevel)
	}
}

func TestTrendExpenseFallbackToCOGS(t *testing.T) {
	history := []types.MonthlyStatement{
		{Revenue: f(100000), CostOfGoodsSold: f(60000)},
		{Revenue: f(100000), CostOfGoodsSold: f(62000)},
	}

	fc := Trend(history, 2)

	if len(fc.ExpenseForecast) != 2 {
		t.Fatalf("Expected COGS-based expense forecast, got %d points", len(fc.ExpenseForecast))
	}
	if !almostEqual(fc.ExpenseForecast[0], 64000) {
		t.Errorf("Expected first expense point 64000, got %.4f", fc.ExpenseForecast[0])
	}
	if fc.CashFlowForecast != nil {
		t.Errorf("Expected no cash flow forecast without cash flow data, got %v", fc.CashFlowForecast)
	}
}

func TestTrendEmptyHistory(t *testing.T) {
	fc := Trend(nil, 6)

	if fc.RevenueForecast != nil || fc.ExpenseForecast != nil || fc.CashFlowForecast != nil {
		t.Errorf("Expected no forecasts for empty history, got %+v", fc)
	}
	if fc.GrowthRate != 0 {
		t.Errorf("Expected zero growth rate, got %v", fc.GrowthRate)
	}
}

func TestTrendSingleMonthRepeatsValue(t *testing.T) {
	history := []types.MonthlyStatement{{Revenue: f(80000)}}

	fc := Trend(history, 3)

	for i, got := range fc.RevenueForecast {
		if got != 80000 {
			t.Errorf("Expected repeated 80000 at %d, got %v", i, got)
		}
	}
	if fc.GrowthRate != 0 {
		t.Errorf("Expected zero growth rate for flat repeat, got %v", fc.GrowthRate)
	}
}
