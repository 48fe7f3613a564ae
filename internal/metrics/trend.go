package metrics

import (
	"finsight-analytics/internal/stats"
	"finsight-analytics/internal/types"
)

// TrendForecast holds least-squares extrapolations of the core series.
// A nil series means the history never reported that figure.
type TrendForecast struct {
	RevenueForecast  []float64 `json:"revenue_forecast,omitempty"`
	ExpenseForecast  []float64 `json:"expense_forecast,omitempty"`
	CashFlowForecast []float64 `json:"cash_flow_forecast,omitempty"`
	GrowthRate       float64   `json:"growth_rate"`
	ConfidenceLevel  float64   `json:"confidence_level"`
}

// Trend fits a linear trend to the revenue, expense and cash flow series of
// an oldest-first history and extrapolates periods future values. Expenses
// fall back to cost of goods sold when operating expenses were never reported.
// The growth rate compares the first and last projected revenue point.
func Trend(history []types.MonthlyStatement, periods int) TrendForecast {
	f := TrendForecast{ConfidenceLevel: 0.95}
	if periods <= 0 {
		return f
	}

	revenue := series(history, func(st *types.MonthlyStatement) *float64 { return st.Revenue })
	if len(revenue) > 0 {
		f.RevenueForecast = stats.LinearTrend(revenue, periods)
	}

	expenses := series(history, func(st *types.MonthlyStatement) *float64 { return st.OperatingExpense })
	if len(expenses) == 0 {
		expenses = series(history, func(st *types.MonthlyStatement) *float64 { return st.CostOfGoodsSold })
	}
	if len(expenses) > 0 {
		f.ExpenseForecast = stats.LinearTrend(expenses, periods)
	}

	cash := series(history, func(st *types.MonthlyStatement) *float64 { return st.OperatingCashFlow })
	if len(cash) > 0 {
		f.CashFlowForecast = stats.LinearTrend(cash, periods)
	}

	if len(f.RevenueForecast) >= 2 && f.RevenueForecast[0] != 0 {
		f.GrowthRate = (f.RevenueForecast[len(f.RevenueForecast)-1] - f.RevenueForecast[0]) / f.RevenueForecast[0]
	}
	return f
}

// series collects the non-nil values of one field across the history.
func series(history []types.MonthlyStatement, field func(*types.MonthlyStatement) *float64) []float64 {
	var out []float64
	for i := range history {
		if v := field(&history[i]); v != nil {
			out = append(out, *v)
		}
	}
	return out
}
