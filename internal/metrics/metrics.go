// Package metrics derives financial ratios from a single monthly statement.
// Every ratio is null-guarded: a zero or missing denominator produces a nil
// ratio, never a panic, and downstream scorers treat nil as "unknown".
package metrics

import (
	"finsight-analytics/internal/types"
)

const daysPerYear = 365

// Calculate computes the full ratio set for one statement.
func Calculate(st *types.MonthlyStatement) *types.ComputedMetrics {
	m := &types.ComputedMetrics{}

	// Profitability
	m.GrossProfitMargin = div(st.GrossProfit, st.Revenue)
	m.NetProfitMargin = div(st.NetIncome, st.Revenue)
	m.OperatingMargin = div(st.OperatingIncome, st.Revenue)
	m.ReturnOnAssets = div(st.NetIncome, st.TotalAssets)
	m.ReturnOnEquity = div(st.NetIncome, st.Equity)

	// Liquidity
	m.CurrentRatio = overDenominator(st.CurrentAssets, st.CurrentLiabilities)
	m.QuickRatio = quickRatio(st)
	m.CashRatio = div(st.Cash, st.CurrentLiabilities)

	// Leverage
	totalDebt := sum(st.ShortTermDebt, st.LongTermDebt)
	m.DebtToEquity = div(totalDebt, st.Equity)
	m.DebtToAssets = div(totalDebt, st.TotalAssets)
	m.InterestCoverage = div(st.OperatingIncome, st.InterestExpense)

	// Efficiency
	m.AssetTurnover = div(st.Revenue, st.TotalAssets)
	m.InventoryTurnover = div(st.CostOfGoodsSold, st.Inventory)
	m.ReceivablesTurnover = div(st.Revenue, st.AccountsReceivable)
	m.PayablesTurnover = div(st.CostOfGoodsSold, st.AccountsPayable)

	// Working capital
	m.WorkingCapital = workingCapital(st)
	m.CashConversionCycle = cashConversionCycle(m)

	return m
}

// quickRatio is (current assets - inventory) / current liabilities. When
// inventory is unknown it falls back to the plain current ratio; that is an
// approximation inherited from the source data model, not an equivalence.
func quickRatio(st *types.MonthlyStatement) *float64 {
	if st.CurrentAssets == nil || *st.CurrentAssets == 0 ||
		st.CurrentLiabilities == nil || *st.CurrentLiabilities == 0 {
		return nil
	}
	if st.Inventory != nil {
		v := (*st.CurrentAssets - *st.Inventory) / *st.CurrentLiabilities
		return &v
	}
	v := *st.CurrentAssets / *st.CurrentLiabilities
	return &v
}

func workingCapital(st *types.MonthlyStatement) *float64 {
	if st.CurrentAssets == nil || *st.CurrentAssets == 0 ||
		st.CurrentLiabilities == nil || *st.CurrentLiabilities == 0 {
		return nil
	}
	v := *st.CurrentAssets - *st.CurrentLiabilities
	return &v
}

// cashConversionCycle is DIO + DSO - DPO, nil when any of the three
// turnover-derived day counts is unavailable.
func cashConversionCycle(m *types.ComputedMetrics) *float64 {
	if m.InventoryTurnover == nil || m.ReceivablesTurnover == nil || m.PayablesTurnover == nil {
		return nil
	}
	dio := daysPerYear / *m.InventoryTurnover
	dso := daysPerYear / *m.ReceivablesTurnover
	dpo := daysPerYear / *m.PayablesTurnover
	v := dio + dso - dpo
	return &v
}

// div divides num by den, returning nil when either side is missing or zero.
// Zero numerators are treated as missing to match the ingestion layer, which
// cannot distinguish "not reported" from an explicit zero.
func div(num, den *float64) *float64 {
	if num == nil || den == nil || *num == 0 || *den == 0 {
		return nil
	}
	v := *num / *den
	return &v
}

// overDenominator divides with only the denominator guarded; a missing
// numerator counts as zero. Used for the current ratio, where zero current
// assets is a legitimate (terrible) value.
func overDenominator(num, den *float64) *float64 {
	if den == nil || *den == 0 {
		return nil
	}
	v := types.Value(num) / *den
	return &v
}

// sum adds optional values, returning nil only when the total is zero.
func sum(vals ...*float64) *float64 {
	total := 0.0
	for _, v := range vals {
		total += types.Value(v)
	}
	if total == 0 {
		return nil
	}
	return &total
}
