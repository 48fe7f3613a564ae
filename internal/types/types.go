package types

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyStatement is one company-month financial record. Numeric fields are
// pointers: a nil field means the figure was absent from the uploaded
// statement, which is different from an explicit zero.
type MonthlyStatement struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Month     string    `json:"month"` // YYYY-MM, unique per company

	// Income statement
	Revenue          *float64 `json:"revenue,omitempty"`
	OperatingExpense *float64 `json:"operating_expense,omitempty"`
	InterestExpense  *float64 `json:"interest_expense,omitempty"`
	TaxExpense       *float64 `json:"tax_expense,omitempty"`
	NetIncome        *float64 `json:"net_income,omitempty"`
	GrossProfit      *float64 `json:"gross_profit,omitempty"`
	CostOfGoodsSold  *float64 `json:"cost_of_goods_sold,omitempty"`
	OperatingIncome  *float64 `json:"operating_income,omitempty"`

	// Balance sheet
	TotalAssets        *float64 `json:"total_assets,omitempty"`
	CurrentAssets      *float64 `json:"current_assets,omitempty"`
	CurrentLiabilities *float64 `json:"current_liabilities,omitempty"`
	Equity             *float64 `json:"equity,omitempty"`
	Cash               *float64 `json:"cash,omitempty"`
	AccountsReceivable *float64 `json:"accounts_receivable,omitempty"`
	AccountsPayable    *float64 `json:"accounts_payable,omitempty"`
	Inventory          *float64 `json:"inventory,omitempty"`
	ShortTermDebt      *float64 `json:"short_term_debt,omitempty"`
	LongTermDebt       *float64 `json:"long_term_debt,omitempty"`

	// Cash flow
	OperatingCashFlow *float64 `json:"operating_cash_flow,omitempty"`

	// Precomputed ratios carried on the row for cheap dashboard reads
	GrossMargin  *float64 `json:"gross_margin,omitempty"`
	NetMargin    *float64 `json:"net_margin,omitempty"`
	CurrentRatio *float64 `json:"current_ratio,omitempty"`
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ComputedMetrics holds the ratios derived from a single statement.
// A nil ratio means its denominator was zero or missing; callers treat
// that as "unknown", never as zero.
type ComputedMetrics struct {
	GrossProfitMargin   *float64 `json:"gross_profit_margin"`
	NetProfitMargin     *float64 `json:"net_profit_margin"`
	OperatingMargin     *float64 `json:"operating_margin"`
	ReturnOnAssets      *float64 `json:"return_on_assets"`
	ReturnOnEquity      *float64 `json:"return_on_equity"`
	CurrentRatio        *float64 `json:"current_ratio"`
	QuickRatio          *float64 `json:"quick_ratio"`
	CashRatio           *float64 `json:"cash_ratio"`
	DebtToEquity        *float64 `json:"debt_to_equity"`
	DebtToAssets        *float64 `json:"debt_to_assets"`
	InterestCoverage    *float64 `json:"interest_coverage_ratio"`
	AssetTurnover       *float64 `json:"asset_turnover"`
	InventoryTurnover   *float64 `json:"inventory_turnover"`
	ReceivablesTurnover *float64 `json:"accounts_receivable_turnover"`
	PayablesTurnover    *float64 `json:"accounts_payable_turnover"`
	WorkingCapital      *float64 `json:"working_capital"`
	CashConversionCycle *float64 `json:"cash_conversion_cycle"`
}

// Scenario selects how a forecast biases growth assumptions.
type Scenario string

const (
	ScenarioBase         Scenario = "Base"
	ScenarioOptimistic   Scenario = "Optimistic"
	ScenarioConservative Scenario = "Conservative"
)

// Valid reports whether s is one of the known scenarios.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioBase, ScenarioOptimistic, ScenarioConservative:
		return true
	}
	return false
}

// RiskLevel bands a 0-100 risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
	RiskNoData   RiskLevel = "No Data"
)

// Float returns a pointer to v. Convenience for building optional fields.
func Float(v float64) *float64 { return &v }

// Value dereferences p, treating nil as 0.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
