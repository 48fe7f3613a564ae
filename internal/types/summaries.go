package types

import (
	"time"

	"github.com/google/uuid"
)

// HealthSummary is the cached financial-health snapshot for a company.
// Exactly one row exists per company; every recomputation overwrites it.
type HealthSummary struct {
	CompanyID       uuid.UUID              `json:"company_id"`
	HealthScore     *float64               `json:"health_score"`
	HealthCategory  string                 `json:"health_category"`
	Components      HealthComponentScores  `json:"component_scores"`
	Details         HealthComponentDetails `json:"component_details"`
	Recommendations []string               `json:"improvement_recommendations"`
	LastUpdated     time.Time              `json:"last_updated"`
}

// HealthComponentScores are the five weighted sub-scores (0-100 each).
type HealthComponentScores struct {
	Profitability *float64 `json:"profitability"`
	Liquidity     *float64 `json:"liquidity"`
	Leverage      *float64 `json:"leverage"`
	CashFlow      *float64 `json:"cash_flow"`
	Growth        *float64 `json:"growth"`
}

// HealthComponentDetails carries the underlying figures each sub-score
// was derived from, for display next to the score.
type HealthComponentDetails struct {
	NetMargin         *float64 `json:"net_margin"`
	CurrentRatio      *float64 `json:"current_ratio"`
	DebtToEquity      *float64 `json:"debt_to_equity"`
	CashFlowStability *float64 `json:"cash_flow_stability"`
	RevenueGrowthRate *float64 `json:"revenue_growth_rate"`
}

// RiskSummary is the cached risk snapshot for a company.
type RiskSummary struct {
	CompanyID         uuid.UUID     `json:"company_id"`
	OverallRiskScore  *float64      `json:"overall_risk_score"`
	OverallRiskLevel  RiskLevel     `json:"overall_risk_level"`
	Leverage          RiskComponent `json:"leverage"`
	Liquidity         RiskComponent `json:"liquidity"`
	Profitability     RiskComponent `json:"profitability"`
	CashFlow          RiskComponent `json:"cash_flow"`
	MitigationActions []string      `json:"mitigation_actions"`
	LastUpdated       time.Time     `json:"last_updated"`
}

// RiskComponent is one banded risk dimension (0-100, higher = riskier).
type RiskComponent struct {
	Score   *float64             `json:"score"`
	Level   RiskLevel            `json:"level"`
	Details RiskComponentDetails `json:"details"`
}

// RiskComponentDetails holds the metric values behind a risk component.
// Only the fields relevant to the component are populated.
type RiskComponentDetails struct {
	DebtToEquity           *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio           *float64 `json:"current_ratio,omitempty"`
	QuickRatio             *float64 `json:"quick_ratio,omitempty"`
	NetMargin              *float64 `json:"net_margin,omitempty"`
	NetIncome              *float64 `json:"net_income,omitempty"`
	CashFlowStability      *float64 `json:"cash_flow_stability,omitempty"`
	NegativeCashFlowMonths *int     `json:"negative_cash_flow_months,omitempty"`
	TotalMonths            *int     `json:"total_months,omitempty"`
}

// CreditSummary is the cached 0-900 credit evaluation for a company.
type CreditSummary struct {
	CompanyID              uuid.UUID              `json:"company_id"`
	CreditScore            *float64               `json:"credit_score"`
	CreditRating           string                 `json:"credit_rating"`
	Components             CreditComponentScores  `json:"component_scores"`
	RepaymentCapacityRatio *float64               `json:"repayment_capacity_ratio"`
	LoanEligibilityStatus  string                 `json:"loan_eligibility_status"`
	RiskFlags              []string               `json:"risk_flags"`
	Details                CreditComponentDetails `json:"component_details"`
	Recommendations        []string               `json:"improvement_recommendations"`
	LastUpdated            time.Time              `json:"last_updated"`
}

// CreditComponentScores are the five credit sub-scores; profitability,
// liquidity, leverage and cash flow are capped at 200 points, growth at 100.
type CreditComponentScores struct {
	Profitability *float64 `json:"profitability"`
	Liquidity     *float64 `json:"liquidity"`
	Leverage      *float64 `json:"leverage"`
	CashFlow      *float64 `json:"cash_flow"`
	Growth        *float64 `json:"growth"`
}

// CreditComponentDetails exposes the figures behind the credit components.
type CreditComponentDetails struct {
	NetMargin         *float64 `json:"net_margin"`
	CurrentRatio      *float64 `json:"current_ratio"`
	QuickRatio        *float64 `json:"quick_ratio"`
	DebtToEquity      *float64 `json:"debt_to_equity"`
	CashFlowStability *float64 `json:"cash_flow_stability"`
	RevenueGrowthRate *float64 `json:"revenue_growth_rate"`
}

// ForecastResult is the full output of one forecast run.
type ForecastResult struct {
	CompanyID            uuid.UUID    `json:"company_id"`
	ForecastType         Scenario     `json:"forecast_type"`
	MonthsAhead          int          `json:"months_ahead"`
	HistoricalMonthsUsed int          `json:"historical_months_used"`
	Projections          []Projection `json:"projections"`
	RunwayMonths         *float64     `json:"runway_months"`
	ConfidenceScore      *float64     `json:"confidence_score"`
	RevenueGrowthRate    *float64     `json:"revenue_growth_rate"`
	ExpenseGrowthRate    *float64     `json:"expense_growth_rate"`
	CashFlowVolatility   *float64     `json:"cash_flow_volatility"`
}

// Projection is one forecasted month. Rows for a (company, forecast type)
// pair are replaced wholesale on every regeneration.
type Projection struct {
	Month     string  `json:"month"` // YYYY-MM
	Revenue   float64 `json:"revenue"`
	Expenses  float64 `json:"expenses"`
	NetIncome float64 `json:"net_income"`
	CashFlow  float64 `json:"cash_flow"`
}

// BenchmarkEntry is one (industry, metric) quartile row, either stored in
// the benchmark table or taken from the embedded defaults.
type BenchmarkEntry struct {
	Industry       string  `json:"industry_type"`
	MetricName     string  `json:"metric_name"`
	IndustryAvg    float64 `json:"industry_avg"`
	TopQuartile    float64 `json:"top_quartile"`
	BottomQuartile float64 `json:"bottom_quartile"`
	SampleSize     int     `json:"sample_size"`
}

// MetricComparison places one company metric against its industry quartiles.
type MetricComparison struct {
	Value            float64 `json:"value"`
	IndustryAvg      float64 `json:"industry_avg"`
	Percentile       float64 `json:"percentile"`
	Status           string  `json:"status"`
	DeviationPercent float64 `json:"deviation_percent"`
	TopQuartile      float64 `json:"top_quartile"`
	BottomQuartile   float64 `json:"bottom_quartile"`
}

// OverallStanding summarizes a benchmark comparison across all metrics.
type OverallStanding struct {
	OverallPercentile float64 `json:"overall_percentile"`
	MetricsAboveAvg   int     `json:"metrics_above_avg"`
	TotalMetrics      int     `json:"total_metrics"`
	SummaryText       string  `json:"summary_text"`
}

// BenchmarkSummary is the cached industry-comparison snapshot for a company.
type BenchmarkSummary struct {
	CompanyID           uuid.UUID                   `json:"company_id"`
	IndustryType        string                      `json:"industry_type"`
	IndustryDescription string                      `json:"industry_description"`
	CompanyMetrics      map[string]float64          `json:"company_metrics"`
	Results             map[string]MetricComparison `json:"benchmark_results"`
	Overall             OverallStanding             `json:"overall_summary"`
	LastUpdated         time.Time                   `json:"last_updated"`
}
