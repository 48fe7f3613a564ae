// Package credit implements the 0-900 credit evaluation. Profitability,
// liquidity, leverage and cash flow contribute up to 200 points each and
// growth up to 100; the total maps onto AAA..High Risk rating bands and,
// together with repayment capacity, a loan eligibility status.
package credit

import (
	"math"
	"time"

	"github.com/google/uuid"

	"finsight-analytics/internal/stats"
	"finsight-analytics/internal/types"
)

// Rating and eligibility sentinels for companies without enough history.
const (
	RatingNoData      = "No Data"
	EligibilityNoData = "No Data"
)

// Annual debt service is estimated as this fraction of current liabilities.
const debtServiceRate = 0.10

// Scorer computes credit summaries. Stateless and safe for concurrent use.
type Scorer struct{}

func NewScorer() *Scorer { return &Scorer{} }

// Score evaluates a company's history, oldest month first. The risk summary
// is optional; when present its leverage level nudges the leverage
// component. Fewer than two months yields the no-data sentinel.
func (s *Scorer) Score(companyID uuid.UUID, history []types.MonthlyStatement, risk *types.RiskSummary) types.CreditSummary {
	if len(history) < 2 {
		return types.CreditSummary{
			CompanyID:             companyID,
			CreditRating:          RatingNoData,
			LoanEligibilityStatus: EligibilityNoData,
			RiskFlags:             []string{},
			Recommendations:       []string{},
			LastUpdated:           time.Now().UTC(),
		}
	}

	latest := history[len(history)-1]

	profitability := profitabilityScore(latest, history)
	liquidity := liquidityScore(latest)
	leverage := leverageScore(latest, risk)
	cashFlow := cashFlowScore(history)
	growth := growthScore(history)

	total := profitability + liquidity + leverage + cashFlow + growth
	repayment := repaymentCapacity(latest)
	flags := riskFlags(profitability, liquidity, leverage, cashFlow, growth, latest)

	cashFlows := make([]float64, len(history))
	revenues := make([]float64, len(history))
	for i, st := range history {
		cashFlows[i] = types.Value(st.OperatingCashFlow)
		revenues[i] = types.Value(st.Revenue)
	}

	return types.CreditSummary{
		CompanyID:    companyID,
		CreditScore:  types.Float(round2(total)),
		CreditRating: rating(total),
		Components: types.CreditComponentScores{
			Profitability: types.Float(round2(profitability)),
			Liquidity:     types.Float(round2(liquidity)),
			Leverage:      types.Float(round2(leverage)),
			CashFlow:      types.Float(round2(cashFlow)),
			Growth:        types.Float(round2(growth)),
		},
		RepaymentCapacityRatio: types.Float(round4(repayment)),
		LoanEligibilityStatus:  eligibility(total, repayment),
		RiskFlags:              flags,
		Details: types.CreditComponentDetails{
			NetMargin:         detail(latest.NetMargin),
			CurrentRatio:      detail(latest.CurrentRatio),
			QuickRatio:        scaledDetail(latest.CurrentRatio, 0.6),
			DebtToEquity:      detail(latest.DebtToEquity),
			CashFlowStability: types.Float(stats.Stability(cashFlows)),
			RevenueGrowthRate: types.Float(stats.GrowthRate(revenues)),
		},
		Recommendations: recommendations(profitability, liquidity, leverage, cashFlow, growth, flags),
		LastUpdated:     time.Now().UTC(),
	}
}

// profitabilityScore bands the latest net margin (max 200), then adjusts
// for margin consistency across the window.
func profitabilityScore(latest types.MonthlyStatement, history []types.MonthlyStatement) float64 {
	netIncome := types.Value(latest.NetIncome)
	revenue := types.Value(latest.Revenue)
	netMargin := -1.0
	if revenue > 0 {
		netMargin = netIncome / revenue
	}

	var base float64
	switch {
	case netMargin >= 0.15:
		base = 200
	case netMargin >= 0.10:
		base = 170
	case netMargin >= 0.05:
		base = 140
	case netMargin >= 0:
		base = 100
	case netMargin >= -0.05:
		base = 50
	default:
		base = 0
	}

	margins := []float64{}
	for _, st := range history {
		rev := types.Value(st.Revenue)
		if rev > 0 {
			margins = append(margins, types.Value(st.NetIncome)/rev)
		}
	}
	if len(margins) > 1 {
		volatility := stats.Stability(margins)
		if volatility < 0.3 {
			base = math.Min(200, base+20)
		} else if volatility > 0.7 {
			base = math.Max(0, base-30)
		}
	}
	return base
}

// liquidityScore averages a current-ratio band and a quick-ratio band
// (quick estimated as 60% of current), scaled to max 200.
func liquidityScore(latest types.MonthlyStatement) float64 {
	currentRatio := types.Value(latest.CurrentRatio)
	quickRatio := 0.0
	if currentRatio > 0 {
		quickRatio = currentRatio * 0.6
	}

	var currentScore float64
	switch {
	case currentRatio >= 2.0:
		currentScore = 100
	case currentRatio >= 1.5:
		currentScore = 85
	case currentRatio >= 1.0:
		currentScore = 70
	case currentRatio >= 0.5:
		currentScore = 40
	default:
		currentScore = 0
	}

	var quickScore float64
	switch {
	case quickRatio >= 1.5:
		quickScore = 100
	case quickRatio >= 1.0:
		quickScore = 85
	case quickRatio >= 0.7:
		quickScore = 70
	case quickRatio >= 0.4:
		quickScore = 40
	default:
		quickScore = 0
	}

	return (currentScore + quickScore) / 2 * 2
}

// leverageScore bands debt-to-equity (max 200) and nudges the result by the
// standing leverage risk level when one is known.
func leverageScore(latest types.MonthlyStatement, risk *types.RiskSummary) float64 {
	debtToEquity := types.Value(latest.DebtToEquity)

	var base float64
	switch {
	case debtToEquity <= 0.3:
		base = 200
	case debtToEquity <= 0.7:
		base = 170
	case debtToEquity <= 1.5:
		base = 140
	case debtToEquity <= 3.0:
		base = 100
	case debtToEquity <= 5.0:
		base = 50
	default:
		base = 0
	}

	if risk != nil {
		switch risk.Leverage.Level {
		case types.RiskCritical:
			base = math.Max(0, base-50)
		case types.RiskHigh:
			base = math.Max(0, base-30)
		case types.RiskLow:
			base = math.Min(200, base+20)
		}
	}
	return base
}

// cashFlowScore bands the positive-month ratio, adjusts for stability and
// for the month-over-month trend, then scales to max 200.
func cashFlowScore(history []types.MonthlyStatement) float64 {
	cashFlows := make([]float64, len(history))
	positive := 0
	for i, st := range history {
		cashFlows[i] = types.Value(st.OperatingCashFlow)
		if cashFlows[i] > 0 {
			positive++
		}
	}
	if len(cashFlows) == 0 {
		return 0
	}
	positiveRatio := float64(positive) / float64(len(cashFlows))

	var base float64
	switch {
	case positiveRatio >= 0.8:
		base = 100
	case positiveRatio >= 0.6:
		base = 80
	case positiveRatio >= 0.4:
		base = 60
	case positiveRatio >= 0.2:
		base = 40
	default:
		base = 0
	}

	stability := stats.Stability(cashFlows)
	if stability < 0.3 {
		base = math.Min(100, base+20)
	} else if stability > 0.7 {
		base = math.Max(0, base-30)
	}

	if len(cashFlows) > 1 {
		nondecreasing := 0
		for i := 1; i < len(cashFlows); i++ {
			if cashFlows[i] >= cashFlows[i-1] {
				nondecreasing++
			}
		}
		trendRatio := float64(nondecreasing) / float64(len(cashFlows)-1)
		if trendRatio >= 0.7 {
			base = math.Min(100, base+20)
		} else if trendRatio <= 0.3 {
			base = math.Max(0, base-20)
		}
	}

	return base * 2
}

// growthScore bands revenue CAGR (max 100) and adjusts for how many
// months actually grew.
func growthScore(history []types.MonthlyStatement) float64 {
	revenues := make([]float64, len(history))
	for i, st := range history {
		revenues[i] = types.Value(st.Revenue)
	}
	if len(revenues) < 2 {
		return 50
	}

	growth := stats.GrowthRate(revenues)

	var base float64
	switch {
	case growth >= 0.20:
		base = 100
	case growth >= 0.15:
		base = 85
	case growth >= 0.10:
		base = 70
	case growth >= 0.05:
		base = 55
	case growth >= 0:
		base = 40
	case growth >= -0.05:
		base = 25
	default:
		base = 0
	}

	if len(revenues) > 2 {
		consistency := growthConsistency(revenues)
		if consistency >= 0.8 {
			base = math.Min(100, base+10)
		} else if consistency <= 0.4 {
			base = math.Max(0, base-15)
		}
	}
	return base
}

// growthConsistency is the share of month-over-month steps that grew.
func growthConsistency(revenues []float64) float64 {
	if len(revenues) < 2 {
		return 0
	}
	grew := 0
	for i := 1; i < len(revenues); i++ {
		if revenues[i] > revenues[i-1] {
			grew++
		}
	}
	return float64(grew) / float64(len(revenues)-1)
}

// repaymentCapacity is net income over estimated annual debt service
// (10% of current liabilities). With no liabilities it collapses to a
// 1.0/0.0 signal on the sign of net income.
func repaymentCapacity(latest types.MonthlyStatement) float64 {
	netIncome := types.Value(latest.NetIncome)
	debtService := types.Value(latest.CurrentLiabilities) * debtServiceRate
	if debtService == 0 {
		if netIncome > 0 {
			return 1.0
		}
		return 0.0
	}
	return netIncome / debtService
}

func eligibility(score, repayment float64) string {
	switch {
	case score >= 600 && repayment >= 1.5:
		return "Eligible"
	case score >= 500 && repayment >= 1.0:
		return "Conditional"
	default:
		return "Not Eligible"
	}
}

func rating(score float64) string {
	switch {
	case score >= 800:
		return "AAA"
	case score >= 700:
		return "AA"
	case score >= 600:
		return "A"
	case score >= 500:
		return "BBB"
	case score >= 400:
		return "BB"
	default:
		return "High Risk"
	}
}

func riskFlags(profit, liquid, lever, cash, growth float64, latest types.MonthlyStatement) []string {
	flags := []string{}
	if profit < 100 {
		flags = append(flags, "Weak Profitability")
	}
	if liquid < 100 {
		flags = append(flags, "Poor Liquidity")
	}
	if lever < 100 {
		flags = append(flags, "High Leverage")
	}
	if cash < 100 {
		flags = append(flags, "Cash Flow Issues")
	}
	if growth < 50 {
		flags = append(flags, "Low Growth")
	}

	if latest.NetIncome != nil && *latest.NetIncome < 0 {
		flags = append(flags, "Negative Profitability")
	}
	if latest.CurrentRatio != nil && *latest.CurrentRatio != 0 && *latest.CurrentRatio < 1.0 {
		flags = append(flags, "Current Ratio < 1.0")
	}
	if latest.DebtToEquity != nil && *latest.DebtToEquity > 3.0 {
		flags = append(flags, "Debt to Equity > 3.0")
	}
	return flags
}

func recommendations(profit, liquid, lever, cash, growth float64, flags []string) []string {
	recs := []string{}
	if profit < 100 {
		recs = append(recs, "Improve operating margins through cost optimization")
	}
	if liquid < 100 {
		recs = append(recs, "Enhance liquidity by improving working capital management")
	}
	if lever < 100 {
		recs = append(recs, "Reduce debt levels to improve leverage ratios")
	}
	if cash < 100 {
		recs = append(recs, "Strengthen cash flow generation through operational improvements")
	}
	if growth < 50 {
		recs = append(recs, "Focus on revenue growth strategies and market expansion")
	}

	if contains(flags, "Negative Profitability") {
		recs = append(recs, "Address negative profitability immediately through cost reduction")
	}
	if contains(flags, "Current Ratio < 1.0") {
		recs = append(recs, "Increase current assets or reduce short-term liabilities")
	}
	if contains(flags, "Debt to Equity > 3.0") {
		recs = append(recs, "Consider equity infusion to reduce leverage")
	}
	return recs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// detail mirrors the reporting convention of omitting zero figures.
func detail(p *float64) *float64 {
	if p == nil || *p == 0 {
		return nil
	}
	v := *p
	return &v
}

func scaledDetail(p *float64, factor float64) *float64 {
	if p == nil || *p == 0 {
		return nil
	}
	v := *p * factor
	return &v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
