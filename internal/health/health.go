// Package health produces the weighted 0-100 financial health score.
// Five component scores are computed from up to twelve months of history
// and aggregated with fixed weights; thresholds are deliberately constant
// so two runs over the same data always agree.
package health

import (
	"math"
	"time"

	"github.com/google/uuid"

	"finsight-analytics/internal/stats"
	"finsight-analytics/internal/types"
)

// Component weights, sum to 1.0.
const (
	weightProfitability = 0.30
	weightLiquidity     = 0.20
	weightLeverage      = 0.25
	weightCashFlow      = 0.15
	weightGrowth        = 0.10
)

// CategoryNoData is returned when fewer than two months of history exist.
const CategoryNoData = "No Data"

// Scorer computes health summaries. Stateless and safe for concurrent use.
type Scorer struct{}

func NewScorer() *Scorer { return &Scorer{} }

// Score evaluates a company's history, oldest month first. With fewer than
// two months it returns the no-data sentinel rather than a misleading score.
func (s *Scorer) Score(companyID uuid.UUID, history []types.MonthlyStatement) types.HealthSummary {
	if len(history) < 2 {
		return types.HealthSummary{
			CompanyID:       companyID,
			HealthCategory:  CategoryNoData,
			Recommendations: []string{},
			LastUpdated:     time.Now().UTC(),
		}
	}

	n := len(history)
	revenues := make([]float64, n)
	netIncomes := make([]float64, n)
	currentRatios := make([]float64, n)
	cashFlows := make([]float64, n)
	for i, st := range history {
		revenues[i] = types.Value(st.Revenue)
		netIncomes[i] = types.Value(st.NetIncome)
		currentRatios[i] = types.Value(st.CurrentRatio)
		cashFlows[i] = types.Value(st.OperatingCashFlow)
	}

	latest := history[n-1]
	netMargin := types.Value(latest.NetMargin)
	if netMargin == 0 && revenues[n-1] > 0 {
		netMargin = netIncomes[n-1] / revenues[n-1]
	}
	currentRatio := currentRatios[n-1]
	debtToEquity := types.Value(latest.DebtToEquity)

	profitability := profitabilityScore(netMargin, revenues, netIncomes)
	liquidity := liquidityScore(currentRatio)
	leverage := leverageScore(debtToEquity)
	cashFlow := cashFlowScore(cashFlows)
	growth := growthScore(revenues)

	score := profitability*weightProfitability +
		liquidity*weightLiquidity +
		leverage*weightLeverage +
		cashFlow*weightCashFlow +
		growth*weightGrowth

	return types.HealthSummary{
		CompanyID:      companyID,
		HealthScore:    types.Float(round2(score)),
		HealthCategory: categorize(score),
		Components: types.HealthComponentScores{
			Profitability: types.Float(round2(profitability)),
			Liquidity:     types.Float(round2(liquidity)),
			Leverage:      types.Float(round2(leverage)),
			CashFlow:      types.Float(round2(cashFlow)),
			Growth:        types.Float(round2(growth)),
		},
		Details: types.HealthComponentDetails{
			NetMargin:         types.Float(round4(netMargin)),
			CurrentRatio:      types.Float(round2(currentRatio)),
			DebtToEquity:      types.Float(round2(debtToEquity)),
			CashFlowStability: types.Float(round2(stats.Stability(cashFlows))),
			RevenueGrowthRate: types.Float(round4(stats.GrowthRate(revenues))),
		},
		Recommendations: recommendations(
			profitability, liquidity, leverage, cashFlow, growth,
			netMargin, currentRatio, debtToEquity,
		),
		LastUpdated: time.Now().UTC(),
	}
}

// profitabilityScore bands the latest net margin, then grants a stability
// bonus of up to 20 points for low net-income volatility.
func profitabilityScore(netMargin float64, revenues, netIncomes []float64) float64 {
	if len(revenues) == 0 || revenues[len(revenues)-1] == 0 {
		return 0
	}

	var base float64
	switch {
	case netMargin >= 0.15:
		base = 100
	case netMargin >= 0.08:
		base = 80
	case netMargin >= 0.03:
		base = 60
	case netMargin >= 0:
		base = 40
	default:
		base = 20
	}

	if len(netIncomes) > 1 {
		volatility := stats.Stability(netIncomes)
		bonus := math.Max(0, (0.5-volatility)*40)
		base = math.Min(100, base+bonus)
	}
	return base
}

func liquidityScore(currentRatio float64) float64 {
	switch {
	case currentRatio >= 2.0:
		return 100
	case currentRatio >= 1.5:
		return 80
	case currentRatio >= 1.0:
		return 60
	case currentRatio >= 0.5:
		return 40
	default:
		return 20
	}
}

// leverageScore is inverse banded: lower debt-to-equity scores higher.
func leverageScore(debtToEquity float64) float64 {
	switch {
	case debtToEquity <= 0.3:
		return 100
	case debtToEquity <= 0.7:
		return 80
	case debtToEquity <= 1.5:
		return 60
	case debtToEquity <= 3.0:
		return 40
	default:
		return 20
	}
}

// cashFlowScore bands the share of positive months, then adds a stability
// bonus. Capped at 100.
func cashFlowScore(cashFlows []float64) float64 {
	if len(cashFlows) == 0 {
		return 0
	}
	positive := 0
	for _, cf := range cashFlows {
		if cf > 0 {
			positive++
		}
	}
	positiveRatio := float64(positive) / float64(len(cashFlows))

	var base float64
	switch {
	case positiveRatio >= 0.8:
		base = 80
	case positiveRatio >= 0.6:
		base = 60
	case positiveRatio >= 0.4:
		base = 40
	default:
		base = 20
	}

	stability := stats.Stability(cashFlows)
	if stability < 0.3 {
		base += 20
	} else if stability < 0.5 {
		base += 10
	}
	return math.Min(100, base)
}

func growthScore(revenues []float64) float64 {
	if len(revenues) < 2 {
		return 50 // neutral with insufficient data
	}
	growth := stats.GrowthRate(revenues)
	switch {
	case growth >= 0.20:
		return 100
	case growth >= 0.10:
		return 80
	case growth >= 0.03:
		return 60
	case growth >= 0:
		return 40
	default:
		return 20
	}
}

func categorize(score float64) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Moderate"
	case score >= 30:
		return "Weak"
	default:
		return "Critical"
	}
}

// recommendations lists improvement actions for every component under 60,
// with the phrasing varied by how bad the underlying figure is.
func recommendations(profitability, liquidity, leverage, cashFlow, growth,
	netMargin, currentRatio, debtToEquity float64) []string {

	recs := []string{}
	if profitability < 60 {
		if netMargin < 0.05 {
			recs = append(recs, "Improve profitability by reducing costs or increasing prices")
		} else {
			recs = append(recs, "Enhance profit margin through operational efficiency")
		}
	}
	if liquidity < 60 {
		if currentRatio < 1.0 {
			recs = append(recs, "Improve liquidity by increasing current assets or reducing short-term liabilities")
		} else {
			recs = append(recs, "Strengthen liquidity position to meet short-term obligations")
		}
	}
	if leverage < 60 {
		if debtToEquity > 2.0 {
			recs = append(recs, "Reduce leverage to strengthen balance sheet and lower financial risk")
		} else {
			recs = append(recs, "Optimize debt structure to improve financial stability")
		}
	}
	if cashFlow < 60 {
		recs = append(recs, "Enhance cash flow management through better working capital control")
	}
	if growth < 60 {
		recs = append(recs, "Develop growth strategies to expand revenue and market presence")
	}
	return recs
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
