// Package risk scores financial risk on a 0-100 scale where higher means
// riskier. Four banded components are combined with fixed weights; each
// component also carries its own level and the figures it was judged on.
package risk

import (
	"math"
	"time"

	"github.com/google/uuid"

	"finsight-analytics/internal/stats"
	"finsight-analytics/internal/types"
)

// Component weights, sum to 1.0.
const (
	weightLeverage      = 0.30
	weightLiquidity     = 0.25
	weightProfitability = 0.25
	weightCashFlow      = 0.20
)

// Analyzer computes risk summaries. Stateless and safe for concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze evaluates a company's history, oldest month first. Leverage,
// liquidity and profitability are judged on the latest month only; cash
// flow looks at the whole window. Fewer than two months yields the
// no-data sentinel.
func (a *Analyzer) Analyze(companyID uuid.UUID, history []types.MonthlyStatement) types.RiskSummary {
	if len(history) < 2 {
		return types.RiskSummary{
			CompanyID:         companyID,
			OverallRiskLevel:  types.RiskNoData,
			Leverage:          noDataComponent(),
			Liquidity:         noDataComponent(),
			Profitability:     noDataComponent(),
			CashFlow:          noDataComponent(),
			MitigationActions: []string{},
			LastUpdated:       time.Now().UTC(),
		}
	}

	latest := history[len(history)-1]
	leverage := leverageRisk(latest)
	liquidity := liquidityRisk(latest)
	profitability := profitabilityRisk(latest)
	cashFlow := cashFlowRisk(history)

	overall := types.Value(leverage.Score)*weightLeverage +
		types.Value(liquidity.Score)*weightLiquidity +
		types.Value(profitability.Score)*weightProfitability +
		types.Value(cashFlow.Score)*weightCashFlow

	return types.RiskSummary{
		CompanyID:         companyID,
		OverallRiskScore:  types.Float(round2(overall)),
		OverallRiskLevel:  levelFor(overall),
		Leverage:          leverage,
		Liquidity:         liquidity,
		Profitability:     profitability,
		CashFlow:          cashFlow,
		MitigationActions: mitigationActions(leverage, liquidity, profitability, cashFlow),
		LastUpdated:       time.Now().UTC(),
	}
}

func leverageRisk(latest types.MonthlyStatement) types.RiskComponent {
	debtToEquity := types.Value(latest.DebtToEquity)

	var score float64
	switch {
	case debtToEquity <= 1.0:
		score = 20
	case debtToEquity <= 2.0:
		score = 40
	case debtToEquity <= 3.0:
		score = 70
	default:
		score = 100
	}

	return types.RiskComponent{
		Score: types.Float(score),
		Level: levelFor(score),
		Details: types.RiskComponentDetails{
			DebtToEquity: types.Float(round2(debtToEquity)),
		},
	}
}

// liquidityRisk bands the worse of the current ratio and an estimated quick
// ratio (60% of current assets assumed quick).
func liquidityRisk(latest types.MonthlyStatement) types.RiskComponent {
	currentRatio := types.Value(latest.CurrentRatio)
	quickRatio := 0.0
	if currentRatio > 0 {
		quickRatio = currentRatio * 0.6
	}
	effective := math.Min(currentRatio, quickRatio)

	var score float64
	switch {
	case effective >= 1.5:
		score = 20
	case effective >= 1.0:
		score = 40
	case effective >= 0.5:
		score = 70
	default:
		score = 100
	}

	return types.RiskComponent{
		Score: types.Float(score),
		Level: levelFor(score),
		Details: types.RiskComponentDetails{
			CurrentRatio: types.Float(round2(currentRatio)),
			QuickRatio:   types.Float(round2(quickRatio)),
		},
	}
}

func profitabilityRisk(latest types.MonthlyStatement) types.RiskComponent {
	netIncome := types.Value(latest.NetIncome)
	revenue := types.Value(latest.Revenue)

	// No revenue reads as deeply unprofitable, not as unknown.
	netMargin := -1.0
	if revenue > 0 {
		netMargin = netIncome / revenue
	}

	var score float64
	switch {
	case netMargin >= 0.05:
		score = 20
	case netMargin >= 0:
		score = 40
	case netMargin >= -0.05:
		score = 70
	default:
		score = 100
	}

	return types.RiskComponent{
		Score: types.Float(score),
		Level: levelFor(score),
		Details: types.RiskComponentDetails{
			NetMargin: types.Float(round4(netMargin)),
			NetIncome: types.Float(round2(netIncome)),
		},
	}
}

// cashFlowRisk bands cash flow volatility, then bumps the score when
// negative months are frequent.
func cashFlowRisk(history []types.MonthlyStatement) types.RiskComponent {
	cashFlows := make([]float64, len(history))
	negative := 0
	for i, st := range history {
		cashFlows[i] = types.Value(st.OperatingCashFlow)
		if cashFlows[i] < 0 {
			negative++
		}
	}
	stability := stats.Stability(cashFlows)
	negativeRatio := float64(negative) / float64(len(cashFlows))

	var score float64
	switch {
	case stability <= 0.3:
		score = 20
	case stability <= 0.5:
		score = 40
	case stability <= 0.7:
		score = 70
	default:
		score = 100
	}

	if negativeRatio > 0.5 {
		score = math.Min(100, score+30)
	} else if negativeRatio > 0.25 {
		score = math.Min(100, score+15)
	}

	negMonths := negative
	totalMonths := len(cashFlows)
	return types.RiskComponent{
		Score: types.Float(score),
		Level: levelFor(score),
		Details: types.RiskComponentDetails{
			CashFlowStability:      types.Float(round2(stability)),
			NegativeCashFlowMonths: &negMonths,
			TotalMonths:            &totalMonths,
		},
	}
}

func levelFor(score float64) types.RiskLevel {
	switch {
	case score <= 30:
		return types.RiskLow
	case score <= 50:
		return types.RiskModerate
	case score <= 70:
		return types.RiskHigh
	default:
		return types.RiskCritical
	}
}

// mitigationActions lists actions for every component scoring above 50,
// with wording keyed to the underlying figure. At least one action is
// always returned.
func mitigationActions(leverage, liquidity, profitability, cashFlow types.RiskComponent) []string {
	actions := []string{}

	if types.Value(leverage.Score) > 50 {
		if types.Value(leverage.Details.DebtToEquity) > 3 {
			actions = append(actions, "Reduce debt exposure through debt restructuring or equity infusion")
		} else {
			actions = append(actions, "Optimize capital structure to lower debt-to-equity ratio")
		}
	}
	if types.Value(liquidity.Score) > 50 {
		if types.Value(liquidity.Details.CurrentRatio) < 1 {
			actions = append(actions, "Improve liquidity by increasing current assets or reducing short-term liabilities")
		} else {
			actions = append(actions, "Strengthen working capital management to improve liquidity ratios")
		}
	}
	if types.Value(profitability.Score) > 50 {
		if types.Value(profitability.Details.NetMargin) < 0 {
			actions = append(actions, "Address negative profitability by reducing costs or increasing prices")
		} else {
			actions = append(actions, "Enhance profit margins through operational efficiency improvements")
		}
	}
	if types.Value(cashFlow.Score) > 50 {
		if cashFlow.Details.NegativeCashFlowMonths != nil && *cashFlow.Details.NegativeCashFlowMonths > 0 {
			actions = append(actions, "Improve cash flow management through better receivables collection")
		} else {
			actions = append(actions, "Enhance cash flow stability through predictable revenue streams")
		}
	}

	if len(actions) == 0 {
		actions = append(actions, "Maintain current risk management practices and monitor key ratios")
	}
	return actions
}

func noDataComponent() types.RiskComponent {
	return types.RiskComponent{Level: types.RiskNoData}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
