package metrics

import (
	"finsight-analytics/internal/types"
)

// QuickGrade is a lightweight 0-100 creditworthiness grade computed from a
// single period's ratios. It backs dashboard tiles that need an answer
// before enough history exists for the full 0-900 credit evaluation.
type QuickGrade struct {
	ProfitabilityScore   float64 `json:"profitability_score"`
	LiquidityScore       float64 `json:"liquidity_score"`
	LeverageScore        float64 `json:"leverage_score"`
	CashStabilityScore   float64 `json:"cash_stability_score"`
	TaxComplianceScore   float64 `json:"tax_compliance_score"`
	IndustryRiskModifier float64 `json:"industry_risk_modifier"`
	CreditScore          float64 `json:"credit_score"`
	CreditGrade          string  `json:"credit_grade"`
}

// Default assumption until actual filings are wired in.
const defaultTaxComplianceScore = 85

var industryRiskScores = map[string]float64{
	"Manufacturing": 75,
	"Retail":        70,
	"Agriculture":   60,
	"Services":      85,
	"Logistics":     72,
	"E-commerce":    68,
}

// Grade scores one period's metrics into a 0-100 grade with a letter band.
func Grade(m *types.ComputedMetrics, industry string) QuickGrade {
	g := QuickGrade{
		ProfitabilityScore:   scoreProfitability(m),
		LiquidityScore:       scoreLiquidity(m),
		LeverageScore:        scoreLeverage(m),
		CashStabilityScore:   scoreCashStability(m),
		TaxComplianceScore:   defaultTaxComplianceScore,
		IndustryRiskModifier: industryRiskModifier(industry),
	}

	score := g.ProfitabilityScore*0.30 +
		g.LiquidityScore*0.20 +
		g.LeverageScore*0.20 +
		g.CashStabilityScore*0.15 +
		g.TaxComplianceScore*0.10 +
		g.IndustryRiskModifier*0.05

	g.CreditScore = clamp(score, 0, 100)
	g.CreditGrade = letterGrade(score)
	return g
}

func scoreProfitability(m *types.ComputedMetrics) float64 {
	score := 50.0
	if v := m.GrossProfitMargin; v != nil {
		switch {
		case *v >= 0.4:
			score += 25
		case *v >= 0.2:
			score += 15
		case *v >= 0.1:
			score += 5
		}
	}
	if v := m.NetProfitMargin; v != nil {
		switch {
		case *v >= 0.15:
			score += 25
		case *v >= 0.08:
			score += 15
		case *v >= 0.03:
			score += 5
		}
	}
	return clamp(score, 0, 100)
}

func scoreLiquidity(m *types.ComputedMetrics) float64 {
	score := 50.0
	if v := m.CurrentRatio; v != nil {
		switch {
		case *v >= 2.0:
			score += 25
		case *v >= 1.5:
			score += 15
		case *v >= 1.0:
			score += 5
		}
	}
	if v := m.QuickRatio; v != nil {
		switch {
		case *v >= 1.5:
			score += 25
		case *v >= 1.0:
			score += 15
		case *v >= 0.8:
			score += 5
		}
	}
	return clamp(score, 0, 100)
}

func scoreLeverage(m *types.ComputedMetrics) float64 {
	score := 50.0
	if v := m.DebtToEquity; v != nil {
		switch {
		case *v <= 0.5:
			score += 25
		case *v <= 1.0:
			score += 15
		case *v <= 1.5:
			score += 5
		}
	}
	if v := m.InterestCoverage; v != nil {
		switch {
		case *v >= 5.0:
			score += 25
		case *v >= 3.0:
			score += 15
		case *v >= 2.0:
			score += 5
		}
	}
	return clamp(score, 0, 100)
}

func scoreCashStability(m *types.ComputedMetrics) float64 {
	score := 50.0
	if v := m.CashRatio; v != nil {
		switch {
		case *v >= 0.5:
			score += 25
		case *v >= 0.3:
			score += 15
		case *v >= 0.1:
			score += 5
		}
	}
	if v := m.WorkingCapital; v != nil && *v > 0 {
		score += 25
	}
	return clamp(score, 0, 100)
}

func industryRiskModifier(industry string) float64 {
	if s, ok := industryRiskScores[industry]; ok {
		return s
	}
	return 70
}

func letterGrade(score float64) string {
	switch {
	case score >= 85:
		return "A+"
	case score >= 75:
		return "A"
	case score >= 65:
		return "B+"
	case score >= 55:
		return "B"
	case score >= 45:
		return "C"
	default:
		return "D"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
