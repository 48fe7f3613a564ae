package credit

import (
	"testing"

	"github.com/google/uuid"

	"finsight-analytics/internal/types"
)

func month(revenue, netIncome, currentRatio, debtToEquity, cashFlow, currentLiabilities float64) types.MonthlyStatement {
	return types.MonthlyStatement{
		Revenue:            types.Float(revenue),
		NetIncome:          types.Float(netIncome),
		CurrentRatio:       types.Float(currentRatio),
		DebtToEquity:       types.Float(debtToEquity),
		OperatingCashFlow:  types.Float(cashFlow),
		CurrentLiabilities: types.Float(currentLiabilities),
	}
}

func TestScoreInsufficientData(t *testing.T) {
	s := NewScorer()
	got := s.Score(uuid.New(), []types.MonthlyStatement{month(100000, 10000, 1.5, 0.5, 5000, 50000)}, nil)
	if got.CreditRating != RatingNoData {
		t.Errorf("Expected rating %q, got %q", RatingNoData, got.CreditRating)
	}
	if got.CreditScore != nil {
		t.Errorf("Expected nil credit score, got %v", *got.CreditScore)
	}
	if got.LoanEligibilityStatus != EligibilityNoData {
		t.Errorf("Expected eligibility %q, got %q", EligibilityNoData, got.LoanEligibilityStatus)
	}
}

func TestScoreStrongCompany(t *testing.T) {
	s := NewScorer()
	history := make([]types.MonthlyStatement, 6)
	for i := range history {
		history[i] = month(100000, 16000, 2.6, 0.2, 20000, 50000)
	}

	got := s.Score(uuid.New(), history, nil)

	// profitability 200, liquidity 200, leverage 200, cash flow 200;
	// flat revenue gives growth 40 then -15 for zero growing months.
	if got.CreditScore == nil || *got.CreditScore != 825 {
		t.Errorf("Expected credit score 825, got %v", got.CreditScore)
	}
	if got.CreditRating != "AAA" {
		t.Errorf("Expected rating AAA, got %s", got.CreditRating)
	}
	if got.LoanEligibilityStatus != "Eligible" {
		t.Errorf("Expected Eligible, got %s", got.LoanEligibilityStatus)
	}
	if v := types.Value(got.RepaymentCapacityRatio); v != 3.2 {
		t.Errorf("Expected repayment capacity 3.2, got %v", v)
	}
	if len(got.RiskFlags) != 1 || got.RiskFlags[0] != "Low Growth" {
		t.Errorf("Expected only Low Growth flag, got %v", got.RiskFlags)
	}
}

func TestScoreDistressedCompany(t *testing.T) {
	s := NewScorer()
	history := []types.MonthlyStatement{
		month(100000, -10000, 0.8, 4.0, -5000, 100000),
		month(90000, -12000, 0.8, 4.0, -5000, 100000),
	}
	risk := &types.RiskSummary{
		Leverage: types.RiskComponent{Level: types.RiskCritical},
	}

	got := s.Score(uuid.New(), history, risk)

	// profitability 0+20, liquidity 80, leverage 50-50, cash flow 40*2,
	// growth 0.
	if got.CreditScore == nil || *got.CreditScore != 180 {
		t.Errorf("Expected credit score 180, got %v", got.CreditScore)
	}
	if got.CreditRating != "High Risk" {
		t.Errorf("Expected rating High Risk, got %s", got.CreditRating)
	}
	if got.LoanEligibilityStatus != "Not Eligible" {
		t.Errorf("Expected Not Eligible, got %s", got.LoanEligibilityStatus)
	}

	wantFlags := []string{
		"Weak Profitability",
		"Poor Liquidity",
		"High Leverage",
		"Cash Flow Issues",
		"Low Growth",
		"Negative Profitability",
		"Current Ratio < 1.0",
		"Debt to Equity > 3.0",
	}
	if len(got.RiskFlags) != len(wantFlags) {
		t.Fatalf("Expected %d risk flags, got %v", len(wantFlags), got.RiskFlags)
	}
	for i, w := range wantFlags {
		if got.RiskFlags[i] != w {
			t.Errorf("Flag %d: expected %q, got %q", i, w, got.RiskFlags[i])
		}
	}
	if len(got.Recommendations) != 8 {
		t.Errorf("Expected 8 recommendations, got %d", len(got.Recommendations))
	}
}

func TestRatingBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{900, "AAA"}, {800, "AAA"}, {799, "AA"}, {700, "AA"},
		{699, "A"}, {600, "A"}, {599, "BBB"}, {500, "BBB"},
		{499, "BB"}, {400, "BB"}, {399, "High Risk"}, {0, "High Risk"},
	}
	for _, tt := range tests {
		if got := rating(tt.score); got != tt.want {
			t.Errorf("score %v: expected %q, got %q", tt.score, tt.want, got)
		}
	}
}

func TestRepaymentCapacityFallbacks(t *testing.T) {
	profitable := types.MonthlyStatement{NetIncome: types.Float(5000)}
	if got := repaymentCapacity(profitable); got != 1.0 {
		t.Errorf("Expected 1.0 with no liabilities and positive income, got %v", got)
	}
	unprofitable := types.MonthlyStatement{NetIncome: types.Float(-5000)}
	if got := repaymentCapacity(unprofitable); got != 0.0 {
		t.Errorf("Expected 0.0 with no liabilities and negative income, got %v", got)
	}
}

func TestLeverageRiskNudge(t *testing.T) {
	st := month(100000, 10000, 1.5, 1.0, 5000, 50000) // base 140
	low := &types.RiskSummary{Leverage: types.RiskComponent{Level: types.RiskLow}}
	if got := leverageScore(st, low); got != 160 {
		t.Errorf("Expected 160 with Low leverage risk, got %v", got)
	}
	high := &types.RiskSummary{Leverage: types.RiskComponent{Level: types.RiskHigh}}
	if got := leverageScore(st, high); got != 110 {
		t.Errorf("Expected 110 with High leverage risk, got %v", got)
	}
	if got := leverageScore(st, nil); got != 140 {
		t.Errorf("Expected 140 without risk summary, got %v", got)
	}
}
