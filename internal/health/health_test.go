package health

import (
	"testing"

	"github.com/google/uuid"

	"finsight-analytics/internal/types"
)

func month(revenue, netIncome, currentRatio, debtToEquity, cashFlow float64) types.MonthlyStatement {
	return types.MonthlyStatement{
		Revenue:           types.Float(revenue),
		NetIncome:         types.Float(netIncome),
		CurrentRatio:      types.Float(currentRatio),
		DebtToEquity:      types.Float(debtToEquity),
		OperatingCashFlow: types.Float(cashFlow),
	}
}

func TestScoreInsufficientData(t *testing.T) {
	s := NewScorer()
	got := s.Score(uuid.New(), []types.MonthlyStatement{month(100000, 10000, 1.5, 0.5, 5000)})
	if got.HealthCategory != CategoryNoData {
		t.Errorf("Expected category %q, got %q", CategoryNoData, got.HealthCategory)
	}
	if got.HealthScore != nil {
		t.Errorf("Expected nil health score, got %v", *got.HealthScore)
	}
	if len(got.Recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %v", got.Recommendations)
	}
}

func TestScoreStableProfitableCompany(t *testing.T) {
	s := NewScorer()
	history := make([]types.MonthlyStatement, 6)
	for i := range history {
		history[i] = month(100000, 16000, 2.5, 0.2, 20000)
	}

	got := s.Score(uuid.New(), history)

	// Flat revenue caps growth at 40; everything else maxes out.
	// 100*.30 + 100*.20 + 100*.25 + 100*.15 + 40*.10 = 94
	if got.HealthScore == nil || *got.HealthScore != 94 {
		t.Errorf("Expected health score 94, got %v", got.HealthScore)
	}
	if got.HealthCategory != "Excellent" {
		t.Errorf("Expected category Excellent, got %s", got.HealthCategory)
	}
	if v := types.Value(got.Components.Profitability); v != 100 {
		t.Errorf("Expected profitability 100, got %v", v)
	}
	if v := types.Value(got.Components.CashFlow); v != 100 {
		t.Errorf("Expected cash flow 100, got %v", v)
	}
	if v := types.Value(got.Components.Growth); v != 40 {
		t.Errorf("Expected growth 40, got %v", v)
	}
	if len(got.Recommendations) != 1 {
		t.Fatalf("Expected 1 recommendation, got %v", got.Recommendations)
	}
	if got.Recommendations[0] != "Develop growth strategies to expand revenue and market presence" {
		t.Errorf("Unexpected recommendation: %s", got.Recommendations[0])
	}
}

func TestScoreDistressedCompany(t *testing.T) {
	s := NewScorer()
	history := []types.MonthlyStatement{
		month(100000, -10000, 0.4, 4.0, -5000),
		month(90000, -10000, 0.4, 4.0, -5000),
	}

	got := s.Score(uuid.New(), history)

	// 40*.30 + 20*.20 + 20*.25 + 40*.15 + 20*.10 = 29
	if got.HealthScore == nil || *got.HealthScore != 29 {
		t.Errorf("Expected health score 29, got %v", got.HealthScore)
	}
	if got.HealthCategory != "Critical" {
		t.Errorf("Expected category Critical, got %s", got.HealthCategory)
	}
	if len(got.Recommendations) != 5 {
		t.Errorf("Expected 5 recommendations, got %d: %v", len(got.Recommendations), got.Recommendations)
	}
	want := "Improve profitability by reducing costs or increasing prices"
	if len(got.Recommendations) > 0 && got.Recommendations[0] != want {
		t.Errorf("Expected first recommendation %q, got %q", want, got.Recommendations[0])
	}
}

func TestGrowthBands(t *testing.T) {
	tests := []struct {
		name     string
		revenues []float64
		want     float64
	}{
		{"rapid growth", []float64{100000, 125000}, 100},
		{"solid growth", []float64{100000, 112000}, 80},
		{"modest growth", []float64{100000, 105000}, 60},
		{"flat", []float64{100000, 100000}, 40},
		{"declining", []float64{100000, 80000}, 20},
	}
	for _, tt := range tests {
		if got := growthScore(tt.revenues); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestLeverageInverseBands(t *testing.T) {
	tests := []struct {
		dte  float64
		want float64
	}{
		{0.2, 100}, {0.5, 80}, {1.0, 60}, {2.0, 40}, {5.0, 20},
	}
	for _, tt := range tests {
		if got := leverageScore(tt.dte); got != tt.want {
			t.Errorf("debt-to-equity %v: expected %v, got %v", tt.dte, tt.want, got)
		}
	}
}
