package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"

	"finsight-analytics/internal/logger"
	"finsight-analytics/internal/store"
	"finsight-analytics/internal/types"
)

func init() {
	logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text"})
}

// memStore is an in-memory stand-in for the Postgres repos.
type memStore struct {
	statements map[uuid.UUID]map[string]types.MonthlyStatement
	health     map[uuid.UUID]types.HealthSummary
	risk       map[uuid.UUID]types.RiskSummary
	credit     map[uuid.UUID]types.CreditSummary
	benchmark  map[uuid.UUID]types.BenchmarkSummary
	forecasts  map[string]types.ForecastResult

	failHealthSave bool
}

func newMemStore() *memStore {
	return &memStore{
		statements: map[uuid.UUID]map[string]types.MonthlyStatement{},
		health:     map[uuid.UUID]types.HealthSummary{},
		risk:       map[uuid.UUID]types.RiskSummary{},
		credit:     map[uuid.UUID]types.CreditSummary{},
		benchmark:  map[uuid.UUID]types.BenchmarkSummary{},
		forecasts:  map[string]types.ForecastResult{},
	}
}

func (m *memStore) Upsert(_ context.Context, st *types.MonthlyStatement) error {
	months, ok := m.statements[st.CompanyID]
	if !ok {
		months = map[string]types.MonthlyStatement{}
		m.statements[st.CompanyID] = months
	}
	months[st.Month] = *st
	return nil
}

func (m *memStore) Recent(_ context.Context, companyID uuid.UUID, limit int) ([]types.MonthlyStatement, error) {
	months := m.statements[companyID]
	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}
	out := make([]types.MonthlyStatement, 0, len(keys))
	for _, k := range keys {
		out = append(out, months[k])
	}
	return out, nil
}

func (m *memStore) CompanyIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range m.statements {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memStore) SaveHealth(_ context.Context, s *types.HealthSummary) error {
	if m.failHealthSave {
		return errors.New("health save rejected")
	}
	m.health[s.CompanyID] = *s
	return nil
}

func (m *memStore) SaveRisk(_ context.Context, s *types.RiskSummary) error {
	m.risk[s.CompanyID] = *s
	return nil
}

func (m *memStore) SaveCredit(_ context.Context, s *types.CreditSummary) error {
	m.credit[s.CompanyID] = *s
	return nil
}

func (m *memStore) SaveBenchmark(_ context.Context, s *types.BenchmarkSummary) error {
	m.benchmark[s.CompanyID] = *s
	return nil
}

func (m *memStore) Replace(_ context.Context, f *types.ForecastResult) error {
	m.forecasts[f.CompanyID.String()+"/"+string(f.ForecastType)] = *f
	return nil
}

func (m *memStore) ForIndustry(_ context.Context, _ string) ([]types.BenchmarkEntry, error) {
	return nil, nil
}

func testConfig() *store.Config {
	cfg := &store.Config{}
	cfg.Pipeline.HistoryMonths = 12
	cfg.Pipeline.ForecastMonths = 3
	cfg.Pipeline.DefaultScenario = string(types.ScenarioBase)
	a := &cfg.Pipeline.Analytics
	a.Health, a.Risk, a.Credit, a.Forecast, a.Benchmark = true, true, true, true, true
	return cfg
}

func statement(companyID uuid.UUID, month string, revenue float64) *types.MonthlyStatement {
	return &types.MonthlyStatement{
		CompanyID:          companyID,
		Month:              month,
		Revenue:            types.Float(revenue),
		OperatingExpense:   types.Float(revenue * 0.7),
		NetIncome:          types.Float(revenue * 0.12),
		GrossProfit:        types.Float(revenue * 0.4),
		TotalAssets:        types.Float(500000),
		CurrentAssets:      types.Float(200000),
		CurrentLiabilities: types.Float(100000),
		Equity:             types.Float(250000),
		ShortTermDebt:      types.Float(50000),
		LongTermDebt:       types.Float(100000),
		OperatingCashFlow:  types.Float(revenue * 0.1),
	}
}

func TestIngestComputesRatiosAndRunsAnalytics(t *testing.T) {
	ms := newMemStore()
	runner := NewRunner(testConfig(), ms, ms, ms, ms)
	companyID := uuid.New()
	ctx := context.Background()

	var report *Report
	for i := 1; i <= 4; i++ {
		var err error
		report, err = runner.Ingest(ctx, statement(companyID, fmt.Sprintf("2025-%02d", i), 100000))
		if err != nil {
			t.Fatalf("Ingest month %d failed: %v", i, err)
		}
	}

	if !report.Ok() {
		t.Fatalf("Expected clean run, got failures %v", report.Failures)
	}
	if report.Health == nil || report.Risk == nil || report.Credit == nil ||
		report.Forecast == nil || report.Benchmark == nil {
		t.Fatalf("Expected all analytics present, got %+v", report)
	}

	// Ratios were derived before the upsert.
	stored := ms.statements[companyID]["2025-04"]
	if stored.NetMargin == nil || *stored.NetMargin != 0.12 {
		t.Errorf("Expected stored net margin 0.12, got %v", stored.NetMargin)
	}
	if stored.CurrentRatio == nil || *stored.CurrentRatio != 2.0 {
		t.Errorf("Expected stored current ratio 2.0, got %v", stored.CurrentRatio)
	}
	if stored.DebtToEquity == nil || *stored.DebtToEquity != 0.6 {
		t.Errorf("Expected stored debt-to-equity 0.6, got %v", stored.DebtToEquity)
	}

	// Summaries landed in the store.
	if _, ok := ms.health[companyID]; !ok {
		t.Error("Expected health summary persisted")
	}
	if _, ok := ms.forecasts[companyID.String()+"/Base"]; !ok {
		t.Error("Expected Base forecast persisted")
	}
	if report.Forecast.HistoricalMonthsUsed != 4 {
		t.Errorf("Expected forecast built on 4 months, got %d", report.Forecast.HistoricalMonthsUsed)
	}
}

func TestRunPartialFailure(t *testing.T) {
	ms := newMemStore()
	ms.failHealthSave = true
	runner := NewRunner(testConfig(), ms, ms, ms, ms)
	companyID := uuid.New()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := ms.Upsert(ctx, statement(companyID, fmt.Sprintf("2025-%02d", i), 100000)); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	report, err := runner.Run(ctx, companyID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Ok() {
		t.Fatal("Expected a failure report")
	}
	if len(report.Failures) != 1 || report.Failures[0].Analytic != "health" {
		t.Errorf("Expected single health failure, got %v", report.Failures)
	}
	if report.Health != nil {
		t.Error("Expected no health summary on save failure")
	}
	// The other analytics were unaffected.
	if report.Risk == nil || report.Credit == nil || report.Forecast == nil || report.Benchmark == nil {
		t.Error("Expected remaining analytics to complete")
	}
}

func TestRunHonorsDisabledAnalytics(t *testing.T) {
	ms := newMemStore()
	cfg := testConfig()
	a := &cfg.Pipeline.Analytics
	a.Risk, a.Credit, a.Forecast, a.Benchmark = false, false, false, false

	runner := NewRunner(cfg, ms, ms, ms, ms)
	companyID := uuid.New()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := ms.Upsert(ctx, statement(companyID, fmt.Sprintf("2025-%02d", i), 100000)); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	report, err := runner.Run(ctx, companyID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Health == nil {
		t.Error("Expected health summary")
	}
	if report.Risk != nil || report.Credit != nil || report.Forecast != nil || report.Benchmark != nil {
		t.Error("Expected disabled analytics to be skipped")
	}
}

func TestRunAll(t *testing.T) {
	ms := newMemStore()
	runner := NewRunner(testConfig(), ms, ms, ms, ms)
	ctx := context.Background()

	for c := 0; c < 3; c++ {
		companyID := uuid.New()
		for i := 1; i <= 2; i++ {
			if err := ms.Upsert(ctx, statement(companyID, fmt.Sprintf("2025-%02d", i), 100000)); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
		}
	}

	reports, err := runner.RunAll(ctx)
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if len(reports) != 3 {
		t.Errorf("Expected 3 reports, got %d", len(reports))
	}
}
