// Package pipeline orchestrates a company's analytics run: load history,
// compute each enabled analytic, persist the snapshots. Analytics run
// independently, so one failing leaves the others' results standing.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"finsight-analytics/internal/benchmark"
	"finsight-analytics/internal/credit"
	"finsight-analytics/internal/forecast"
	"finsight-analytics/internal/health"
	"finsight-analytics/internal/interfaces"
	"finsight-analytics/internal/logger"
	"finsight-analytics/internal/metrics"
	"finsight-analytics/internal/risk"
	"finsight-analytics/internal/store"
	"finsight-analytics/internal/types"
)

// Failure records one analytic that could not be computed or stored.
type Failure struct {
	Analytic string `json:"analytic"`
	Err      error  `json:"-"`
	Message  string `json:"error"`
}

// Report is the outcome of one pipeline run. Nil summary fields mean the
// analytic was disabled or failed; Failures lists the failed ones.
type Report struct {
	CompanyID uuid.UUID               `json:"company_id"`
	Health    *types.HealthSummary    `json:"health,omitempty"`
	Risk      *types.RiskSummary      `json:"risk,omitempty"`
	Credit    *types.CreditSummary    `json:"credit,omitempty"`
	Forecast  *types.ForecastResult   `json:"forecast,omitempty"`
	Benchmark *types.BenchmarkSummary `json:"benchmark,omitempty"`
	Failures  []Failure               `json:"failures,omitempty"`
}

// Ok reports whether every enabled analytic succeeded.
func (r *Report) Ok() bool {
	return len(r.Failures) == 0
}

func (r *Report) fail(analytic string, err error) {
	r.Failures = append(r.Failures, Failure{Analytic: analytic, Err: err, Message: err.Error()})
}

// Runner wires the calculators to the store.
type Runner struct {
	cfg        *store.Config
	statements interfaces.StatementSource
	summaries  interfaces.SummarySink
	forecasts  interfaces.ForecastSink
	benchmarks interfaces.BenchmarkSource

	health    *health.Scorer
	risk      *risk.Analyzer
	credit    *credit.Scorer
	forecast  *forecast.Forecaster
	benchmark *benchmark.Analyzer
}

// NewRunner creates a pipeline runner.
func NewRunner(cfg *store.Config, statements interfaces.StatementSource, summaries interfaces.SummarySink,
	forecasts interfaces.ForecastSink, benchmarks interfaces.BenchmarkSource) *Runner {
	return &Runner{
		cfg:        cfg,
		statements: statements,
		summaries:  summaries,
		forecasts:  forecasts,
		benchmarks: benchmarks,
		health:     health.NewScorer(),
		risk:       risk.NewAnalyzer(),
		credit:     credit.NewScorer(),
		forecast:   forecast.NewForecaster(),
		benchmark:  benchmark.NewAnalyzer(),
	}
}

// Ingest derives the statement's ratios, upserts it and reruns the
// company's analytics. This is the write path for every statement upload
// or correction.
func (r *Runner) Ingest(ctx context.Context, st *types.MonthlyStatement) (*Report, error) {
	m := metrics.Calculate(st)
	st.GrossMargin = m.GrossProfitMargin
	st.NetMargin = m.NetProfitMargin
	st.CurrentRatio = m.CurrentRatio
	st.DebtToEquity = m.DebtToEquity

	if err := r.statements.Upsert(ctx, st); err != nil {
		return nil, fmt.Errorf("pipeline: statement upsert failed: %w", err)
	}
	logger.Info(ctx, "Statement upserted", "company_id", st.CompanyID.String(), "month", st.Month)

	return r.Run(ctx, st.CompanyID)
}

// Run recomputes every enabled analytic for one company. The returned
// error covers only run-level problems (history could not be loaded);
// per-analytic errors land in the report.
func (r *Runner) Run(ctx context.Context, companyID uuid.UUID) (*Report, error) {
	timer := logger.StartOperation(ctx, "analytics_run", "company_id", companyID.String())
	ctx = timer.GetContext()

	history, err := r.statements.Recent(ctx, companyID, r.cfg.Pipeline.HistoryMonths)
	if err != nil {
		err = fmt.Errorf("pipeline: loading history: %w", err)
		timer.EndWithError(err)
		return nil, err
	}

	report := &Report{CompanyID: companyID}
	a := r.cfg.Pipeline.Analytics

	if a.Health {
		r.runHealth(ctx, companyID, history, report)
	}
	if a.Risk {
		r.runRisk(ctx, companyID, history, report)
	}
	if a.Credit {
		r.runCredit(ctx, companyID, history, report)
	}
	if a.Forecast {
		r.runForecast(ctx, companyID, history, report)
	}
	if a.Benchmark {
		r.runBenchmark(ctx, companyID, history, report)
	}

	timer.End("failures", len(report.Failures))
	return report, nil
}

// RunAll recomputes analytics for every company with statements.
func (r *Runner) RunAll(ctx context.Context) ([]*Report, error) {
	ids, err := r.statements.CompanyIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: listing companies: %w", err)
	}

	reports := make([]*Report, 0, len(ids))
	for _, id := range ids {
		report, err := r.Run(ctx, id)
		if err != nil {
			logger.ErrorWithErr(ctx, "Analytics run failed", err, "company_id", id.String())
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *Runner) runHealth(ctx context.Context, companyID uuid.UUID, history []types.MonthlyStatement, report *Report) {
	summary := r.health.Score(companyID, history)
	if err := r.summaries.SaveHealth(ctx, &summary); err != nil {
		logger.ErrorWithErr(ctx, "Failed to save health summary", err, "company_id", companyID.String())
		report.fail("health", err)
		return
	}
	report.Health = &summary
	logger.Score(ctx, companyID.String(), "health", types.Value(summary.HealthScore), summary.HealthCategory)
}

func (r *Runner) runRisk(ctx context.Context, companyID uuid.UUID, history []types.MonthlyStatement, report *Report) {
	summary := r.risk.Analyze(companyID, history)
	if err := r.summaries.SaveRisk(ctx, &summary); err != nil {
		logger.ErrorWithErr(ctx, "Failed to save risk summary", err, "company_id", companyID.String())
		report.fail("risk", err)
		return
	}
	report.Risk = &summary
	logger.Score(ctx, companyID.String(), "risk", types.Value(summary.OverallRiskScore), string(summary.OverallRiskLevel))
}

func (r *Runner) runCredit(ctx context.Context, companyID uuid.UUID, history []types.MonthlyStatement, report *Report) {
	// The fresh risk summary sharpens the leverage component when the
	// risk analytic ran first.
	summary := r.credit.Score(companyID, history, report.Risk)
	if err := r.summaries.SaveCredit(ctx, &summary); err != nil {
		logger.ErrorWithErr(ctx, "Failed to save credit summary", err, "company_id", companyID.String())
		report.fail("credit", err)
		return
	}
	report.Credit = &summary
	logger.Score(ctx, companyID.String(), "credit", types.Value(summary.CreditScore), summary.CreditRating)
}

func (r *Runner) runForecast(ctx context.Context, companyID uuid.UUID, history []types.MonthlyStatement, report *Report) {
	scenario := types.Scenario(r.cfg.Pipeline.DefaultScenario)
	result, err := r.forecast.Generate(companyID, history, r.cfg.Pipeline.ForecastMonths, scenario)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to generate forecast", err, "company_id", companyID.String())
		report.fail("forecast", err)
		return
	}
	if err := r.forecasts.Replace(ctx, &result); err != nil {
		logger.ErrorWithErr(ctx, "Failed to store forecast", err, "company_id", companyID.String())
		report.fail("forecast", err)
		return
	}
	report.Forecast = &result
	logger.Forecast(ctx, companyID.String(), string(result.ForecastType), result.MonthsAhead,
		types.Value(result.ConfidenceScore))
}

func (r *Runner) runBenchmark(ctx context.Context, companyID uuid.UUID, history []types.MonthlyStatement, report *Report) {
	industry := r.cfg.Benchmark.IndustryOverrides[companyID.String()]
	if industry == "" && len(history) > 0 {
		industry = benchmark.Classify(history[len(history)-1])
	}

	var stored []types.BenchmarkEntry
	if industry != "" {
		var err error
		stored, err = r.benchmarks.ForIndustry(ctx, industry)
		if err != nil {
			// Defaults still produce a usable comparison.
			logger.Warn(ctx, "Falling back to default benchmarks", "company_id", companyID.String(), "error", err)
			stored = nil
		}
	}

	summary := r.benchmark.Analyze(companyID, history, industry, stored)
	if err := r.summaries.SaveBenchmark(ctx, &summary); err != nil {
		logger.ErrorWithErr(ctx, "Failed to save benchmark summary", err, "company_id", companyID.String())
		report.fail("benchmark", err)
		return
	}
	report.Benchmark = &summary
	logger.Score(ctx, companyID.String(), "benchmark", summary.Overall.OverallPercentile, summary.IndustryType)
}
