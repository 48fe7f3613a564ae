package interfaces

import (
	"context"

	"github.com/google/uuid"

	"finsight-analytics/internal/types"
)

// StatementSource provides monthly statement history for analytics runs
type StatementSource interface {
	// Upsert inserts or corrects a statement keyed by (company, month)
	Upsert(ctx context.Context, st *types.MonthlyStatement) error

	// Recent returns up to limit most recent statements, oldest month first
	Recent(ctx context.Context, companyID uuid.UUID, limit int) ([]types.MonthlyStatement, error)

	// CompanyIDs lists every company with at least one statement
	CompanyIDs(ctx context.Context) ([]uuid.UUID, error)
}

// SummarySink stores the cached per-company analytics snapshots
type SummarySink interface {
	// SaveHealth upserts the health snapshot
	SaveHealth(ctx context.Context, s *types.HealthSummary) error

	// SaveRisk upserts the risk snapshot
	SaveRisk(ctx context.Context, s *types.RiskSummary) error

	// SaveCredit upserts the credit snapshot
	SaveCredit(ctx context.Context, s *types.CreditSummary) error

	// SaveBenchmark upserts the benchmark snapshot
	SaveBenchmark(ctx context.Context, s *types.BenchmarkSummary) error
}

// ForecastSink stores generated forecast projections
type ForecastSink interface {
	// Replace swaps out every projection for the forecast's (company, type) pair
	Replace(ctx context.Context, f *types.ForecastResult) error
}

// BenchmarkSource provides stored industry benchmark quartiles
type BenchmarkSource interface {
	// ForIndustry returns stored benchmark rows; empty means use defaults
	ForIndustry(ctx context.Context, industry string) ([]types.BenchmarkEntry, error)
}
