package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"finsight-analytics/internal/types"
)

// ErrNotFound is returned when no cached summary exists for a company.
var ErrNotFound = errors.New("summary not found")

// SummaryRepo handles the cached per-company analytics snapshots. Each
// summary lives in its own table as one row per company: a couple of
// queryable columns plus the full summary as JSONB.
type SummaryRepo struct{}

func NewSummaryRepo() *SummaryRepo {
	return &SummaryRepo{}
}

// SaveHealth upserts the health snapshot for the summary's company.
func (r *SummaryRepo) SaveHealth(ctx context.Context, s *types.HealthSummary) error {
	query := `
		INSERT INTO health_summaries (company_id, health_score, health_category, summary_json, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id)
		DO UPDATE SET
			health_score = EXCLUDED.health_score,
			health_category = EXCLUDED.health_category,
			summary_json = EXCLUDED.summary_json,
			last_updated = EXCLUDED.last_updated;
	`
	return r.save(ctx, "health", query, s.CompanyID, s.HealthScore, s.HealthCategory, s, s.LastUpdated)
}

// LoadHealth returns the cached health snapshot, ErrNotFound when absent.
func (r *SummaryRepo) LoadHealth(ctx context.Context, companyID uuid.UUID) (*types.HealthSummary, error) {
	var s types.HealthSummary
	if err := r.load(ctx, "health_summaries", companyID, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveRisk upserts the risk snapshot for the summary's company.
func (r *SummaryRepo) SaveRisk(ctx context.Context, s *types.RiskSummary) error {
	query := `
		INSERT INTO risk_summaries (company_id, overall_risk_score, overall_risk_level, summary_json, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id)
		DO UPDATE SET
			overall_risk_score = EXCLUDED.overall_risk_score,
			overall_risk_level = EXCLUDED.overall_risk_level,
			summary_json = EXCLUDED.summary_json,
			last_updated = EXCLUDED.last_updated;
	`
	return r.save(ctx, "risk", query, s.CompanyID, s.OverallRiskScore, string(s.OverallRiskLevel), s, s.LastUpdated)
}

// LoadRisk returns the cached risk snapshot, ErrNotFound when absent.
func (r *SummaryRepo) LoadRisk(ctx context.Context, companyID uuid.UUID) (*types.RiskSummary, error) {
	var s types.RiskSummary
	if err := r.load(ctx, "risk_summaries", companyID, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveCredit upserts the credit snapshot for the summary's company.
func (r *SummaryRepo) SaveCredit(ctx context.Context, s *types.CreditSummary) error {
	query := `
		INSERT INTO credit_summaries (company_id, credit_score, credit_rating, summary_json, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id)
		DO UPDATE SET
			credit_score = EXCLUDED.credit_score,
			credit_rating = EXCLUDED.credit_rating,
			summary_json = EXCLUDED.summary_json,
			last_updated = EXCLUDED.last_updated;
	`
	return r.save(ctx, "credit", query, s.CompanyID, s.CreditScore, s.CreditRating, s, s.LastUpdated)
}

// LoadCredit returns the cached credit snapshot, ErrNotFound when absent.
func (r *SummaryRepo) LoadCredit(ctx context.Context, companyID uuid.UUID) (*types.CreditSummary, error) {
	var s types.CreditSummary
	if err := r.load(ctx, "credit_summaries", companyID, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveBenchmark upserts the benchmark snapshot for the summary's company.
func (r *SummaryRepo) SaveBenchmark(ctx context.Context, s *types.BenchmarkSummary) error {
	query := `
		INSERT INTO benchmark_summaries (company_id, industry_type, overall_percentile, summary_json, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id)
		DO UPDATE SET
			industry_type = EXCLUDED.industry_type,
			overall_percentile = EXCLUDED.overall_percentile,
			summary_json = EXCLUDED.summary_json,
			last_updated = EXCLUDED.last_updated;
	`
	return r.save(ctx, "benchmark", query, s.CompanyID, s.IndustryType, s.Overall.OverallPercentile, s, s.LastUpdated)
}

// LoadBenchmark returns the cached benchmark snapshot, ErrNotFound when
// absent.
func (r *SummaryRepo) LoadBenchmark(ctx context.Context, companyID uuid.UUID) (*types.BenchmarkSummary, error) {
	var s types.BenchmarkSummary
	if err := r.load(ctx, "benchmark_summaries", companyID, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SummaryRepo) save(ctx context.Context, kind, query string, companyID uuid.UUID, colA, colB any, summary any, lastUpdated any) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal %s summary: %w", kind, err)
	}

	if _, err := pool.Exec(ctx, query, companyID, colA, colB, jsonData, lastUpdated); err != nil {
		return fmt.Errorf("failed to save %s summary: %w", kind, err)
	}
	return nil
}

func (r *SummaryRepo) load(ctx context.Context, table string, companyID uuid.UUID, dst any) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	query := `SELECT summary_json FROM ` + table + ` WHERE company_id = $1`
	if err := pool.QueryRow(ctx, query, companyID).Scan(&jsonData); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load from %s: %w", table, err)
	}
	if err := json.Unmarshal(jsonData, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s row: %w", table, err)
	}
	return nil
}
