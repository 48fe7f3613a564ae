package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"finsight-analytics/internal/types"
)

// BenchmarkRepo handles the industry benchmark quartile table.
type BenchmarkRepo struct{}

func NewBenchmarkRepo() *BenchmarkRepo {
	return &BenchmarkRepo{}
}

// ForIndustry returns the stored benchmark rows for one industry. An empty
// result is not an error; callers fall back to the embedded defaults.
func (r *BenchmarkRepo) ForIndustry(ctx context.Context, industry string) ([]types.BenchmarkEntry, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT industry_type, metric_name, industry_avg, top_quartile, bottom_quartile, sample_size
		FROM industry_benchmarks
		WHERE industry_type = $1
		ORDER BY metric_name`

	rows, err := pool.Query(ctx, query, industry)
	if err != nil {
		return nil, fmt.Errorf("failed to load benchmarks: %w", err)
	}
	defer rows.Close()

	var entries []types.BenchmarkEntry
	for rows.Next() {
		var e types.BenchmarkEntry
		if err := rows.Scan(&e.Industry, &e.MetricName, &e.IndustryAvg, &e.TopQuartile, &e.BottomQuartile, &e.SampleSize); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read benchmarks: %w", err)
	}
	return entries, nil
}

// Seed upserts benchmark rows keyed by (industry, metric). Used by the
// seeder to load the default table and by operators to override it.
func (r *BenchmarkRepo) Seed(ctx context.Context, entries []types.BenchmarkEntry) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO industry_benchmarks (
			id, industry_type, metric_name, industry_avg, top_quartile, bottom_quartile, sample_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (industry_type, metric_name)
		DO UPDATE SET
			industry_avg = EXCLUDED.industry_avg,
			top_quartile = EXCLUDED.top_quartile,
			bottom_quartile = EXCLUDED.bottom_quartile,
			sample_size = EXCLUDED.sample_size;
	`
	for _, e := range entries {
		_, err := pool.Exec(ctx, query,
			uuid.New(), e.Industry, e.MetricName, e.IndustryAvg, e.TopQuartile, e.BottomQuartile, e.SampleSize)
		if err != nil {
			return fmt.Errorf("failed to seed benchmark %s/%s: %w", e.Industry, e.MetricName, err)
		}
	}
	return nil
}
