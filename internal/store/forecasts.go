package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"finsight-analytics/internal/types"
)

// ForecastRepo handles stored forecast projections.
type ForecastRepo struct{}

func NewForecastRepo() *ForecastRepo {
	return &ForecastRepo{}
}

// Replace swaps out every projection for the forecast's (company, type)
// pair in a single transaction, so readers never observe a mix of old and
// new rows.
func (r *ForecastRepo) Replace(ctx context.Context, f *types.ForecastResult) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin forecast transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM forecast_projections WHERE company_id = $1 AND forecast_type = $2`,
		f.CompanyID, string(f.ForecastType))
	if err != nil {
		return fmt.Errorf("failed to delete old projections: %w", err)
	}

	query := `
		INSERT INTO forecast_projections (
			id, company_id, forecast_type, projection_month,
			projected_revenue, projected_expenses, projected_net_income, projected_cash_flow,
			months_used, revenue_growth_rate, expense_growth_rate,
			cash_flow_volatility, confidence_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for _, p := range f.Projections {
		_, err = tx.Exec(ctx, query,
			uuid.New(), f.CompanyID, string(f.ForecastType), p.Month,
			p.Revenue, p.Expenses, p.NetIncome, p.CashFlow,
			f.HistoricalMonthsUsed, f.RevenueGrowthRate, f.ExpenseGrowthRate,
			f.CashFlowVolatility, f.ConfidenceScore)
		if err != nil {
			return fmt.Errorf("failed to insert projection %s: %w", p.Month, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit forecast: %w", err)
	}
	return nil
}

// Projections returns the stored projections for a (company, type) pair,
// ordered by month.
func (r *ForecastRepo) Projections(ctx context.Context, companyID uuid.UUID, scenario types.Scenario) ([]types.Projection, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT projection_month, projected_revenue, projected_expenses,
			projected_net_income, projected_cash_flow
		FROM forecast_projections
		WHERE company_id = $1 AND forecast_type = $2
		ORDER BY projection_month`

	rows, err := pool.Query(ctx, query, companyID, string(scenario))
	if err != nil {
		return nil, fmt.Errorf("failed to load projections: %w", err)
	}
	defer rows.Close()

	var projections []types.Projection
	for rows.Next() {
		var p types.Projection
		if err := rows.Scan(&p.Month, &p.Revenue, &p.Expenses, &p.NetIncome, &p.CashFlow); err != nil {
			return nil, fmt.Errorf("failed to scan projection: %w", err)
		}
		projections = append(projections, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projections: %w", err)
	}
	return projections, nil
}
