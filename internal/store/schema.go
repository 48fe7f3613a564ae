package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema matches the analytics data model: one statement row per company
// and month, one cached summary row per company and analytic, and a
// replaceable projection set per company and forecast type.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS monthly_statements (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		month TEXT NOT NULL,
		revenue DOUBLE PRECISION,
		operating_expense DOUBLE PRECISION,
		interest_expense DOUBLE PRECISION,
		tax_expense DOUBLE PRECISION,
		net_income DOUBLE PRECISION,
		gross_profit DOUBLE PRECISION,
		cost_of_goods_sold DOUBLE PRECISION,
		operating_income DOUBLE PRECISION,
		total_assets DOUBLE PRECISION,
		current_assets DOUBLE PRECISION,
		current_liabilities DOUBLE PRECISION,
		equity DOUBLE PRECISION,
		cash DOUBLE PRECISION,
		accounts_receivable DOUBLE PRECISION,
		accounts_payable DOUBLE PRECISION,
		inventory DOUBLE PRECISION,
		short_term_debt DOUBLE PRECISION,
		long_term_debt DOUBLE PRECISION,
		operating_cash_flow DOUBLE PRECISION,
		gross_margin DOUBLE PRECISION,
		net_margin DOUBLE PRECISION,
		current_ratio DOUBLE PRECISION,
		debt_to_equity DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT company_month_uc UNIQUE (company_id, month)
	)`,
	`CREATE TABLE IF NOT EXISTS health_summaries (
		company_id UUID PRIMARY KEY,
		health_score DOUBLE PRECISION,
		health_category TEXT NOT NULL,
		summary_json JSONB NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS risk_summaries (
		company_id UUID PRIMARY KEY,
		overall_risk_score DOUBLE PRECISION,
		overall_risk_level TEXT NOT NULL,
		summary_json JSONB NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS credit_summaries (
		company_id UUID PRIMARY KEY,
		credit_score DOUBLE PRECISION,
		credit_rating TEXT NOT NULL,
		summary_json JSONB NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS benchmark_summaries (
		company_id UUID PRIMARY KEY,
		industry_type TEXT NOT NULL,
		overall_percentile DOUBLE PRECISION,
		summary_json JSONB NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS forecast_projections (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		forecast_type TEXT NOT NULL,
		projection_month TEXT NOT NULL,
		projected_revenue DOUBLE PRECISION NOT NULL,
		projected_expenses DOUBLE PRECISION NOT NULL,
		projected_net_income DOUBLE PRECISION NOT NULL,
		projected_cash_flow DOUBLE PRECISION NOT NULL,
		months_used INTEGER NOT NULL,
		revenue_growth_rate DOUBLE PRECISION,
		expense_growth_rate DOUBLE PRECISION,
		cash_flow_volatility DOUBLE PRECISION,
		confidence_score DOUBLE PRECISION,
		CONSTRAINT company_type_month_uc UNIQUE (company_id, forecast_type, projection_month)
	)`,
	`CREATE TABLE IF NOT EXISTS industry_benchmarks (
		id UUID PRIMARY KEY,
		industry_type TEXT NOT NULL,
		metric_name TEXT NOT NULL,
		industry_avg DOUBLE PRECISION NOT NULL,
		top_quartile DOUBLE PRECISION NOT NULL,
		bottom_quartile DOUBLE PRECISION NOT NULL,
		sample_size INTEGER NOT NULL DEFAULT 0,
		CONSTRAINT industry_metric_uc UNIQUE (industry_type, metric_name)
	)`,
}

func bootstrapSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}
	return nil
}
