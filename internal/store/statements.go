package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finsight-analytics/internal/types"
)

// StatementRepo handles monthly statement rows.
type StatementRepo struct{}

func NewStatementRepo() *StatementRepo {
	return &StatementRepo{}
}

const statementColumns = `id, company_id, month,
	revenue, operating_expense, interest_expense, tax_expense, net_income,
	gross_profit, cost_of_goods_sold, operating_income,
	total_assets, current_assets, current_liabilities, equity, cash,
	accounts_receivable, accounts_payable, inventory,
	short_term_debt, long_term_debt, operating_cash_flow,
	gross_margin, net_margin, current_ratio, debt_to_equity,
	created_at, updated_at`

// Upsert inserts or corrects a statement keyed by (company, month), so a
// re-uploaded month overwrites the earlier figures in place.
func (r *StatementRepo) Upsert(ctx context.Context, st *types.MonthlyStatement) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO monthly_statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
			$26, $27, $27)
		ON CONFLICT (company_id, month)
		DO UPDATE SET
			revenue = EXCLUDED.revenue,
			operating_expense = EXCLUDED.operating_expense,
			interest_expense = EXCLUDED.interest_expense,
			tax_expense = EXCLUDED.tax_expense,
			net_income = EXCLUDED.net_income,
			gross_profit = EXCLUDED.gross_profit,
			cost_of_goods_sold = EXCLUDED.cost_of_goods_sold,
			operating_income = EXCLUDED.operating_income,
			total_assets = EXCLUDED.total_assets,
			current_assets = EXCLUDED.current_assets,
			current_liabilities = EXCLUDED.current_liabilities,
			equity = EXCLUDED.equity,
			cash = EXCLUDED.cash,
			accounts_receivable = EXCLUDED.accounts_receivable,
			accounts_payable = EXCLUDED.accounts_payable,
			inventory = EXCLUDED.inventory,
			short_term_debt = EXCLUDED.short_term_debt,
			long_term_debt = EXCLUDED.long_term_debt,
			operating_cash_flow = EXCLUDED.operating_cash_flow,
			gross_margin = EXCLUDED.gross_margin,
			net_margin = EXCLUDED.net_margin,
			current_ratio = EXCLUDED.current_ratio,
			debt_to_equity = EXCLUDED.debt_to_equity,
			updated_at = EXCLUDED.updated_at;
	`

	_, err := pool.Exec(ctx, query,
		st.ID, st.CompanyID, st.Month,
		st.Revenue, st.OperatingExpense, st.InterestExpense, st.TaxExpense, st.NetIncome,
		st.GrossProfit, st.CostOfGoodsSold, st.OperatingIncome,
		st.TotalAssets, st.CurrentAssets, st.CurrentLiabilities, st.Equity, st.Cash,
		st.AccountsReceivable, st.AccountsPayable, st.Inventory,
		st.ShortTermDebt, st.LongTermDebt, st.OperatingCashFlow,
		st.GrossMargin, st.NetMargin, st.CurrentRatio, st.DebtToEquity,
		now)
	if err != nil {
		return fmt.Errorf("failed to upsert statement: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent statements for a company, ordered
// oldest month first so calculators can consume them directly.
func (r *StatementRepo) Recent(ctx context.Context, companyID uuid.UUID, limit int) ([]types.MonthlyStatement, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT ` + statementColumns + `
		FROM monthly_statements
		WHERE company_id = $1
		ORDER BY month DESC
		LIMIT $2`

	rows, err := pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load statements: %w", err)
	}
	defer rows.Close()

	var statements []types.MonthlyStatement
	for rows.Next() {
		var st types.MonthlyStatement
		err := rows.Scan(
			&st.ID, &st.CompanyID, &st.Month,
			&st.Revenue, &st.OperatingExpense, &st.InterestExpense, &st.TaxExpense, &st.NetIncome,
			&st.GrossProfit, &st.CostOfGoodsSold, &st.OperatingIncome,
			&st.TotalAssets, &st.CurrentAssets, &st.CurrentLiabilities, &st.Equity, &st.Cash,
			&st.AccountsReceivable, &st.AccountsPayable, &st.Inventory,
			&st.ShortTermDebt, &st.LongTermDebt, &st.OperatingCashFlow,
			&st.GrossMargin, &st.NetMargin, &st.CurrentRatio, &st.DebtToEquity,
			&st.CreatedAt, &st.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statements: %w", err)
	}

	// Newest-first from the query; reverse to oldest-first.
	for i, j := 0, len(statements)-1; i < j; i, j = i+1, j-1 {
		statements[i], statements[j] = statements[j], statements[i]
	}
	return statements, nil
}

// CompanyIDs lists every company with at least one statement.
func (r *StatementRepo) CompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT DISTINCT company_id FROM monthly_statements ORDER BY company_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read companies: %w", err)
	}
	return ids, nil
}
