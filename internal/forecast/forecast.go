// Package forecast projects revenue, expenses and cash flow forward from
// recent history. Growth rates are compounded from the trailing window,
// biased per scenario in proportion to observed volatility, and paired
// with a cash runway estimate and a confidence score.
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"finsight-analytics/internal/stats"
	"finsight-analytics/internal/types"
)

const (
	// MinHistoryMonths is the least history a forecast can be built from.
	MinHistoryMonths = 3
	// MaxHistoryMonths caps the trailing window fed into growth rates.
	MaxHistoryMonths = 6

	// Projected cash flow is this share of projected net income.
	cashFlowRatio = 0.8
	// RunwayUnlimited is reported when no cash burn exists.
	RunwayUnlimited = 999.99

	monthLayout = "2006-01"
)

// Forecaster builds deterministic projections. Stateless and safe for
// concurrent use.
type Forecaster struct{}

func NewForecaster() *Forecaster { return &Forecaster{} }

// Generate projects monthsAhead months from the company's history, oldest
// month first. Only the trailing MaxHistoryMonths are used. With fewer
// than MinHistoryMonths it returns the empty sentinel and no error; a
// malformed month label is a data error.
func (f *Forecaster) Generate(companyID uuid.UUID, history []types.MonthlyStatement, monthsAhead int, scenario types.Scenario) (types.ForecastResult, error) {
	if !scenario.Valid() {
		return types.ForecastResult{}, fmt.Errorf("forecast: unknown scenario %q", scenario)
	}
	if len(history) > MaxHistoryMonths {
		history = history[len(history)-MaxHistoryMonths:]
	}
	if len(history) < MinHistoryMonths {
		return types.ForecastResult{
			CompanyID:    companyID,
			ForecastType: scenario,
			Projections:  []types.Projection{},
		}, nil
	}

	n := len(history)
	revenues := make([]float64, n)
	expenses := make([]float64, n)
	cashFlows := make([]float64, n)
	for i, st := range history {
		revenues[i] = types.Value(st.Revenue)
		expenses[i] = types.Value(st.OperatingExpense)
		cashFlows[i] = types.Value(st.OperatingCashFlow)
	}

	revenueGrowth := stats.GrowthRate(revenues)
	expenseGrowth := stats.GrowthRate(expenses)
	volatility := stats.Stability(cashFlows)
	revenueGrowth, expenseGrowth = adjustForScenario(revenueGrowth, expenseGrowth, scenario, volatility)

	lastMonth, err := time.Parse(monthLayout, history[n-1].Month)
	if err != nil {
		return types.ForecastResult{}, fmt.Errorf("forecast: bad month label %q: %w", history[n-1].Month, err)
	}

	projections := project(revenues[n-1], expenses[n-1], lastMonth, revenueGrowth, expenseGrowth, monthsAhead)
	runway := runwayMonths(cashFlows, projections)
	confidence := confidenceScore(n, volatility, scenario)

	return types.ForecastResult{
		CompanyID:            companyID,
		ForecastType:         scenario,
		MonthsAhead:          monthsAhead,
		HistoricalMonthsUsed: n,
		Projections:          projections,
		RunwayMonths:         types.Float(round2(runway)),
		ConfidenceScore:      types.Float(round2(confidence)),
		RevenueGrowthRate:    types.Float(revenueGrowth),
		ExpenseGrowthRate:    types.Float(expenseGrowth),
		CashFlowVolatility:   types.Float(volatility),
	}, nil
}

// adjustForScenario biases the growth rates. The bias shrinks as cash
// flows get more volatile, so erratic companies are not promised much
// upside either way.
func adjustForScenario(revenueGrowth, expenseGrowth float64, scenario types.Scenario, volatility float64) (float64, float64) {
	factor := math.Min(1.5, math.Max(0.5, 1-volatility))

	switch scenario {
	case types.ScenarioOptimistic:
		return revenueGrowth * (1 + 0.2*factor), expenseGrowth * (1 - 0.1*factor)
	case types.ScenarioConservative:
		return revenueGrowth * (1 - 0.2*factor), expenseGrowth * (1 + 0.1*factor)
	default:
		return revenueGrowth, expenseGrowth
	}
}

func project(lastRevenue, lastExpense float64, lastMonth time.Time, revenueGrowth, expenseGrowth float64, monthsAhead int) []types.Projection {
	projections := make([]types.Projection, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		revenue := lastRevenue * math.Pow(1+revenueGrowth, float64(i))
		expense := lastExpense * math.Pow(1+expenseGrowth, float64(i))
		netIncome := revenue - expense
		projections = append(projections, types.Projection{
			Month:     lastMonth.AddDate(0, i, 0).Format(monthLayout),
			Revenue:   round2(revenue),
			Expenses:  round2(expense),
			NetIncome: round2(netIncome),
			CashFlow:  round2(netIncome * cashFlowRatio),
		})
	}
	return projections
}

// runwayMonths divides the current cash proxy (last positive cash flow) by
// the average monthly burn, blending historical and projected negative
// months. RunwayUnlimited when nothing burns cash.
func runwayMonths(cashFlows []float64, projections []types.Projection) float64 {
	currentCash := math.Max(0, cashFlows[len(cashFlows)-1])

	var histBurn float64
	histNegative := 0
	for _, cf := range cashFlows {
		if cf < 0 {
			histBurn += cf
			histNegative++
		}
	}
	avgBurn := 0.0
	if histNegative > 0 {
		avgBurn = math.Abs(histBurn / float64(histNegative))
	}

	var projBurn float64
	projNegative := 0
	for _, p := range projections {
		if p.CashFlow < 0 {
			projBurn += p.CashFlow
			projNegative++
		}
	}
	if projNegative > 0 {
		avgBurn = (avgBurn*float64(histNegative) + math.Abs(projBurn)) / float64(histNegative+projNegative)
	}

	if avgBurn == 0 {
		return RunwayUnlimited
	}
	return currentCash / avgBurn
}

// confidenceScore starts from data availability, penalizes volatility and
// discounts the biased scenarios. Clamped to [0, 100].
func confidenceScore(dataMonths int, volatility float64, scenario types.Scenario) float64 {
	var base float64
	switch {
	case dataMonths >= 6:
		base = 80
	case dataMonths >= 4:
		base = 60
	default:
		base = 40
	}

	base -= math.Min(30, volatility*30)

	switch scenario {
	case types.ScenarioOptimistic:
		base *= 0.8
	case types.ScenarioConservative:
		base *= 0.9
	}
	return math.Max(0, math.Min(100, base))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
