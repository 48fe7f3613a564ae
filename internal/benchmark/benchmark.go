// Package benchmark compares a company's latest metrics against industry
// quartiles. The industry is either supplied by the caller or derived from
// coarse financial characteristics; quartile tables come from the store
// with the embedded defaults as fallback.
package benchmark

import (
	"math"
	"time"

	"github.com/google/uuid"

	"finsight-analytics/internal/stats"
	"finsight-analytics/internal/types"
)

// Sentinels for companies with no statements at all.
const (
	IndustryUnknown   = "Unknown"
	descriptionNoData = "No data available"
	summaryNoData     = "Upload financial data to generate benchmarking analysis"
)

// Analyzer performs benchmark comparisons. Stateless and safe for
// concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze benchmarks a company's history, oldest month first. industry may
// be empty, in which case it is classified from the latest statement.
// stored carries benchmark rows already filtered to the industry; when
// empty the embedded defaults are used.
func (a *Analyzer) Analyze(companyID uuid.UUID, history []types.MonthlyStatement, industry string, stored []types.BenchmarkEntry) types.BenchmarkSummary {
	if len(history) == 0 {
		return types.BenchmarkSummary{
			CompanyID:           companyID,
			IndustryType:        IndustryUnknown,
			IndustryDescription: descriptionNoData,
			CompanyMetrics:      map[string]float64{},
			Results:             map[string]types.MetricComparison{},
			Overall: types.OverallStanding{
				SummaryText: summaryNoData,
			},
			LastUpdated: time.Now().UTC(),
		}
	}

	latest := history[len(history)-1]
	if industry == "" {
		industry = Classify(latest)
	}

	companyMetrics := companyMetrics(latest, history)
	table := benchmarkTable(industry, stored)

	results := map[string]types.MetricComparison{}
	for name, value := range companyMetrics {
		q, ok := table[name]
		if !ok {
			continue
		}
		pct := percentile(value, q)
		results[name] = types.MetricComparison{
			Value:            value,
			IndustryAvg:      q.avg,
			Percentile:       pct,
			Status:           status(pct),
			DeviationPercent: deviation(value, q.avg),
			TopQuartile:      q.top,
			BottomQuartile:   q.bottom,
		}
	}

	return types.BenchmarkSummary{
		CompanyID:           companyID,
		IndustryType:        industry,
		IndustryDescription: IndustryDescription(industry),
		CompanyMetrics:      companyMetrics,
		Results:             results,
		Overall:             overall(results),
		LastUpdated:         time.Now().UTC(),
	}
}

// Classify buckets a company by gross margin, revenue scale and asset base.
// Deliberately coarse; an explicit industry always wins over this guess.
func Classify(latest types.MonthlyStatement) string {
	grossMargin := types.Value(latest.GrossMargin)
	revenue := types.Value(latest.Revenue)
	totalAssets := types.Value(latest.TotalAssets)

	switch {
	case grossMargin > 0.4 && revenue > 1_000_000:
		return "Technology"
	case grossMargin > 0.3 && totalAssets > 500_000:
		return "Manufacturing"
	case grossMargin > 0.2 && revenue < 1_000_000:
		return "Services"
	case grossMargin < 0.3:
		return "Retail"
	default:
		return "General"
	}
}

func companyMetrics(latest types.MonthlyStatement, history []types.MonthlyStatement) map[string]float64 {
	m := map[string]float64{
		"net_profit_margin": types.Value(latest.NetMargin),
		"gross_margin":      types.Value(latest.GrossMargin),
		"current_ratio":     types.Value(latest.CurrentRatio),
		"quick_ratio":       types.Value(latest.CurrentRatio) * 0.6,
		"debt_to_equity":    types.Value(latest.DebtToEquity),
	}

	m["operating_margin"] = 0
	if latest.OperatingExpense != nil && *latest.OperatingExpense != 0 &&
		latest.Revenue != nil && *latest.Revenue != 0 {
		m["operating_margin"] = (*latest.Revenue - *latest.OperatingExpense) / *latest.Revenue
	}

	m["revenue_growth_rate"] = 0
	if len(history) > 1 {
		revenues := make([]float64, len(history))
		for i, st := range history {
			revenues[i] = types.Value(st.Revenue)
		}
		m["revenue_growth_rate"] = stats.GrowthRate(revenues)
	}

	// Receivables/inventory/payables are not carried on the summary row,
	// so the cycle cannot be derived here yet.
	m["cash_conversion_cycle"] = 0

	return m
}

func benchmarkTable(industry string, stored []types.BenchmarkEntry) map[string]quartiles {
	if len(stored) > 0 {
		table := make(map[string]quartiles, len(stored))
		for _, e := range stored {
			table[e.MetricName] = quartiles{avg: e.IndustryAvg, top: e.TopQuartile, bottom: e.BottomQuartile}
		}
		return table
	}

	defaults := defaultBenchmarks[industry]
	if defaults == nil {
		defaults = defaultBenchmarks["General"]
	}
	return defaults
}

// percentile places a value inside the quartile bands with linear
// interpolation, extrapolating up to 100 above the top quartile and down
// to 0 below the bottom one.
func percentile(value float64, q quartiles) float64 {
	switch {
	case value >= q.top:
		return 75 + math.Min(25, (value-q.top)/q.top*25)
	case value >= q.avg:
		return 50 + (value-q.avg)/(q.top-q.avg)*25
	case value >= q.bottom:
		return 25 + (value-q.bottom)/(q.avg-q.bottom)*25
	default:
		return math.Max(0, value/q.bottom*25)
	}
}

func status(percentile float64) string {
	switch {
	case percentile >= 75:
		return "Top 25%"
	case percentile >= 60:
		return "Above Average"
	case percentile >= 40:
		return "Near Average"
	case percentile >= 25:
		return "Below Average"
	default:
		return "Bottom 25%"
	}
}

func deviation(value, industryAvg float64) float64 {
	if industryAvg == 0 {
		return 0
	}
	return (value - industryAvg) / industryAvg * 100
}

func overall(results map[string]types.MetricComparison) types.OverallStanding {
	if len(results) == 0 {
		return types.OverallStanding{SummaryText: descriptionNoData}
	}

	var sum float64
	aboveAvg := 0
	for _, r := range results {
		sum += r.Percentile
		if r.Percentile > 50 {
			aboveAvg++
		}
	}
	overallPct := sum / float64(len(results))

	var text string
	switch {
	case overallPct >= 75:
		text = "Excellent performance - significantly above industry standards"
	case overallPct >= 60:
		text = "Strong performance - above industry average"
	case overallPct >= 40:
		text = "Average performance - near industry standards"
	case overallPct >= 25:
		text = "Below average performance - room for improvement"
	default:
		text = "Poor performance - significantly below industry standards"
	}

	return types.OverallStanding{
		OverallPercentile: overallPct,
		MetricsAboveAvg:   aboveAvg,
		TotalMetrics:      len(results),
		SummaryText:       text,
	}
}
