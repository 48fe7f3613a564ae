package benchmark

import "finsight-analytics/internal/types"

// quartiles is one metric's default band: industry average plus the top and
// bottom quartile cut points. For inverse metrics (debt-to-equity, cash
// conversion cycle) the "top" quartile is numerically lower than the
// average.
type quartiles struct {
	avg    float64
	top    float64
	bottom float64
}

var industryDescriptions = map[string]string{
	"Retail":        "Retail and consumer goods",
	"Manufacturing": "Manufacturing and industrial",
	"Services":      "Professional services and consulting",
	"Technology":    "Technology and software",
	"General":       "General business across industries",
}

// defaultBenchmarks is the built-in quartile table used when no stored
// benchmarks exist for an industry. Seeded into the benchmark table by
// cmd/seed-benchmarks, which keeps this the single source of the numbers.
var defaultBenchmarks = map[string]map[string]quartiles{
	"Retail": {
		"net_profit_margin":     {0.03, 0.06, 0.01},
		"gross_margin":          {0.35, 0.45, 0.25},
		"current_ratio":         {1.5, 2.0, 1.0},
		"debt_to_equity":        {1.2, 0.8, 2.0},
		"revenue_growth_rate":   {0.08, 0.15, 0.02},
		"operating_margin":      {0.06, 0.10, 0.03},
		"quick_ratio":           {0.8, 1.2, 0.5},
		"cash_conversion_cycle": {45, 30, 60},
	},
	"Manufacturing": {
		"net_profit_margin":     {0.05, 0.08, 0.02},
		"gross_margin":          {0.30, 0.40, 0.20},
		"current_ratio":         {1.8, 2.5, 1.2},
		"debt_to_equity":        {1.5, 1.0, 2.5},
		"revenue_growth_rate":   {0.06, 0.12, 0.01},
		"operating_margin":      {0.10, 0.15, 0.05},
		"quick_ratio":           {1.0, 1.5, 0.7},
		"cash_conversion_cycle": {60, 45, 90},
	},
	"Services": {
		"net_profit_margin":     {0.12, 0.18, 0.06},
		"gross_margin":          {0.55, 0.65, 0.45},
		"current_ratio":         {1.6, 2.2, 1.1},
		"debt_to_equity":        {0.8, 0.5, 1.5},
		"revenue_growth_rate":   {0.10, 0.20, 0.03},
		"operating_margin":      {0.15, 0.22, 0.08},
		"quick_ratio":           {1.2, 1.8, 0.8},
		"cash_conversion_cycle": {30, 20, 45},
	},
	"Technology": {
		"net_profit_margin":     {0.15, 0.25, 0.08},
		"gross_margin":          {0.65, 0.75, 0.55},
		"current_ratio":         {2.0, 3.0, 1.3},
		"debt_to_equity":        {0.6, 0.3, 1.2},
		"revenue_growth_rate":   {0.25, 0.40, 0.10},
		"operating_margin":      {0.20, 0.30, 0.10},
		"quick_ratio":           {1.5, 2.5, 1.0},
		"cash_conversion_cycle": {25, 15, 40},
	},
	"General": {
		"net_profit_margin":     {0.08, 0.12, 0.04},
		"gross_margin":          {0.40, 0.50, 0.30},
		"current_ratio":         {1.7, 2.3, 1.2},
		"debt_to_equity":        {1.0, 0.7, 1.8},
		"revenue_growth_rate":   {0.08, 0.15, 0.02},
		"operating_margin":      {0.12, 0.18, 0.06},
		"quick_ratio":           {1.0, 1.5, 0.7},
		"cash_conversion_cycle": {40, 30, 60},
	},
}

// Industries lists every industry with a default benchmark set.
func Industries() []string {
	return []string{"Retail", "Manufacturing", "Services", "Technology", "General"}
}

// IndustryDescription returns the display description for an industry.
func IndustryDescription(industry string) string {
	if d, ok := industryDescriptions[industry]; ok {
		return d
	}
	return industryDescriptions["General"]
}

// DefaultEntries returns the built-in benchmark rows for one industry,
// falling back to General for unknown industries.
func DefaultEntries(industry string) []types.BenchmarkEntry {
	table, ok := defaultBenchmarks[industry]
	if !ok {
		industry = "General"
		table = defaultBenchmarks["General"]
	}
	entries := make([]types.BenchmarkEntry, 0, len(table))
	for name, q := range table {
		entries = append(entries, types.BenchmarkEntry{
			Industry:       industry,
			MetricName:     name,
			IndustryAvg:    q.avg,
			TopQuartile:    q.top,
			BottomQuartile: q.bottom,
		})
	}
	return entries
}

// AllDefaultEntries returns the full built-in table across industries.
func AllDefaultEntries() []types.BenchmarkEntry {
	var entries []types.BenchmarkEntry
	for _, industry := range Industries() {
		entries = append(entries, DefaultEntries(industry)...)
	}
	return entries
}
