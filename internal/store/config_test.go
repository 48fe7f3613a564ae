package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "pipeline:\n  history_months: 12\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected DATABASE_URL default, got %s", cfg.Database.URLEnv)
	}
	if cfg.Pipeline.ForecastMonths != 6 {
		t.Errorf("Expected forecast_months default 6, got %d", cfg.Pipeline.ForecastMonths)
	}
	if cfg.Pipeline.DefaultScenario != "Base" {
		t.Errorf("Expected default scenario Base, got %s", cfg.Pipeline.DefaultScenario)
	}
	a := cfg.Pipeline.Analytics
	if !a.Health || !a.Risk || !a.Credit || !a.Forecast || !a.Benchmark {
		t.Errorf("Expected all analytics enabled by default, got %+v", a)
	}
}

func TestLoadConfigPartialAnalytics(t *testing.T) {
	path := writeConfig(t, `
pipeline:
  history_months: 6
  forecast_months: 3
  default_scenario: Conservative
  analytics:
    health: true
    forecast: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	a := cfg.Pipeline.Analytics
	if !a.Health || !a.Forecast {
		t.Error("Expected health and forecast enabled")
	}
	if a.Risk || a.Credit || a.Benchmark {
		t.Errorf("Expected other analytics disabled, got %+v", a)
	}
	if cfg.Pipeline.DefaultScenario != "Conservative" {
		t.Errorf("Expected Conservative, got %s", cfg.Pipeline.DefaultScenario)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too little history", "pipeline:\n  history_months: 1\n"},
		{"too many forecast months", "pipeline:\n  history_months: 12\n  forecast_months: 48\n"},
		{"unknown scenario", "pipeline:\n  history_months: 12\n  default_scenario: Wild\n"},
	}
	for _, tt := range tests {
		path := writeConfig(t, tt.content)
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
