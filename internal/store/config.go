package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finsight-analytics/internal/types"
)

type Config struct {
	Database struct {
		URLEnv          string `yaml:"url_env"`
		MaxConns        int32  `yaml:"max_conns"`
		BootstrapSchema bool   `yaml:"bootstrap_schema"`
	} `yaml:"database"`
	Pipeline struct {
		HistoryMonths   int    `yaml:"history_months"`
		ForecastMonths  int    `yaml:"forecast_months"`
		DefaultScenario string `yaml:"default_scenario"`
		Analytics       struct {
			Health    bool `yaml:"health"`
			Risk      bool `yaml:"risk"`
			Credit    bool `yaml:"credit"`
			Forecast  bool `yaml:"forecast"`
			Benchmark bool `yaml:"benchmark"`
		} `yaml:"analytics"`
	} `yaml:"pipeline"`
	Benchmark struct {
		// Per-company industry pins, keyed by company UUID. Pinned
		// companies skip classification.
		IndustryOverrides map[string]string `yaml:"industry_overrides"`
	} `yaml:"benchmark"`
}

func (c *Config) Validate() error {
	if c.Pipeline.HistoryMonths < 2 {
		return fmt.Errorf("pipeline.history_months must be at least 2, got %d", c.Pipeline.HistoryMonths)
	}
	if c.Pipeline.ForecastMonths < 1 || c.Pipeline.ForecastMonths > 24 {
		return fmt.Errorf("pipeline.forecast_months must be between 1-24, got %d", c.Pipeline.ForecastMonths)
	}
	if !types.Scenario(c.Pipeline.DefaultScenario).Valid() {
		return fmt.Errorf("pipeline.default_scenario must be 'Base', 'Optimistic', or 'Conservative', got '%s'", c.Pipeline.DefaultScenario)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Pipeline.HistoryMonths == 0 {
		c.Pipeline.HistoryMonths = 12
	}
	if c.Pipeline.ForecastMonths == 0 {
		c.Pipeline.ForecastMonths = 6
	}
	if c.Pipeline.DefaultScenario == "" {
		c.Pipeline.DefaultScenario = string(types.ScenarioBase)
	}

	// A config with no analytics listed means all of them.
	a := &c.Pipeline.Analytics
	if !a.Health && !a.Risk && !a.Credit && !a.Forecast && !a.Benchmark {
		a.Health, a.Risk, a.Credit, a.Forecast, a.Benchmark = true, true, true, true, true
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
