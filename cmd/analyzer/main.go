package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"finsight-analytics/internal/logger"
	"finsight-analytics/internal/pipeline"
	"finsight-analytics/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	company := flag.String("company", "", "company UUID to analyze (default: all companies)")
	months := flag.Int("months", 0, "override history window in months")
	scenario := flag.String("scenario", "", "override forecast scenario: Base, Optimistic, or Conservative")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *months > 0 {
		cfg.Pipeline.HistoryMonths = *months
	}
	if *scenario != "" {
		cfg.Pipeline.DefaultScenario = *scenario
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	if err := store.InitDB(ctx, cfg); err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	defer logger.Shutdown(context.Background())

	runner := pipeline.NewRunner(cfg,
		store.NewStatementRepo(),
		store.NewSummaryRepo(),
		store.NewForecastRepo(),
		store.NewBenchmarkRepo())

	var reports []*pipeline.Report
	if *company != "" {
		companyID, err := uuid.Parse(*company)
		if err != nil {
			fmt.Printf("Error: invalid company UUID %q\n", *company)
			os.Exit(1)
		}
		report, err := runner.Run(ctx, companyID)
		if err != nil {
			fmt.Printf("Error running analytics: %v\n", err)
			os.Exit(1)
		}
		reports = append(reports, report)
	} else {
		reports, err = runner.RunAll(ctx)
		if err != nil {
			fmt.Printf("Error running analytics: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		fmt.Printf("Error rendering reports: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	failed := 0
	for _, r := range reports {
		if !r.Ok() {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("%d of %d companies had failed analytics\n", failed, len(reports))
		os.Exit(1)
	}
}
