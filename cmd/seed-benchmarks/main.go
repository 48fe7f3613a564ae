package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"finsight-analytics/internal/benchmark"
	"finsight-analytics/internal/store"
)

// Loads the built-in industry benchmark table into the database so
// operators can tune quartiles without a rebuild.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	industry := flag.String("industry", "", "seed a single industry (default: all)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := store.InitDB(ctx, cfg); err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries := benchmark.AllDefaultEntries()
	if *industry != "" {
		entries = benchmark.DefaultEntries(*industry)
	}

	repo := store.NewBenchmarkRepo()
	if err := repo.Seed(ctx, entries); err != nil {
		fmt.Printf("Error seeding benchmarks: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d benchmark rows\n", len(entries))
}
