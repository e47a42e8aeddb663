package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"news-relay/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	outPath := flag.String("out", "", "output path, overrides the configured one")
	flag.Parse()

	cfg, err := pipeline.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: loading config: %v\n", err)
		os.Exit(1)
	}
	if *outPath != "" {
		cfg.Output = *outPath
	}

	fetcher := pipeline.NewFetcher(cfg.Fetch)
	result := pipeline.CollectAll(cfg, fetcher)

	xml, err := pipeline.BuildFeed(result.Items, cfg, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: building feed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(cfg.Output, []byte(xml), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: writing %s: %v\n", cfg.Output, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "INFO: wrote %s (%s)\n", cfg.Output, result.Summary())
}
