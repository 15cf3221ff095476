// Package main provides the categorize command: read a vacancies CSV,
// assign an engineering field to each record and write the enriched CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vacradar/internal/classify"
	"vacradar/internal/config"
	"vacradar/internal/logger"
	"vacradar/internal/report"
)

const defaultConfigPath = "configs/scanner.yaml"

func main() {
	configPath := flag.String("config", "", "Path to YAML config (defaults apply when omitted)")
	input := flag.String("input", "", "Vacancies CSV to categorize (defaults to scanner output)")
	output := flag.String("output", "", "Categorized CSV destination (defaults to scanner output dir)")
	flag.Parse()

	// Optional environment (OPENAI_API_KEY) from .env
	_ = godotenv.Load()

	cfg := config.Default()

	path := *configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	if path != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", path)

		loaded, err := config.LoadConfig(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	inputPath := *input
	if inputPath == "" {
		inputPath = cfg.Scanner.Output.VacanciesPath()
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = cfg.Scanner.Output.CategorizedPath()
	}

	log := logger.NewLogger(cfg.Scanner.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := report.ReadVacanciesCSV(inputPath)
	if err != nil {
		log.Error("failed to read vacancies CSV", "path", inputPath, "error", err)
		os.Exit(1)
	}

	log.Info("loaded vacancies", "path", inputPath, "records", len(records))

	engine := buildEngine(cfg, log)

	startTime := time.Now()

	if err := engine.Apply(ctx, records); err != nil {
		log.Error("categorization aborted", "error", err)
		os.Exit(1)
	}

	log.Info("categorization complete", "records", len(records), "elapsed", time.Since(startTime).Round(time.Second))

	if err := report.WriteCategorizedCSV(outputPath, records); err != nil {
		log.Error("failed to write categorized CSV", "error", err)
		os.Exit(1)
	}

	log.Info("categorized CSV written", "path", outputPath)

	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.FieldType]++
	}

	fmt.Println("\nField distribution:")

	for _, field := range classify.FieldTypes() {
		if counts[field] > 0 {
			fmt.Printf("  %-22s %d\n", field, counts[field])
		}
	}

	if counts[classify.FieldUnknown] > 0 {
		fmt.Printf("  %-22s %d\n", classify.FieldUnknown, counts[classify.FieldUnknown])
	}
}

// buildEngine picks the LLM categorizer when enabled and a key is
// present, falling back to keyword heuristics otherwise.
func buildEngine(cfg *config.Config, log *logger.Logger) *classify.Engine {
	apiKey := os.Getenv("OPENAI_API_KEY")

	if !cfg.Features.EnableLLMCategories || apiKey == "" {
		if cfg.Features.EnableLLMCategories {
			log.Warn("OPENAI_API_KEY is not set, using keyword heuristics")
		}

		return classify.NewEngine(nil, log, nil)
	}

	client := classify.NewLLMClient(apiKey, cfg.Classify.BaseURL, cfg.Classify.Model, cfg.Classify.MaxRetries)

	pause := func(ctx context.Context) error {
		timer := time.NewTimer(cfg.Classify.GetSleep())
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}

	log.Info("using LLM categorizer", "model", cfg.Classify.Model)

	return classify.NewEngine(client, log, pause)
}
