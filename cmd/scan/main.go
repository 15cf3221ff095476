// Package main provides the scan command: fetch vacancies from hh.ru,
// process them and write the CSV/JSON reports.
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

	"vacradar/internal/aggregate"
	"vacradar/internal/config"
	"vacradar/internal/extractor"
	"vacradar/internal/hh"
	"vacradar/internal/logger"
	"vacradar/internal/models"
	"vacradar/internal/normalizer"
	"vacradar/internal/report"
)

const defaultConfigPath = "configs/scanner.yaml"

func main() {
	configPath := flag.String("config", "", "Path to YAML config (defaults apply when omitted)")
	outDir := flag.String("out", "", "Override output directory")
	searchText := flag.String("text", "", "Override search text")
	pages := flag.Int("pages", -1, "Override number of pages to scan (0 = all)")
	flag.Parse()

	// Optional environment (HH_ACCESS_TOKEN) from .env
	_ = godotenv.Load()

	cfg := config.Default()

	path := *configPath
	if path == "" {
		// Pick up the default config when it is present.
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

		fmt.Printf("✅ Configuration loaded: %s\n\n", cfg)
	}

	if *outDir != "" {
		cfg.Scanner.Output.Dir = *outDir
	}

	if *searchText != "" {
		cfg.Scanner.Search.Text = *searchText
	}

	if *pages >= 0 {
		cfg.Scanner.Search.Pages = *pages
	}

	log := logger.NewLogger(cfg.Scanner.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting scan", "search", cfg.Scanner.Search.Text, "area", cfg.Scanner.Search.Area)

	startTime := time.Now()

	client := hh.NewClient(
		hh.DefaultBaseURL,
		cfg.Scanner.Search.UserAgent,
		os.Getenv("HH_ACCESS_TOKEN"),
		&cfg.Scanner.Retry,
	)
	fetcher := hh.NewFetcher(client, &cfg.Scanner, log)

	raws, err := fetcher.Fetch(ctx)
	if err != nil {
		if !cfg.Features.ContinueOnFetchErrors || len(raws) == 0 {
			log.Error("fetch failed", "error", err)
			os.Exit(1)
		}

		log.Warn("fetch stopped early, reporting partial results", "error", err, "collected", len(raws))
	}

	log.Info("fetch complete", "vacancies", len(raws), "elapsed", time.Since(startTime).Round(time.Millisecond))

	processor := normalizer.NewProcessor(extractor.New(cfg.Scanner.Synonyms))

	records := make([]*models.VacancyRecord, 0, len(raws))

	for i := range raws {
		rec, err := processor.Process(&raws[i])
		if err != nil {
			log.Warn("skipping vacancy", "id", raws[i].ID, "error", err)

			continue
		}

		records = append(records, rec)
	}

	log.Info("processing complete", "records", len(records), "skipped", len(raws)-len(records))

	summary := aggregate.New(cfg.Scanner.Output.TopCount).Summarize(records)

	out := cfg.Scanner.Output

	if err := report.WriteVacanciesCSV(out.VacanciesPath(), records); err != nil {
		log.Error("failed to write vacancies CSV", "error", err)
		os.Exit(1)
	}

	if err := report.WriteTechRatingCSV(out.RatingPath(), summary); err != nil {
		log.Error("failed to write tech rating CSV", "error", err)
		os.Exit(1)
	}

	if err := report.WriteSummaryJSON(out.SummaryPath(), out.VacanciesPath(), summary, out.PrettyPrint); err != nil {
		log.Error("failed to write summary JSON", "error", err)
		os.Exit(1)
	}

	log.Info("reports written", "dir", out.Dir, "duration", time.Since(startTime).Round(time.Millisecond))

	fmt.Println("\nTop technologies:")
	fmt.Print(report.RenderTopTable(summary))
	fmt.Printf("\nVacancies: %d total, %d with salary\n", summary.TotalRecords, summary.WithSalary)
}
