// Package main provides the report command: recompute technology ratings
// and summary statistics from an existing vacancies CSV.
package main

import (
	"flag"
	"fmt"
	"os"

	"vacradar/internal/aggregate"
	"vacradar/internal/config"
	"vacradar/internal/logger"
	"vacradar/internal/report"
)

const defaultConfigPath = "configs/scanner.yaml"

func main() {
	configPath := flag.String("config", "", "Path to YAML config (defaults apply when omitted)")
	input := flag.String("input", "", "Vacancies CSV to summarize (defaults to categorized output, then scanner output)")
	flag.Parse()

	cfg := config.Default()

	path := *configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	out := cfg.Scanner.Output

	inputPath := *input
	if inputPath == "" {
		inputPath = out.CategorizedPath()
		if _, err := os.Stat(inputPath); err != nil {
			inputPath = out.VacanciesPath()
		}
	}

	log := logger.NewLogger(cfg.Scanner.Logging.Level)

	records, err := report.ReadVacanciesCSV(inputPath)
	if err != nil {
		log.Error("failed to read vacancies CSV", "path", inputPath, "error", err)
		os.Exit(1)
	}

	log.Info("loaded vacancies", "path", inputPath, "records", len(records))

	summary := aggregate.New(out.TopCount).Summarize(records)

	if err := report.WriteTechRatingCSV(out.RatingPath(), summary); err != nil {
		log.Error("failed to write tech rating CSV", "error", err)
		os.Exit(1)
	}

	if len(summary.Fields) > 0 {
		if err := report.WriteTechRatingByFieldCSV(out.RatingByFieldPath(), summary); err != nil {
			log.Error("failed to write per-field rating CSV", "error", err)
			os.Exit(1)
		}
	}

	if err := report.WriteSummaryJSON(out.SummaryPath(), inputPath, summary, out.PrettyPrint); err != nil {
		log.Error("failed to write summary JSON", "error", err)
		os.Exit(1)
	}

	log.Info("reports written", "dir", out.Dir)

	fmt.Println("\nTop technologies:")
	fmt.Print(report.RenderTopTable(summary))
	fmt.Printf("\nVacancies: %d total, %d with salary\n", summary.TotalRecords, summary.WithSalary)

	if summary.Salary != nil {
		fmt.Printf("Salary midpoint: min %.0f, median %.0f, max %.0f\n",
			summary.Salary.Min, summary.Salary.Median, summary.Salary.Max)
	}

	if summary.Experience != nil {
		fmt.Printf("Experience (years): min %.0f, median %.1f, max %.0f\n",
			summary.Experience.Min, summary.Experience.Median, summary.Experience.Max)
	}
}
