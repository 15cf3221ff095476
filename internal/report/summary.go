package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vacradar/internal/models"
)

// summaryDocument is the on-disk shape of stats_summary.json.
type summaryDocument struct {
	Source      string          `json:"source"`
	GeneratedAt string          `json:"generatedAt"`
	Summary     *models.Summary `json:"summary"`
}

// WriteSummaryJSON writes the aggregate summary next to the CSV reports.
// source names the input the summary was computed from.
func WriteSummaryJSON(path, source string, summary *models.Summary, pretty bool) error {
	doc := summaryDocument{
		Source:      source,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Summary:     summary,
	}

	var (
		data []byte
		err  error
	)

	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
