// Package report writes the scanner's CSV and JSON outputs.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"vacradar/internal/models"
	"vacradar/pkg/textutil"
)

// CSV errors.
var (
	ErrEmptyCSV      = errors.New("CSV has no header")
	ErrMissingColumn = errors.New("missing required column")
)

const (
	techSeparator      = "; "
	maxSummarizedChars = 2000
)

// vacancyHeader is the column layout of vacancies.csv and categorized.csv
// (the latter appends field_type).
var vacancyHeader = []string{
	"id",
	"vacancy_name",
	"company_name",
	"location",
	"core_technologies",
	"salary_from",
	"salary_to",
	"salary_currency",
	"years_required",
	"vacancy_description",
}

// WriteVacanciesCSV writes one row per record. Technologies are joined with
// "; "; absent salary and experience stay as empty cells.
func WriteVacanciesCSV(path string, records []*models.VacancyRecord) error {
	return writeCSVFile(path, vacancyHeader, func(w *csv.Writer) error {
		for _, rec := range records {
			if err := w.Write(baseRow(rec)); err != nil {
				return err
			}
		}

		return nil
	})
}

// WriteCategorizedCSV writes the categorize output: the vacancy columns plus
// field_type, with the description truncated to a summary length.
func WriteCategorizedCSV(path string, records []*models.VacancyRecord) error {
	header := append(append([]string{}, vacancyHeader...), "field_type")

	return writeCSVFile(path, header, func(w *csv.Writer) error {
		for _, rec := range records {
			row := baseRow(rec)
			row[len(row)-1] = textutil.Truncate(rec.Description, maxSummarizedChars)
			row = append(row, rec.FieldType)

			if err := w.Write(row); err != nil {
				return err
			}
		}

		return nil
	})
}

// ReadVacanciesCSV loads records back from a vacancies or categorized CSV.
// The field_type column is optional.
func ReadVacanciesCSV(path string) ([]*models.VacancyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyCSV
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{"id", "vacancy_name"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}

		return row[idx]
	}

	records := make([]*models.VacancyRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		rec := &models.VacancyRecord{
			ID:          cell(row, "id"),
			Name:        cell(row, "vacancy_name"),
			Employer:    cell(row, "company_name"),
			Area:        cell(row, "location"),
			Description: cell(row, "vacancy_description"),
			FieldType:   cell(row, "field_type"),
		}

		if techs := cell(row, "core_technologies"); techs != "" {
			rec.Technologies = strings.Split(techs, techSeparator)
		}

		if years := cell(row, "years_required"); years != "" {
			if v, err := strconv.Atoi(years); err == nil {
				rec.Experience = &v
			}
		}

		from, _ := strconv.Atoi(cell(row, "salary_from"))
		to, _ := strconv.Atoi(cell(row, "salary_to"))

		if from > 0 || to > 0 {
			rec.Salary = &models.SalaryRange{
				From:     from,
				To:       to,
				Currency: cell(row, "salary_currency"),
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// WriteTechRatingCSV writes the overall technology rating, count descending.
func WriteTechRatingCSV(path string, summary *models.Summary) error {
	ranked := rankAll(summary.TechCounts)

	return writeCSVFile(path, []string{"technology", "count"}, func(w *csv.Writer) error {
		for _, tc := range ranked {
			if err := w.Write([]string{tc.Technology, strconv.Itoa(tc.Count)}); err != nil {
				return err
			}
		}

		return nil
	})
}

// WriteTechRatingByFieldCSV writes per-field technology ratings.
func WriteTechRatingByFieldCSV(path string, summary *models.Summary) error {
	return writeCSVFile(path, []string{"field_type", "technology", "count"}, func(w *csv.Writer) error {
		for _, field := range summary.Fields {
			for _, tc := range field.TopTechnologies {
				if err := w.Write([]string{field.FieldType, tc.Technology, strconv.Itoa(tc.Count)}); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func writeCSVFile(path string, header []string, body func(w *csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := body(w); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	w.Flush()

	return w.Error()
}

func baseRow(rec *models.VacancyRecord) []string {
	var from, to, currency string

	if rec.Salary != nil {
		if rec.Salary.From > 0 {
			from = strconv.Itoa(rec.Salary.From)
		}

		if rec.Salary.To > 0 {
			to = strconv.Itoa(rec.Salary.To)
		}

		currency = rec.Salary.Currency
	}

	return []string{
		rec.ID,
		rec.Name,
		rec.Employer,
		rec.Area,
		strings.Join(rec.Technologies, techSeparator),
		from,
		to,
		currency,
		models.FormatExperience(rec.Experience),
		rec.Description,
	}
}

func rankAll(counts map[string]int) []models.TechCount {
	ranked := make([]models.TechCount, 0, len(counts))
	for tech, count := range counts {
		ranked = append(ranked, models.TechCount{Technology: tech, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}

		return ranked[i].Technology < ranked[j].Technology
	})

	return ranked
}
