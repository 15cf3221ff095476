// Package aggregate builds summary statistics over processed vacancy records.
package aggregate

import (
	"math"
	"sort"

	"vacradar/internal/models"
)

// Aggregator tallies technologies and signal statistics across records.
type Aggregator struct {
	topCount int
}

// New creates an aggregator. topCount limits the technology ratings in the
// summary; 0 means unlimited.
func New(topCount int) *Aggregator {
	return &Aggregator{topCount: topCount}
}

// Summarize builds a Summary from the full record sequence. Each record is
// independent, so the resulting counts do not depend on processing order.
// Records with an absent experience or salary are excluded from that
// particular statistic rather than counted as zero.
func (a *Aggregator) Summarize(records []*models.VacancyRecord) *models.Summary {
	summary := &models.Summary{
		TotalRecords: len(records),
		TechCounts:   make(map[string]int),
	}

	var (
		experience []float64
		salaries   []float64
	)

	byField := make(map[string]*models.FieldSummary)
	techByField := make(map[string]map[string]int)

	for _, rec := range records {
		for _, tech := range rec.Technologies {
			summary.TechCounts[tech]++
		}

		if rec.Experience != nil {
			experience = append(experience, float64(*rec.Experience))
		}

		if rec.Salary != nil {
			summary.WithSalary++

			salaries = append(salaries, rec.Salary.Midpoint())
		}

		if rec.FieldType == "" {
			continue
		}

		field, ok := byField[rec.FieldType]
		if !ok {
			field = &models.FieldSummary{FieldType: rec.FieldType}
			byField[rec.FieldType] = field
			techByField[rec.FieldType] = make(map[string]int)
		}

		field.Total++

		if rec.Salary != nil {
			field.WithSalary++
		}

		for _, tech := range rec.Technologies {
			techByField[rec.FieldType][tech]++
		}
	}

	summary.Experience = computeStats(experience)
	summary.Salary = computeStats(salaries)
	summary.TopTechnologies = topCounts(summary.TechCounts, a.topCount)

	fields := make([]string, 0, len(byField))
	for name := range byField {
		fields = append(fields, name)
	}

	sort.Strings(fields)

	for _, name := range fields {
		field := byField[name]
		field.WithoutSalary = field.Total - field.WithSalary
		field.CoveragePct = coveragePct(field.WithSalary, field.Total)
		field.TopTechnologies = topCounts(techByField[name], a.topCount)
		summary.Fields = append(summary.Fields, *field)
	}

	return summary
}

// topCounts ranks a counter by count descending, name ascending on ties.
func topCounts(counts map[string]int, limit int) []models.TechCount {
	if len(counts) == 0 {
		return nil
	}

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

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// computeStats returns nil when there are no present values: an empty input
// yields no statistics, not zero-valued ones.
func computeStats(values []float64) *models.Stats {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return &models.Stats{
		Min:    sorted[0],
		Median: median(sorted),
		Max:    sorted[len(sorted)-1],
	}
}

// median expects a sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func coveragePct(with, total int) float64 {
	if total == 0 {
		return 0
	}

	return math.Round(float64(with)/float64(total)*100*100) / 100
}
