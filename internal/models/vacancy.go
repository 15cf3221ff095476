// Package models defines the data structures shared across the vacancy pipeline.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// VacancyRaw is one job listing as delivered by the fetch layer.
// It is immutable once fetched.
type VacancyRaw struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Employer    string       `json:"employer"`
	Description string       `json:"description"`
	Salary      *SalaryRange `json:"salary,omitempty"`
	Experience  string       `json:"experience,omitempty"`
	Area        string       `json:"area,omitempty"`
	KeySkills   []string     `json:"keySkills,omitempty"`
}

// VacancyRecord is the processed form of one vacancy. It is created once by
// the processor and never mutated afterwards, except for FieldType which the
// categorization stage fills in.
type VacancyRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Employer     string       `json:"employer"`
	Description  string       `json:"description"`
	Technologies []string     `json:"technologies"`
	Experience   *int         `json:"experience,omitempty"`
	Salary       *SalaryRange `json:"salary,omitempty"`
	FieldType    string       `json:"fieldType,omitempty"`
	Area         string       `json:"area,omitempty"`
}

// HasTechnology reports whether the record mentions the canonical technology.
func (r *VacancyRecord) HasTechnology(name string) bool {
	for _, t := range r.Technologies {
		if t == name {
			return true
		}
	}

	return false
}

// SalaryRange is a salary fork. A bound of 0 means the bound is open.
type SalaryRange struct {
	From     int    `json:"from,omitempty"`
	To       int    `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Midpoint reduces the range to a single value: the middle when both bounds
// are present, otherwise the present bound.
func (s *SalaryRange) Midpoint() float64 {
	switch {
	case s.From > 0 && s.To > 0:
		return float64(s.From+s.To) / 2
	case s.From > 0:
		return float64(s.From)
	default:
		return float64(s.To)
	}
}

// String formats the range the way the vacancy CSV expects it,
// e.g. "from 100000 to 150000 RUR".
func (s *SalaryRange) String() string {
	var parts []string

	if s.From > 0 {
		parts = append(parts, "from "+strconv.Itoa(s.From))
	}

	if s.To > 0 {
		parts = append(parts, "to "+strconv.Itoa(s.To))
	}

	if s.Currency != "" {
		parts = append(parts, s.Currency)
	}

	return strings.Join(parts, " ")
}

// Experience levels come from free text, so records carry a plain minimum
// years value. FormatExperience renders it for reports.
func FormatExperience(years *int) string {
	if years == nil {
		return ""
	}

	return fmt.Sprintf("%d", *years)
}
