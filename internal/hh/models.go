// Package hh implements the hh.ru API client used to fetch raw vacancies.
package hh

import (
	"strings"

	"vacradar/internal/models"
)

// SearchResponse is one page of GET /vacancies.
type SearchResponse struct {
	Items   []SearchItem `json:"items"`
	Found   int          `json:"found"`
	Pages   int          `json:"pages"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

// SearchItem is the short vacancy form returned by the search endpoint.
type SearchItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Employer Employer `json:"employer"`
	Area     Area     `json:"area"`
}

// VacancyDetail is the full vacancy form from GET /vacancies/{id}.
type VacancyDetail struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Salary      *Salary    `json:"salary"`
	Employer    Employer   `json:"employer"`
	Area        Area       `json:"area"`
	Experience  Experience `json:"experience"`
	KeySkills   []KeySkill `json:"key_skills"`
}

// Salary is the hh.ru salary fork; from/to may be null in the API.
type Salary struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Currency string `json:"currency"`
	Gross    bool   `json:"gross"`
}

// Employer identifies the hiring company.
type Employer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Area identifies the vacancy location.
type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Experience is the required experience bucket, e.g. "От 3 до 6 лет".
type Experience struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// KeySkill is one entry of the key_skills list.
type KeySkill struct {
	Name string `json:"name"`
}

// ToRaw converts an API detail response into the pipeline's raw vacancy form.
func (d *VacancyDetail) ToRaw() models.VacancyRaw {
	raw := models.VacancyRaw{
		ID:          d.ID,
		Name:        d.Name,
		Employer:    d.Employer.Name,
		Description: d.Description,
		Experience:  d.Experience.Name,
		Area:        d.Area.Name,
	}

	if d.Salary != nil && (d.Salary.From > 0 || d.Salary.To > 0) {
		raw.Salary = &models.SalaryRange{
			From:     d.Salary.From,
			To:       d.Salary.To,
			Currency: d.Salary.Currency,
		}
	}

	for _, skill := range d.KeySkills {
		name := strings.TrimSpace(skill.Name)
		if name != "" {
			raw.KeySkills = append(raw.KeySkills, name)
		}
	}

	return raw
}
