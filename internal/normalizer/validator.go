package normalizer

import (
	"errors"

	"vacradar/internal/models"
)

// Validation errors.
var (
	ErrNilVacancy          = errors.New("vacancy is nil")
	ErrMissingVacancyID    = errors.New("missing vacancy ID")
	ErrMissingVacancyTitle = errors.New("missing vacancy title")
)

// Validator checks raw vacancies before processing.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks that a raw vacancy carries the fields the pipeline relies
// on. An empty description is allowed: it normalizes to an empty string.
func (v *Validator) Validate(raw *models.VacancyRaw) error {
	if raw == nil {
		return ErrNilVacancy
	}

	if raw.ID == "" {
		return ErrMissingVacancyID
	}

	if raw.Name == "" {
		return ErrMissingVacancyTitle
	}

	return nil
}
