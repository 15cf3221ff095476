package normalizer

import (
	"errors"
	"testing"

	"vacradar/internal/models"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		raw     *models.VacancyRaw
		wantErr error
	}{
		{
			name: "valid vacancy",
			raw: &models.VacancyRaw{
				ID:          "123",
				Name:        "C++ Developer",
				Description: "<p>render team</p>",
			},
			wantErr: nil,
		},
		{
			name: "empty description allowed",
			raw: &models.VacancyRaw{
				ID:   "123",
				Name: "C++ Developer",
			},
			wantErr: nil,
		},
		{
			name:    "nil vacancy",
			raw:     nil,
			wantErr: ErrNilVacancy,
		},
		{
			name: "missing ID",
			raw: &models.VacancyRaw{
				Name: "C++ Developer",
			},
			wantErr: ErrMissingVacancyID,
		},
		{
			name: "missing title",
			raw: &models.VacancyRaw{
				ID: "123",
			},
			wantErr: ErrMissingVacancyTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
