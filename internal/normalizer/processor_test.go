package normalizer

import (
	"errors"
	"reflect"
	"testing"

	"vacradar/internal/extractor"
	"vacradar/internal/models"
)

func TestProcess(t *testing.T) {
	p := NewProcessor(extractor.New(nil))

	raw := &models.VacancyRaw{
		ID:          "42",
		Name:        "Graphics Programmer",
		Employer:    "Forge Studio",
		Description: "<p>C++ renderer, Vulkan. 3 years of experience. От 250 000 руб.</p>",
		Area:        "Москва",
		KeySkills:   []string{"CMake", "Agile"},
	}

	rec, err := p.Process(raw)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if rec.ID != "42" || rec.Name != "Graphics Programmer" || rec.Area != "Москва" {
		t.Errorf("identity fields not carried over: %+v", rec)
	}

	// CMake comes from key skills, Agile is not a known technology.
	wantTechs := []string{"C++", "CMake", "Vulkan"}
	if !reflect.DeepEqual(rec.Technologies, wantTechs) {
		t.Errorf("Technologies = %v, want %v", rec.Technologies, wantTechs)
	}

	if rec.Experience == nil || *rec.Experience != 3 {
		t.Errorf("Experience = %v, want 3", rec.Experience)
	}

	if rec.Salary == nil || rec.Salary.From != 250000 || rec.Salary.Currency != "RUR" {
		t.Errorf("Salary = %+v, want from 250000 RUR", rec.Salary)
	}
}

func TestProcessAPISalaryPrecedence(t *testing.T) {
	p := NewProcessor(extractor.New(nil))

	raw := &models.VacancyRaw{
		ID:          "7",
		Name:        "Go Developer",
		Description: "зарплата от 100 000 руб в описании",
		Salary:      &models.SalaryRange{From: 180000, To: 240000, Currency: "RUR"},
	}

	rec, err := p.Process(raw)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if rec.Salary.From != 180000 || rec.Salary.To != 240000 {
		t.Errorf("structured salary should win over parsed text, got %+v", rec.Salary)
	}
}

func TestProcessExperienceFallback(t *testing.T) {
	p := NewProcessor(extractor.New(nil))

	raw := &models.VacancyRaw{
		ID:          "9",
		Name:        "Engine Programmer",
		Description: "никаких цифр в описании",
		Experience:  "От 3 до 6 лет",
	}

	rec, err := p.Process(raw)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if rec.Experience == nil || *rec.Experience != 3 {
		t.Errorf("Experience = %v, want 3 from the experience label", rec.Experience)
	}
}

func TestProcessAbsentSignalsStayNil(t *testing.T) {
	p := NewProcessor(extractor.New(nil))

	raw := &models.VacancyRaw{
		ID:          "11",
		Name:        "Developer",
		Description: "дружная команда",
	}

	rec, err := p.Process(raw)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if rec.Experience != nil {
		t.Errorf("Experience = %v, want nil when absent", *rec.Experience)
	}

	if rec.Salary != nil {
		t.Errorf("Salary = %+v, want nil when absent", rec.Salary)
	}
}

func TestProcessInvalid(t *testing.T) {
	p := NewProcessor(extractor.New(nil))

	_, err := p.Process(&models.VacancyRaw{Description: "no id"})
	if !errors.Is(err, ErrMissingVacancyID) {
		t.Errorf("Process() error = %v, want %v", err, ErrMissingVacancyID)
	}
}
