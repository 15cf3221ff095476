package normalizer

import (
	"fmt"
	"sort"

	"vacradar/internal/extractor"
	"vacradar/internal/models"
)

// Processor turns raw vacancies into processed records.
type Processor struct {
	validator  *Validator
	normalizer *TextNormalizer
	extractor  *extractor.Extractor
}

// NewProcessor creates a new processor around the given extractor.
func NewProcessor(ex *extractor.Extractor) *Processor {
	return &Processor{
		validator:  NewValidator(),
		normalizer: NewTextNormalizer(),
		extractor:  ex,
	}
}

// Process validates a raw vacancy, normalizes its description and extracts
// technologies and signal values. API-supplied key skills are folded into the
// technology set through the same synonym table; unrecognized skills are
// dropped. A structured API salary takes precedence over one parsed from
// text, and the API experience label is used when the description yields no
// experience value.
func (p *Processor) Process(raw *models.VacancyRaw) (*models.VacancyRecord, error) {
	if err := p.validator.Validate(raw); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	text := p.normalizer.Normalize(raw.Description)
	res := p.extractor.Extract(text)

	techs := make(map[string]struct{}, len(res.Technologies))
	for _, t := range res.Technologies {
		techs[t] = struct{}{}
	}

	for _, skill := range raw.KeySkills {
		if canonical, ok := p.extractor.Canonical(skill); ok {
			techs[canonical] = struct{}{}
		}
	}

	technologies := make([]string, 0, len(techs))
	for t := range techs {
		technologies = append(technologies, t)
	}

	sort.Strings(technologies)

	salary := raw.Salary
	if salary == nil {
		salary = res.Salary
	}

	experience := res.Experience
	if experience == nil && raw.Experience != "" {
		experience = p.extractor.ParseExperience(p.normalizer.Normalize(raw.Experience))
	}

	return &models.VacancyRecord{
		ID:           raw.ID,
		Name:         raw.Name,
		Employer:     raw.Employer,
		Description:  text,
		Technologies: technologies,
		Experience:   experience,
		Salary:       salary,
		Area:         raw.Area,
	}, nil
}
