package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"vacradar/internal/models"
)

func TestCanonicalField(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{name: "exact match", answer: "Game Development", want: FieldGameDev},
		{name: "case insensitive", answer: "game development", want: FieldGameDev},
		{name: "partial answer", answer: "backend", want: FieldBackend},
		{name: "rendering shorthand", answer: "rendering", want: FieldRendering},
		{name: "surrounding whitespace", answer: "  Frontend  ", want: FieldFrontend},
		{name: "empty", answer: "", want: FieldUnknown},
		{name: "nonsense", answer: "underwater basket weaving", want: FieldUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalField(tt.answer))
		})
	}
}

func TestHeuristicCategorize(t *testing.T) {
	h := NewHeuristic()

	tests := []struct {
		name string
		rec  *models.VacancyRecord
		want string
	}{
		{
			name: "unreal in description",
			rec: &models.VacancyRecord{
				Name:        "C++ Developer",
				Description: "шутер на unreal engine 5",
			},
			want: FieldGameDev,
		},
		{
			name: "technology list drives the match",
			rec: &models.VacancyRecord{
				Name:         "Developer",
				Description:  "описание без ключевых слов",
				Technologies: []string{"Vulkan", "C++"},
			},
			want: FieldRendering,
		},
		{
			name: "game keywords win over render keywords",
			rec: &models.VacancyRecord{
				Name:        "Engine Programmer",
				Description: "unity project with custom shader pipeline",
			},
			want: FieldGameDev,
		},
		{
			name: "russian embedded",
			rec: &models.VacancyRecord{
				Name:        "Разработчик",
				Description: "прошивки для stm32",
			},
			want: FieldEmbedded,
		},
		{
			name: "backend service",
			rec: &models.VacancyRecord{
				Name:        "Go Developer",
				Description: "микросервисы, kafka, grpc",
			},
			want: FieldBackend,
		},
		{
			name: "nothing matches",
			rec: &models.VacancyRecord{
				Name:        "Developer",
				Description: "дружная команда, печеньки",
			},
			want: FieldUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Categorize(context.Background(), tt.rec)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineFallsBackOnPrimaryFailure(t *testing.T) {
	records := []*models.VacancyRecord{
		{ID: "1", Name: "C++ Developer", Description: "unreal engine 4"},
		{ID: "2", Name: "Go Developer", Description: "микросервисы и kafka"},
	}

	primary := &failingCategorizer{}
	engine := NewEngine(primary, testLogger(), nil)

	err := engine.Apply(context.Background(), records)
	assert.NoError(t, err)

	assert.Equal(t, FieldGameDev, records[0].FieldType)
	assert.Equal(t, FieldBackend, records[1].FieldType)
	assert.Equal(t, 2, primary.calls)
}

func TestEngineStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []*models.VacancyRecord{
		{ID: "1", Name: "Developer", Description: "unity"},
	}

	engine := NewEngine(&failingCategorizer{}, testLogger(), nil)

	err := engine.Apply(ctx, records)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, records[0].FieldType)
}

type failingCategorizer struct {
	calls int
}

func (f *failingCategorizer) Categorize(ctx context.Context, _ *models.VacancyRecord) (string, error) {
	f.calls++

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return "", assert.AnError
}
