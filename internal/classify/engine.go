package classify

import (
	"context"

	"vacradar/internal/logger"
	"vacradar/internal/models"
)

// Categorizer assigns a field type to one record.
type Categorizer interface {
	Categorize(ctx context.Context, rec *models.VacancyRecord) (string, error)
}

// Engine applies a primary categorizer to a record sequence, falling back to
// the heuristic when the primary fails on a record.
type Engine struct {
	primary  Categorizer
	fallback *Heuristic
	log      *logger.Logger
	pause    func(ctx context.Context) error
}

// NewEngine creates an engine. primary may be nil, in which case the
// heuristic handles everything. pause, when non-nil, runs between primary
// calls (used to space out LLM requests).
func NewEngine(primary Categorizer, log *logger.Logger, pause func(ctx context.Context) error) *Engine {
	return &Engine{
		primary:  primary,
		fallback: NewHeuristic(),
		log:      log,
		pause:    pause,
	}
}

// Apply fills in FieldType for every record in place. A record-level failure
// downgrades that record to the heuristic; only context cancellation stops
// the run.
func (e *Engine) Apply(ctx context.Context, records []*models.VacancyRecord) error {
	for i, rec := range records {
		field, err := e.categorize(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			e.log.Warn("categorization failed, using heuristic", "id", rec.ID, "error", err)

			field, _ = e.fallback.Categorize(ctx, rec)
		}

		rec.FieldType = field

		if e.primary != nil && e.pause != nil && i < len(records)-1 {
			if err := e.pause(ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Engine) categorize(ctx context.Context, rec *models.VacancyRecord) (string, error) {
	if e.primary != nil {
		return e.primary.Categorize(ctx, rec)
	}

	return e.fallback.Categorize(ctx, rec)
}
