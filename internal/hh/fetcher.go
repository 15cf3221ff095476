package hh

import (
	"context"
	"fmt"

	"vacradar/internal/config"
	"vacradar/internal/logger"
	"vacradar/internal/models"
)

// Fetcher walks the paginated vacancy search and resolves each hit into a
// raw vacancy via the detail endpoint.
type Fetcher struct {
	client *Client
	cfg    *config.ScannerConfig
	log    *logger.Logger
}

// NewFetcher creates a fetcher over an API client.
func NewFetcher(client *Client, cfg *config.ScannerConfig, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// Fetch collects raw vacancies for the configured search. Vacancy IDs seen
// on earlier pages are skipped, and a failed detail fetch drops only that
// vacancy. The records come back in API delivery order.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.VacancyRaw, error) {
	var (
		raws     []models.VacancyRaw
		seen     = make(map[string]struct{})
		maxPages = -1
	)

	for page := 0; maxPages < 0 || page < maxPages; page++ {
		f.log.Info("fetching page", "page", page)

		resp, err := f.client.SearchPage(ctx, f.cfg.Search.Text, f.cfg.Search.Area, page, f.cfg.Search.PerPage)
		if err != nil {
			return raws, fmt.Errorf("fetch failed on page %d: %w", page, err)
		}

		if maxPages < 0 {
			maxPages = resp.Pages
			if f.cfg.Search.Pages > 0 && f.cfg.Search.Pages < maxPages {
				maxPages = f.cfg.Search.Pages
			}

			f.log.Info("search results", "found", resp.Found, "pages", resp.Pages, "scanning", maxPages)
		}

		if len(resp.Items) == 0 {
			f.log.Info("no items on page, stopping", "page", page)

			break
		}

		for _, item := range resp.Items {
			if item.ID == "" {
				continue
			}

			if _, ok := seen[item.ID]; ok {
				continue
			}

			seen[item.ID] = struct{}{}

			detail, err := f.client.VacancyDetail(ctx, item.ID)
			if err != nil {
				if ctx.Err() != nil {
					return raws, ctx.Err()
				}

				f.log.Warn("failed to fetch vacancy, skipping", "id", item.ID, "error", err)

				continue
			}

			raws = append(raws, detail.ToRaw())

			if err := sleepCtx(ctx, f.cfg.Rate.GetDetailDelay()); err != nil {
				return raws, err
			}
		}

		f.log.Info("page complete", "page", page, "collected", len(raws))

		if maxPages >= 0 && page+1 >= maxPages {
			break
		}

		if err := sleepCtx(ctx, f.cfg.Rate.GetPageDelay()); err != nil {
			return raws, err
		}
	}

	return raws, nil
}
