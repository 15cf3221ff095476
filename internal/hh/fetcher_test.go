package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vacradar/internal/config"
	"vacradar/internal/logger"
)

func testScannerConfig() *config.ScannerConfig {
	return &config.ScannerConfig{
		Search: config.SearchConfig{
			Text:      "C++",
			Area:      "113",
			Pages:     0,
			PerPage:   2,
			UserAgent: "vacradar-test",
		},
		Retry: *testRetryPolicy(),
	}
}

// fetchServer serves two search pages and a detail endpoint; vacancy "2"
// appears on both pages and vacancy "4" always fails.
func fetchServer(t *testing.T) *httptest.Server {
	t.Helper()

	pages := map[string]string{
		"0": `{"items": [{"id": "1"}, {"id": "2"}], "found": 4, "pages": 2, "page": 0, "per_page": 2}`,
		"1": `{"items": [{"id": "2"}, {"id": "3"}, {"id": "4"}], "found": 4, "pages": 2, "page": 1, "per_page": 2}`,
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/vacancies" {
			body, ok := pages[r.URL.Query().Get("page")]
			if !ok {
				t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
				w.WriteHeader(http.StatusBadRequest)

				return
			}

			_, _ = w.Write([]byte(body))

			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/vacancies/")
		if id == "4" {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		detail := map[string]any{
			"id":          id,
			"name":        fmt.Sprintf("Vacancy %s", id),
			"description": "<p>c++</p>",
			"employer":    map[string]string{"name": "Forge"},
			"area":        map[string]string{"name": "Москва"},
		}

		_ = json.NewEncoder(w).Encode(detail)
	}))
}

func TestFetch(t *testing.T) {
	srv := fetchServer(t)
	defer srv.Close()

	cfg := testScannerConfig()
	client := NewClient(srv.URL, cfg.Search.UserAgent, "", &cfg.Retry)
	fetcher := NewFetcher(client, cfg, logger.NewLogger("error"))

	raws, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	// Duplicate "2" collapses and the failing "4" is skipped.
	if len(raws) != 3 {
		t.Fatalf("fetched %d vacancies, want 3", len(raws))
	}

	wantIDs := []string{"1", "2", "3"}
	for i, raw := range raws {
		if raw.ID != wantIDs[i] {
			t.Errorf("raws[%d].ID = %q, want %q", i, raw.ID, wantIDs[i])
		}
	}
}

func TestFetchPageLimit(t *testing.T) {
	srv := fetchServer(t)
	defer srv.Close()

	cfg := testScannerConfig()
	cfg.Search.Pages = 1

	client := NewClient(srv.URL, cfg.Search.UserAgent, "", &cfg.Retry)
	fetcher := NewFetcher(client, cfg, logger.NewLogger("error"))

	raws, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(raws) != 2 {
		t.Fatalf("fetched %d vacancies with a one-page limit, want 2", len(raws))
	}
}
