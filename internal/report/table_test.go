package report

import (
	"strings"
	"testing"

	"vacradar/internal/models"
)

func TestRenderTopTable(t *testing.T) {
	summary := &models.Summary{
		TopTechnologies: []models.TechCount{
			{Technology: "C++", Count: 120},
			{Technology: "Unreal Engine", Count: 45},
			{Technology: "Go", Count: 7},
		},
	}

	got := RenderTopTable(summary)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + separator + 3 rows:\n%s", len(lines), got)
	}

	if !strings.HasPrefix(lines[0], "technology") {
		t.Errorf("header = %q", lines[0])
	}

	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator = %q", lines[1])
	}

	// The count column starts at the same offset in every row.
	offset := strings.Index(lines[0], "count")
	for _, line := range lines[2:] {
		fields := strings.Fields(line)
		if idx := strings.LastIndex(line, fields[len(fields)-1]); idx != offset {
			t.Errorf("count misaligned in %q: column %d, want %d", line, idx, offset)
		}
	}

	for _, line := range lines {
		if strings.HasSuffix(line, " ") {
			t.Errorf("trailing whitespace in %q", line)
		}
	}
}

func TestRenderTopTableEmpty(t *testing.T) {
	got := RenderTopTable(&models.Summary{})

	if got != "no technologies detected" {
		t.Errorf("RenderTopTable() = %q", got)
	}
}
