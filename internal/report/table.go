package report

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"vacradar/internal/models"
)

// RenderTopTable renders the top technologies as an aligned plain-text
// table for console output. Alignment uses display width so that non-ASCII
// technology names keep the columns straight.
func RenderTopTable(summary *models.Summary) string {
	if len(summary.TopTechnologies) == 0 {
		return "no technologies detected"
	}

	rows := [][]string{{"technology", "count"}}
	for _, tc := range summary.TopTechnologies {
		rows = append(rows, []string{tc.Technology, strconv.Itoa(tc.Count)})
	}

	widths := make([]int, len(rows[0]))

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for idx, row := range rows {
		for i, cell := range row {
			b.WriteString(cell)

			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
				b.WriteString("  ")
			}
		}

		b.WriteByte('\n')

		if idx == 0 {
			for i, w := range widths {
				b.WriteString(strings.Repeat("-", w))

				if i < len(widths)-1 {
					b.WriteString("  ")
				}
			}

			b.WriteByte('\n')
		}
	}

	return b.String()
}
