// FILE: eventweaver/src/internal/format/table.go
package format

import (
	"fmt"
	"strings"
	"time"

	"eventweaver/src/internal/core"
)

// EventTable renders events as an aligned text table. messageWidth
// bounds the message column; values <= 0 use the default budget.
func EventTable(events []core.Event, messageWidth int) string {
	if messageWidth <= 0 {
		messageWidth = defaultMessageWidth
	}
	rows := make([][]string, 0, len(events))
	for _, event := range events {
		severity := "-"
		if event.Severity != nil {
			severity = fmt.Sprintf("%.2f", *event.Severity)
		}
		rows = append(rows, []string{
			event.Time.Format(time.RFC3339),
			event.Source,
			severity,
			shorten(event.Message, messageWidth),
		})
	}
	return renderTable([]string{"timestamp", "source", "severity", "message"}, rows, "(no data)")
}

// InsightTable renders insights as an aligned text table.
func InsightTable(insights []core.Insight) string {
	rows := make([][]string, 0, len(insights))
	for _, insight := range insights {
		rows = append(rows, []string{
			string(insight.Kind),
			insight.Start.Format(time.RFC3339),
			insight.End.Format(time.RFC3339),
			shorten(insight.Summary, defaultMessageWidth),
		})
	}
	return renderTable([]string{"kind", "start", "end", "summary"}, rows, "(no insights found)")
}

// renderTable lays out rows under headers with " | " separators and
// a dash rule. Trailing padding is trimmed per line.
func renderTable(headers []string, rows [][]string, empty string) string {
	if len(rows) == 0 {
		return empty
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len([]rune(header))
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := len([]rune(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	formatRow := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = cell + strings.Repeat(" ", widths[i]-len([]rune(cell)))
		}
		return strings.TrimRight(strings.Join(padded, " | "), " ")
	}

	dashes := make([]string, len(widths))
	for i, width := range widths {
		dashes[i] = strings.Repeat("-", width)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, formatRow(headers), strings.Join(dashes, "-+-"))
	for _, row := range rows {
		lines = append(lines, formatRow(row))
	}
	return strings.Join(lines, "\n")
}
