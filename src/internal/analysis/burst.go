// FILE: eventweaver/src/internal/analysis/burst.go
package analysis

import (
	"fmt"
	"sort"
	"time"

	"eventweaver/src/internal/core"
)

// DetectBursts reports clusters of at least threshold events inside a
// sliding windowMS window. While a burst is ongoing, re-reports are
// suppressed until the candidate window's start moves strictly past
// the end of the previous report. A non-positive window or a
// threshold below 2 yields nothing.
func DetectBursts(events []core.Event, windowMS, threshold int) []core.Insight {
	events = sortedByTime(events)
	insights := []core.Insight{}
	if windowMS <= 0 || threshold <= 1 {
		return insights
	}

	span := time.Duration(windowMS) * time.Millisecond
	var window []core.Event
	var lastReportEnd time.Time
	reported := false

	for _, event := range events {
		window = append(window, event)
		for len(window) > 0 && event.Time.Sub(window[0].Time) > span {
			window = window[1:]
		}
		if len(window) < threshold {
			continue
		}
		start, end := window[0], window[len(window)-1]
		if reported && !start.Time.After(lastReportEnd) {
			continue
		}
		insights = append(insights, core.Insight{
			Kind:     core.KindBurst,
			Summary:  fmt.Sprintf("%d events within %dms window", len(window), windowMS),
			Start:    start.Time,
			End:      end.Time,
			Evidence: append([]core.Event(nil), window...),
			Metadata: map[string]any{
				"count":     len(window),
				"window_ms": windowMS,
				"sources":   distinctSources(window),
			},
		})
		lastReportEnd = end.Time
		reported = true
	}
	return insights
}

func distinctSources(events []core.Event) []string {
	seen := map[string]bool{}
	for _, e := range events {
		seen[e.Source] = true
	}
	sources := make([]string, 0, len(seen))
	for s := range seen {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}
