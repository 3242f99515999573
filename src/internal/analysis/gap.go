// FILE: eventweaver/src/internal/analysis/gap.go
package analysis

import (
	"fmt"
	"time"

	"eventweaver/src/internal/core"
)

// DetectTimeGaps emits one time_gap insight for every consecutive
// pair of events whose delta is at least thresholdMS. Fewer than two
// events or a non-positive threshold yields nothing.
func DetectTimeGaps(events []core.Event, thresholdMS int) []core.Insight {
	events = sortedByTime(events)
	insights := []core.Insight{}
	if len(events) < 2 || thresholdMS <= 0 {
		return insights
	}

	threshold := time.Duration(thresholdMS) * time.Millisecond
	for i := 1; i < len(events); i++ {
		prev, current := events[i-1], events[i]
		delta := current.Time.Sub(prev.Time)
		if delta < threshold {
			continue
		}
		insights = append(insights, core.Insight{
			Kind:     core.KindTimeGap,
			Summary:  fmt.Sprintf("Gap of %ds between %s and %s", int(delta.Seconds()), prev.Source, current.Source),
			Start:    prev.Time,
			End:      current.Time,
			Evidence: []core.Event{prev, current},
			Metadata: map[string]any{"gap_seconds": delta.Seconds()},
		})
	}
	return insights
}
