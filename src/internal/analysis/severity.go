// FILE: eventweaver/src/internal/analysis/severity.go
package analysis

import (
	"fmt"

	"eventweaver/src/internal/core"
)

// DetectSeverityRegressions tracks a rolling mean over the last
// horizon severity-bearing events (events without severity do not
// occupy a slot). Each time the buffer is full the mean is compared
// to the mean at the previous full step; a worsening of at least
// delta emits a severity_regression insight. A horizon below 2
// yields nothing.
func DetectSeverityRegressions(events []core.Event, horizon int, delta float64) []core.Insight {
	events = sortedByTime(events)
	insights := []core.Insight{}
	if horizon <= 1 {
		return insights
	}

	buffer := make([]core.Event, 0, horizon)
	var previousMean float64
	havePrevious := false

	for _, event := range events {
		if event.Severity == nil {
			continue
		}
		if len(buffer) == horizon {
			copy(buffer, buffer[1:])
			buffer[horizon-1] = event
		} else {
			buffer = append(buffer, event)
		}
		if len(buffer) < horizon {
			continue
		}
		var sum float64
		for _, e := range buffer {
			sum += *e.Severity
		}
		currentMean := sum / float64(len(buffer))
		if havePrevious && currentMean-previousMean >= delta {
			insights = append(insights, core.Insight{
				Kind:     core.KindSeverityRegression,
				Summary:  fmt.Sprintf("Rolling severity mean worsened by %.2f", currentMean-previousMean),
				Start:    buffer[0].Time,
				End:      buffer[len(buffer)-1].Time,
				Evidence: append([]core.Event(nil), buffer...),
				Metadata: map[string]any{
					"previous_mean": previousMean,
					"current_mean":  currentMean,
					"horizon":       horizon,
				},
			})
		}
		previousMean = currentMean
		havePrevious = true
	}
	return insights
}
