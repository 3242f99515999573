// FILE: eventweaver/src/internal/analysis/analysis.go

// Package analysis implements the windowed heuristics that turn an
// ordered event stream into anomaly insights: time gaps, bursts and
// rolling severity regressions.
package analysis

import (
	"sort"

	"eventweaver/src/internal/core"
)

// Config carries detector thresholds. A zero or missing value
// disables the detector that needs it; loose configuration degrades
// to doing nothing rather than erroring. SeverityDelta alone is not
// a gate: left unset it falls back to 0.5.
type Config struct {
	GapMS           int
	BurstWindowMS   int
	BurstThreshold  int
	SeverityHorizon int
	SeverityDelta   float64
}

// Run executes every enabled detector and returns the combined
// insights sorted ascending by (start, kind). The result is
// deterministic for identical input and configuration.
func Run(events []core.Event, cfg Config) []core.Insight {
	insights := []core.Insight{}
	if cfg.GapMS != 0 {
		insights = append(insights, DetectTimeGaps(events, cfg.GapMS)...)
	}
	if cfg.BurstWindowMS != 0 && cfg.BurstThreshold != 0 {
		insights = append(insights, DetectBursts(events, cfg.BurstWindowMS, cfg.BurstThreshold)...)
	}
	if cfg.SeverityHorizon != 0 {
		delta := cfg.SeverityDelta
		if delta == 0 {
			delta = 0.5
		}
		insights = append(insights, DetectSeverityRegressions(events, cfg.SeverityHorizon, delta)...)
	}
	sort.SliceStable(insights, func(i, j int) bool {
		if !insights[i].Start.Equal(insights[j].Start) {
			return insights[i].Start.Before(insights[j].Start)
		}
		return insights[i].Kind < insights[j].Kind
	})
	return insights
}

// sortedByTime returns a copy ordered by timestamp. Detectors accept
// pre-sorted input as their contract; this shim tolerates callers
// that skipped fusion. The sort is stable, so events sharing a
// timestamp keep the fused tie-break order.
func sortedByTime(events []core.Event) []core.Event {
	out := make([]core.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
