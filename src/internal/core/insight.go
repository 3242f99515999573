// FILE: eventweaver/src/internal/core/insight.go
package core

import (
	"time"
)

// InsightKind names a heuristic finding category
type InsightKind string

const (
	KindTimeGap            InsightKind = "time_gap"
	KindBurst              InsightKind = "burst"
	KindSeverityRegression InsightKind = "severity_regression"
)

// Insight is a structured anomaly finding referencing the events
// that justify it. Evidence shares metadata maps with the fused
// stream; insights never deep-copy their events.
type Insight struct {
	Kind     InsightKind    `json:"kind"`
	Summary  string         `json:"summary"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Evidence []Event        `json:"evidence"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Record returns the serializable view of the insight, with evidence
// expanded through Event.Record.
func (in Insight) Record() map[string]any {
	evidence := make([]map[string]any, 0, len(in.Evidence))
	for _, e := range in.Evidence {
		evidence = append(evidence, e.Record())
	}
	meta := in.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return map[string]any{
		"kind":     string(in.Kind),
		"summary":  in.Summary,
		"start":    in.Start.Format(time.RFC3339Nano),
		"end":      in.End.Format(time.RFC3339Nano),
		"metadata": meta,
		"evidence": evidence,
	}
}
