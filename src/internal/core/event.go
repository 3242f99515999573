// FILE: eventweaver/src/internal/core/event.go
package core

import (
	"time"
)

// Event is a normalized log record flowing through the fusion pipeline
type Event struct {
	Time     time.Time      `json:"timestamp"`
	Source   string         `json:"source"`
	Severity *float64       `json:"severity,omitempty"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Raw      map[string]any `json:"raw,omitempty"`
}

// Sev returns a severity pointer for literal v
func Sev(v float64) *float64 {
	return &v
}

// Record returns the serializable view of the event.
// Timestamps render as RFC 3339 with nanosecond precision;
// a missing severity renders as null.
func (e Event) Record() map[string]any {
	var sev any
	if e.Severity != nil {
		sev = *e.Severity
	}
	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw := e.Raw
	if raw == nil {
		raw = map[string]any{}
	}
	return map[string]any{
		"timestamp": e.Time.Format(time.RFC3339Nano),
		"source":    e.Source,
		"severity":  sev,
		"message":   e.Message,
		"metadata":  meta,
		"raw":       raw,
	}
}
