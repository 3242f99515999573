// FILE: eventweaver/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"eventweaver/src/internal/core"
)

// EventsJSON marshals events as a JSON array of their serializable
// records. indent <= 0 produces compact output.
func EventsJSON(events []core.Event, indent int) ([]byte, error) {
	records := make([]map[string]any, 0, len(events))
	for _, event := range events {
		records = append(records, event.Record())
	}
	return marshal(records, indent)
}

// InsightsJSON marshals insights with their evidence expanded.
func InsightsJSON(insights []core.Insight, indent int) ([]byte, error) {
	records := make([]map[string]any, 0, len(insights))
	for _, insight := range insights {
		records = append(records, insight.Record())
	}
	return marshal(records, indent)
}

func marshal(records []map[string]any, indent int) ([]byte, error) {
	var out []byte
	var err error
	if indent > 0 {
		out, err = json.MarshalIndent(records, "", strings.Repeat(" ", indent))
	} else {
		out, err = json.Marshal(records)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return out, nil
}
