// FILE: eventweaver/src/internal/enrich/builtin.go
package enrich

import (
	"regexp"
	"strings"

	"eventweaver/src/internal/core"
)

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

func init() {
	Register("redact_emails", RedactEmails)
	Register("lowercase_source", LowercaseSource)
}

// RedactEmails masks email addresses in the message and in string
// metadata values. Metadata is copied before modification so events
// already handed downstream keep their original map.
func RedactEmails(event core.Event) core.Event {
	event.Message = emailPattern.ReplaceAllString(event.Message, "[redacted]")
	if len(event.Metadata) == 0 {
		return event
	}

	meta := make(map[string]any, len(event.Metadata))
	for key, value := range event.Metadata {
		if text, ok := value.(string); ok {
			meta[key] = emailPattern.ReplaceAllString(text, "[redacted]")
			continue
		}
		meta[key] = value
	}
	event.Metadata = meta
	return event
}

// LowercaseSource normalizes the source label for case-insensitive
// filtering and grouping.
func LowercaseSource(event core.Event) core.Event {
	event.Source = strings.ToLower(event.Source)
	return event
}
