// FILE: eventweaver/src/internal/enrich/enrich_test.go
package enrich

import (
	"testing"
	"time"

	"eventweaver/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("PreservesOrder", func(t *testing.T) {
		funcs, err := Resolve([]string{"lowercase_source", "redact_emails"})
		require.NoError(t, err)
		require.Len(t, funcs, 2)

		event := core.Event{Source: "API", Message: "contact ops@example.com"}
		for _, fn := range funcs {
			event = fn(event)
		}
		assert.Equal(t, "api", event.Source)
		assert.Equal(t, "contact [redacted]", event.Message)
	})

	t.Run("SkipsEmptyEntries", func(t *testing.T) {
		funcs, err := Resolve([]string{"", "lowercase_source", ""})
		require.NoError(t, err)
		assert.Len(t, funcs, 1)
	})

	t.Run("UnknownName", func(t *testing.T) {
		_, err := Resolve([]string{"lowercase_source", "no_such_enricher"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown enricher 'no_such_enricher'")
	})

	t.Run("NoNames", func(t *testing.T) {
		funcs, err := Resolve(nil)
		require.NoError(t, err)
		assert.Empty(t, funcs)
	})
}

func TestRegister(t *testing.T) {
	Register("test_tag_env", func(event core.Event) core.Event {
		if event.Metadata == nil {
			event.Metadata = map[string]any{}
		}
		event.Metadata["env"] = "test"
		return event
	})

	fn, err := Get("test_tag_env")
	require.NoError(t, err)

	event := fn(core.Event{Time: time.Now(), Source: "api"})
	assert.Equal(t, "test", event.Metadata["env"])
	assert.Contains(t, Names(), "test_tag_env")
}

func TestRedactEmails(t *testing.T) {
	t.Run("Message", func(t *testing.T) {
		event := RedactEmails(core.Event{Message: "login failed for alice@corp.example.org twice"})
		assert.Equal(t, "login failed for [redacted] twice", event.Message)
	})

	t.Run("MetadataCopiedNotMutated", func(t *testing.T) {
		original := map[string]any{"user": "bob@example.com", "attempts": 3.0}
		event := RedactEmails(core.Event{Metadata: original})

		assert.Equal(t, "[redacted]", event.Metadata["user"])
		assert.Equal(t, 3.0, event.Metadata["attempts"])
		assert.Equal(t, "bob@example.com", original["user"])
	})

	t.Run("NoEmailUntouched", func(t *testing.T) {
		event := RedactEmails(core.Event{Message: "disk usage at 91%"})
		assert.Equal(t, "disk usage at 91%", event.Message)
	})
}

func TestLowercaseSource(t *testing.T) {
	event := LowercaseSource(core.Event{Source: "Payments-API"})
	assert.Equal(t, "payments-api", event.Source)
}
