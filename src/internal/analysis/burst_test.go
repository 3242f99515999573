// FILE: eventweaver/src/internal/analysis/burst_test.go
package analysis

import (
	"testing"

	"eventweaver/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBursts(t *testing.T) {
	t.Run("OneReportPerUnbrokenBurst", func(t *testing.T) {
		// Five events inside one second must yield a single report,
		// not one per qualifying event.
		events := []core.Event{
			at(0, "api"),
			at(100, "db"),
			at(200, "api"),
			at(300, "cache"),
			at(400, "db"),
		}

		insights := DetectBursts(events, 1000, 4)
		require.Len(t, insights, 1)

		in := insights[0]
		assert.Equal(t, core.KindBurst, in.Kind)
		assert.Equal(t, "4 events within 1000ms window", in.Summary)
		assert.Equal(t, events[0].Time, in.Start)
		assert.Equal(t, events[3].Time, in.End)
		assert.Len(t, in.Evidence, 4)
		assert.Equal(t, 4, in.Metadata["count"])
		assert.Equal(t, 1000, in.Metadata["window_ms"])
		assert.Equal(t, []string{"api", "cache", "db"}, in.Metadata["sources"])
	})

	t.Run("ReportingResumesAfterQuietPeriod", func(t *testing.T) {
		events := []core.Event{
			at(0, "a"), at(100, "a"), at(200, "a"),
			at(5000, "b"), at(5100, "b"), at(5200, "b"),
		}

		insights := DetectBursts(events, 1000, 3)
		require.Len(t, insights, 2)
		assert.Equal(t, events[0].Time, insights[0].Start)
		assert.Equal(t, events[3].Time, insights[1].Start)
	})

	t.Run("SuppressedWhileWindowTouchesPriorReport", func(t *testing.T) {
		// The second candidate window starts exactly at the previous
		// report's end, which still counts as inside the burst.
		events := []core.Event{
			at(0, "a"), at(100, "a"), at(200, "a"),
			at(1100, "a"), at(1150, "a"),
		}

		insights := DetectBursts(events, 1000, 3)
		require.Len(t, insights, 1)
		assert.Equal(t, events[0].Time, insights[0].Start)
	})

	t.Run("BoundaryEventStaysInWindow", func(t *testing.T) {
		// Eviction is strictly-greater-than: a delta equal to the
		// window span keeps the oldest event.
		events := []core.Event{at(0, "a"), at(500, "a"), at(1000, "a")}

		insights := DetectBursts(events, 1000, 3)
		require.Len(t, insights, 1)
		assert.Len(t, insights[0].Evidence, 3)
	})

	t.Run("EvictionShrinksWindow", func(t *testing.T) {
		events := []core.Event{at(0, "a"), at(500, "a"), at(1600, "a")}
		assert.Empty(t, DetectBursts(events, 1000, 3))
	})

	t.Run("DisabledParameters", func(t *testing.T) {
		events := []core.Event{at(0, "a"), at(1, "a"), at(2, "a")}
		assert.Empty(t, DetectBursts(events, 0, 3))
		assert.Empty(t, DetectBursts(events, -100, 3))
		assert.Empty(t, DetectBursts(events, 1000, 1))
		assert.Empty(t, DetectBursts(events, 1000, 0))
	})

	t.Run("EvidenceIsACopyOfTheWindow", func(t *testing.T) {
		events := []core.Event{
			at(0, "a"), at(100, "b"), at(200, "c"),
			at(5000, "d"), at(5100, "d"), at(5200, "d"),
		}

		insights := DetectBursts(events, 1000, 3)
		require.Len(t, insights, 2)
		// The first report's evidence must survive later window churn.
		assert.Equal(t, []string{"a", "b", "c"}, sourcesOf(insights[0].Evidence))
		assert.Equal(t, []string{"d", "d", "d"}, sourcesOf(insights[1].Evidence))
	})
}

func sourcesOf(events []core.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Source)
	}
	return out
}
