// FILE: eventweaver/src/internal/analysis/analysis_test.go
package analysis

import (
	"testing"
	"time"

	"eventweaver/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func at(ms int, source string) core.Event {
	return core.Event{
		Time:    base.Add(time.Duration(ms) * time.Millisecond),
		Source:  source,
		Message: "event",
	}
}

func sevAt(ms int, source string, severity float64) core.Event {
	e := at(ms, source)
	e.Severity = core.Sev(severity)
	return e
}

func kinds(insights []core.Insight) []core.InsightKind {
	out := make([]core.InsightKind, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Kind)
	}
	return out
}

func TestRun_CombinesAndSorts(t *testing.T) {
	// Burst over the first three events starts where the first gap
	// starts; kinds must order alphabetically at an equal start.
	events := []core.Event{
		at(0, "api"),
		at(100, "db"),
		at(200, "api"),
	}
	cfg := Config{
		GapMS:          100,
		BurstWindowMS:  1000,
		BurstThreshold: 3,
	}

	insights := Run(events, cfg)
	require.Len(t, insights, 3)
	assert.Equal(t, []core.InsightKind{core.KindBurst, core.KindTimeGap, core.KindTimeGap}, kinds(insights))
	assert.Equal(t, insights[0].Start, insights[1].Start)
	assert.True(t, insights[1].Start.Before(insights[2].Start))
}

func TestRun_DisabledDetectors(t *testing.T) {
	events := []core.Event{
		sevAt(0, "api", 1),
		sevAt(10000, "api", 5),
		sevAt(10010, "api", 5),
	}

	t.Run("ZeroConfigYieldsNothing", func(t *testing.T) {
		assert.Empty(t, Run(events, Config{}))
	})

	t.Run("BurstNeedsBothParameters", func(t *testing.T) {
		assert.Empty(t, Run(events, Config{BurstWindowMS: 1000}))
		assert.Empty(t, Run(events, Config{BurstThreshold: 2}))
	})

	t.Run("GapAlone", func(t *testing.T) {
		insights := Run(events, Config{GapMS: 5000})
		require.Len(t, insights, 1)
		assert.Equal(t, core.KindTimeGap, insights[0].Kind)
	})
}

func TestRun_Deterministic(t *testing.T) {
	events := []core.Event{
		sevAt(0, "api", 1),
		sevAt(100, "db", 1),
		sevAt(200, "api", 1),
		sevAt(8000, "db", 4),
		sevAt(8100, "api", 5),
		sevAt(8200, "db", 5),
	}
	cfg := Config{
		GapMS:           5000,
		BurstWindowMS:   1000,
		BurstThreshold:  3,
		SeverityHorizon: 3,
		SeverityDelta:   0.5,
	}

	first := Run(events, cfg)
	second := Run(events, cfg)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)

	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].Start.Before(first[i-1].Start))
	}
}

func TestRun_SeverityDeltaDefaults(t *testing.T) {
	// Window means run 1, 1, 2.33, 3.67: the flat step would fire on a
	// zero delta but must not under the 0.5 fallback.
	events := []core.Event{
		sevAt(0, "api", 1),
		sevAt(100, "api", 1),
		sevAt(200, "api", 1),
		sevAt(300, "api", 1),
		sevAt(400, "api", 5),
		sevAt(500, "api", 5),
	}

	insights := Run(events, Config{SeverityHorizon: 3})
	require.Len(t, insights, 2)
	for _, insight := range insights {
		assert.Equal(t, core.KindSeverityRegression, insight.Kind)
	}

	explicit := Run(events, Config{SeverityHorizon: 3, SeverityDelta: 0.5})
	assert.Equal(t, explicit, insights)
}

func TestRun_UnsortedInput(t *testing.T) {
	ordered := []core.Event{
		at(0, "api"),
		at(100, "db"),
		at(9000, "api"),
	}
	reversed := []core.Event{ordered[2], ordered[1], ordered[0]}
	cfg := Config{GapMS: 5000}

	assert.Equal(t, Run(ordered, cfg), Run(reversed, cfg))
}

func TestSortedByTime_StableOnTies(t *testing.T) {
	a := at(0, "first")
	b := at(0, "second")
	c := at(10, "third")

	out := sortedByTime([]core.Event{c, a, b})
	assert.Equal(t, []core.Event{a, b, c}, out)

	// Events sharing a timestamp keep their incoming order.
	out = sortedByTime([]core.Event{b, a, c})
	assert.Equal(t, []core.Event{b, a, c}, out)
}
