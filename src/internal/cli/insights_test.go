// FILE: eventweaver/src/internal/cli/insights_test.go
package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightsCommand(t *testing.T) {
	t.Run("DetectsGaps", func(t *testing.T) {
		cfg := writeFixtures(t)
		out, err := runCommand(t, "insights", "--quiet", "--config", cfg)
		require.NoError(t, err)

		// Both consecutive deltas (5s and 7s) meet the 5000ms threshold.
		assert.Equal(t, 2, strings.Count(out, "time_gap"))
	})

	t.Run("JSONCarriesEvidence", func(t *testing.T) {
		cfg := writeFixtures(t)
		out, err := runCommand(t, "insights", "--quiet", "--config", cfg, "--format", "json")
		require.NoError(t, err)

		var insights []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &insights))
		require.Len(t, insights, 2)

		first := insights[0]
		assert.Equal(t, "time_gap", first["kind"])
		evidence, ok := first["evidence"].([]any)
		require.True(t, ok)
		assert.Len(t, evidence, 2)
	})

	t.Run("FilteredStreamFeedsDetectors", func(t *testing.T) {
		cfg := writeFixtures(t)
		out, err := runCommand(t, "insights", "--quiet", "--config", cfg,
			"--query", "source == 'nothing'")
		require.NoError(t, err)
		assert.Contains(t, out, "(no insights found)")
	})
}
