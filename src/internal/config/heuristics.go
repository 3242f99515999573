// FILE: eventweaver/src/internal/config/heuristics.go
package config

// HeuristicsConfig carries detector thresholds. Every knob is
// optional; a detector whose parameters stay zero is disabled rather
// than an error. The gap threshold accepts both the flat `gap_ms`
// key and a `[heuristics.gap]` table with `threshold_ms` or `ms`;
// the burst count accepts `threshold` or `count`.
type HeuristicsConfig struct {
	GapMSFlat          int64               `toml:"gap_ms"`
	Gap                *GapThresholds      `toml:"gap"`
	Burst              *BurstThresholds    `toml:"burst"`
	SeverityRegression *SeverityThresholds `toml:"severity_regression"`
}

type GapThresholds struct {
	ThresholdMS int64 `toml:"threshold_ms"`
	MS          int64 `toml:"ms"`
}

type BurstThresholds struct {
	WindowMS  int64 `toml:"window_ms"`
	Threshold int64 `toml:"threshold"`
	Count     int64 `toml:"count"`
}

type SeverityThresholds struct {
	Horizon int64   `toml:"horizon"`
	Delta   float64 `toml:"delta"`
}

// GapMS resolves the gap threshold across its aliases; the table
// form wins over the flat key.
func (h HeuristicsConfig) GapMS() int {
	if h.Gap != nil {
		if h.Gap.ThresholdMS != 0 {
			return int(h.Gap.ThresholdMS)
		}
		if h.Gap.MS != 0 {
			return int(h.Gap.MS)
		}
	}
	return int(h.GapMSFlat)
}

func (h HeuristicsConfig) BurstWindowMS() int {
	if h.Burst == nil {
		return 0
	}
	return int(h.Burst.WindowMS)
}

// BurstCount resolves the burst threshold across its aliases.
func (h HeuristicsConfig) BurstCount() int {
	if h.Burst == nil {
		return 0
	}
	if h.Burst.Threshold != 0 {
		return int(h.Burst.Threshold)
	}
	return int(h.Burst.Count)
}

func (h HeuristicsConfig) SeverityHorizon() int {
	if h.SeverityRegression == nil {
		return 0
	}
	return int(h.SeverityRegression.Horizon)
}

// SeverityDelta defaults to 0.5 when left unset.
func (h HeuristicsConfig) SeverityDelta() float64 {
	if h.SeverityRegression == nil || h.SeverityRegression.Delta == 0 {
		return 0.5
	}
	return h.SeverityRegression.Delta
}
