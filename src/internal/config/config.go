// FILE: eventweaver/src/internal/config/config.go

// Package config loads and validates the weave TOML configuration:
// source declarations, normalization defaults, heuristics thresholds
// and logging. Values merge from defaults, environment (WEAVE_
// prefix) and the config file.
package config

// SupportedKinds lists the source kinds the loader accepts.
var SupportedKinds = map[string]bool{
	"jsonl": true,
	"regex": true,
	"csv":   true,
}

type Config struct {
	Title      string           `toml:"title"`
	Enrichers  []string         `toml:"enrichers"`
	Defaults   Defaults         `toml:"defaults"`
	Sources    []SourceConfig   `toml:"sources"`
	Heuristics HeuristicsConfig `toml:"heuristics"`
	Logging    *LogConfig       `toml:"logging"`
}

// Defaults supplies fallback normalization settings for every source
// that does not override them.
type Defaults struct {
	SeverityField   string             `toml:"severity_field"`
	MessageField    string             `toml:"message_field"`
	TimestampField  string             `toml:"timestamp_field"`
	TimestampFormat string             `toml:"timestamp_format"`
	SkewMS          int64              `toml:"skew_ms"`
	SeverityMap     map[string]float64 `toml:"severity_map"`
}

// SourceConfig declares one log file to fuse. Unset per-source
// fields fall back to the [defaults] table.
type SourceConfig struct {
	Name            string             `toml:"name"`
	Path            string             `toml:"path"`
	Kind            string             `toml:"kind"`
	TimestampField  string             `toml:"timestamp_field"`
	TimestampFormat string             `toml:"timestamp_format"`
	Regex           string             `toml:"regex"`
	CSVDelimiter    string             `toml:"csv_delimiter"`
	CSVHeader       *bool              `toml:"csv_has_header"`
	MessageField    string             `toml:"message_field"`
	SeverityField   string             `toml:"severity_field"`
	SeverityMap     map[string]float64 `toml:"severity_map"`
	MetadataFields  []string           `toml:"metadata_fields"`
	Skew            *int64             `toml:"skew_ms"`

	// Resolved by normalize: CSVHeader defaulted to true, Skew
	// defaulted from [defaults]. Loaders read these, never the raw
	// pointers.
	CSVHasHeader bool  `toml:"-"`
	SkewMS       int64 `toml:"-"`
}

func (s SourceConfig) EffectiveSeverityField(d Defaults) string {
	if s.SeverityField != "" {
		return s.SeverityField
	}
	return d.SeverityField
}

func (s SourceConfig) EffectiveMessageField(d Defaults) string {
	if s.MessageField != "" {
		return s.MessageField
	}
	return d.MessageField
}

func (s SourceConfig) EffectiveTimestampField(d Defaults) string {
	if s.TimestampField != "" {
		return s.TimestampField
	}
	return d.TimestampField
}

func (s SourceConfig) EffectiveTimestampFormat(d Defaults) string {
	if s.TimestampFormat != "" {
		return s.TimestampFormat
	}
	return d.TimestampFormat
}

// MergedSeverityMap combines the default map with the source's own;
// source entries win on conflicting keys.
func (s SourceConfig) MergedSeverityMap(d Defaults) map[string]float64 {
	merged := make(map[string]float64, len(d.SeverityMap)+len(s.SeverityMap))
	for k, v := range d.SeverityMap {
		merged[k] = v
	}
	for k, v := range s.SeverityMap {
		merged[k] = v
	}
	return merged
}

// normalize resolves the raw optional fields against the defaults
// table. Called once by Load after scanning.
func (s *SourceConfig) normalize(d Defaults) {
	if s.CSVDelimiter == "" {
		s.CSVDelimiter = ","
	}
	s.CSVHasHeader = s.CSVHeader == nil || *s.CSVHeader
	if s.Skew != nil {
		s.SkewMS = *s.Skew
	} else {
		s.SkewMS = d.SkewMS
	}
}
