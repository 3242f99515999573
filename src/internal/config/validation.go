// FILE: eventweaver/src/internal/config/validation.go
package config

import (
	"fmt"
	"regexp"
)

func (c *Config) validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source must be configured")
	}

	if err := validateLogConfig(c.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	names := make(map[string]bool, len(c.Sources))
	for i, src := range c.Sources {
		if err := validateSource(i, src, c.Defaults); err != nil {
			return err
		}
		if names[src.Name] {
			return fmt.Errorf("duplicate source name '%s'", src.Name)
		}
		names[src.Name] = true
	}

	return validateHeuristics(c.Heuristics)
}

func validateSource(index int, src SourceConfig, d Defaults) error {
	if src.Name == "" {
		return fmt.Errorf("source %d: missing name", index)
	}
	if src.Path == "" {
		return fmt.Errorf("source %s is missing path", src.Name)
	}
	if !SupportedKinds[src.Kind] {
		return fmt.Errorf("unsupported source kind '%s' for %s", src.Kind, src.Name)
	}

	switch src.Kind {
	case "jsonl", "csv":
		if src.EffectiveTimestampField(d) == "" {
			return fmt.Errorf("%s source %s must define timestamp_field", src.Kind, src.Name)
		}
	case "regex":
		if src.Regex == "" {
			return fmt.Errorf("regex source %s must define regex pattern", src.Name)
		}
		if _, err := regexp.Compile(src.Regex); err != nil {
			return fmt.Errorf("regex source %s has invalid pattern: %w", src.Name, err)
		}
	}

	return nil
}

// Thresholds may be absent (detector disabled) but never negative;
// a negative knob is a typo, not a request to do nothing.
func validateHeuristics(h HeuristicsConfig) error {
	if h.GapMS() < 0 {
		return fmt.Errorf("heuristics gap threshold must not be negative")
	}
	if h.BurstWindowMS() < 0 || h.BurstCount() < 0 {
		return fmt.Errorf("heuristics burst parameters must not be negative")
	}
	if h.SeverityHorizon() < 0 {
		return fmt.Errorf("heuristics severity horizon must not be negative")
	}
	if h.SeverityRegression != nil && h.SeverityRegression.Delta < 0 {
		return fmt.Errorf("heuristics severity delta must not be negative")
	}
	return nil
}
