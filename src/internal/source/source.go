// FILE: eventweaver/src/internal/source/source.go

// Package source loads normalized events from configured log files.
// Every loader is a timeline.Producer: it opens a fresh cursor per
// fusion run and reads records lazily in file order. Records become
// events through the same normalization path regardless of kind:
// timestamp parsing with optional skew correction, severity mapping,
// message extraction and metadata projection.
package source

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"eventweaver/src/internal/config"
	"eventweaver/src/internal/core"
	"eventweaver/src/internal/enrich"
	"eventweaver/src/internal/timeline"

	"github.com/lixenwraith/log"
)

// maxLineBytes bounds a single record line across all source kinds.
const maxLineBytes = 1024 * 1024

// New builds a producer for one configured source.
func New(cfg config.SourceConfig, defaults config.Defaults, enrichers []enrich.Func, logger *log.Logger) (timeline.Producer, error) {
	l := &loader{
		cfg:        cfg,
		tsField:    cfg.EffectiveTimestampField(defaults),
		tsFormat:   cfg.EffectiveTimestampFormat(defaults),
		sevField:   cfg.EffectiveSeverityField(defaults),
		msgField:   cfg.EffectiveMessageField(defaults),
		sevMap:     cfg.MergedSeverityMap(defaults),
		skew:       time.Duration(cfg.SkewMS) * time.Millisecond,
		metaFields: cfg.MetadataFields,
		enrichers:  enrichers,
		logger:     logger,
	}

	switch cfg.Kind {
	case "jsonl":
		if l.tsField == "" {
			return nil, fmt.Errorf("jsonl source %s missing timestamp_field", cfg.Name)
		}
		return &jsonlSource{loader: l}, nil
	case "regex":
		return newRegexSource(l)
	case "csv":
		if l.tsField == "" {
			return nil, fmt.Errorf("csv source %s missing timestamp_field", cfg.Name)
		}
		return &csvSource{loader: l}, nil
	}
	return nil, fmt.Errorf("unsupported source kind '%s' for %s", cfg.Kind, cfg.Name)
}

// BuildProducers builds one producer per configured source, all
// sharing the config-level enricher chain.
func BuildProducers(cfg *config.Config, logger *log.Logger) ([]timeline.Producer, error) {
	enrichers, err := enrich.Resolve(cfg.Enrichers)
	if err != nil {
		return nil, err
	}
	producers := make([]timeline.Producer, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		producer, err := New(sc, cfg.Defaults, enrichers, logger)
		if err != nil {
			return nil, err
		}
		producers = append(producers, producer)
	}
	return producers, nil
}

// loader holds the normalization state shared by every source kind.
type loader struct {
	cfg        config.SourceConfig
	tsField    string
	tsFormat   string
	sevField   string
	msgField   string
	sevMap     map[string]float64
	skew       time.Duration
	metaFields []string
	enrichers  []enrich.Func
	logger     *log.Logger
}

func (l *loader) name() string {
	return l.cfg.Name
}

// timestamp normalizes a raw record value into the event timestamp,
// applying the configured clock skew correction.
func (l *loader) timestamp(raw any) (time.Time, error) {
	var ts time.Time
	switch v := raw.(type) {
	case time.Time:
		ts = v
	case float64:
		ts = fromUnixSeconds(v)
	case int:
		ts = fromUnixSeconds(float64(v))
	case int64:
		ts = fromUnixSeconds(float64(v))
	case string:
		parsed, err := parseTimestamp(v, l.tsFormat)
		if err != nil {
			return time.Time{}, err
		}
		ts = parsed
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp value %v", raw)
	}
	if l.skew != 0 {
		ts = ts.Add(-l.skew)
	}
	return ts, nil
}

// severity resolves a raw value through the severity map, falling
// back to numeric parsing. Unmappable values mean "no severity",
// never an error.
func (l *loader) severity(raw any) *float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		return core.Sev(v)
	case int:
		return core.Sev(float64(v))
	case int64:
		return core.Sev(float64(v))
	}
	text := strings.TrimSpace(fmt.Sprint(raw))
	if v, ok := l.sevMap[text]; ok {
		return core.Sev(v)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return core.Sev(f)
	}
	return nil
}

// message extracts the configured message field, or the fallback
// when the field is unset or absent from the record.
func (l *loader) message(record map[string]any, fallback string) string {
	if l.msgField != "" {
		if v, ok := record[l.msgField]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return fallback
}

// metadata projects the configured fields out of the record,
// dropping absent and null values.
func (l *loader) metadata(record map[string]any) map[string]any {
	meta := map[string]any{}
	for _, key := range l.metaFields {
		if v, ok := record[key]; ok && v != nil {
			meta[key] = v
		}
	}
	return meta
}

func (l *loader) enrich(event core.Event) core.Event {
	for _, fn := range l.enrichers {
		event = fn(event)
	}
	return event
}

func openSourceFile(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	return file, nil
}
