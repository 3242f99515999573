// FILE: eventweaver/src/internal/source/source_test.go
package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventweaver/src/internal/config"
	"eventweaver/src/internal/core"
	"eventweaver/src/internal/enrich"
	"eventweaver/src/internal/timeline"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.NewLogger()
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func drain(t *testing.T, p timeline.Producer) []core.Event {
	t.Helper()
	cursor, err := p.Events()
	require.NoError(t, err)
	events, err := timeline.Collect(cursor)
	require.NoError(t, err)
	return events
}

func TestJSONLSource(t *testing.T) {
	t.Run("NormalizesRecords", func(t *testing.T) {
		path := writeFile(t, "api.jsonl", `
{"ts": "2025-03-01T10:00:00Z", "level": "warning", "msg": "disk pressure", "host": "db-1", "unused": null}
{"ts": 1740823205.5, "level": 2, "msg": "recovered", "host": "db-1"}
`)
		p, err := New(config.SourceConfig{
			Name:           "api",
			Path:           path,
			Kind:           "jsonl",
			TimestampField: "ts",
			SeverityField:  "level",
			MessageField:   "msg",
			MetadataFields: []string{"host", "unused"},
			SeverityMap:    map[string]float64{"warning": 2.0},
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		events := drain(t, p)
		require.Len(t, events, 2)

		first := events[0]
		assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), first.Time.UTC())
		assert.Equal(t, "api", first.Source)
		require.NotNil(t, first.Severity)
		assert.Equal(t, 2.0, *first.Severity)
		assert.Equal(t, "disk pressure", first.Message)
		assert.Equal(t, map[string]any{"host": "db-1"}, first.Metadata, "null values dropped")
		assert.Equal(t, "warning", first.Raw["level"])

		second := events[1]
		assert.Equal(t, time.Unix(1740823205, 500000000).UTC(), second.Time.UTC())
		require.NotNil(t, second.Severity)
		assert.Equal(t, 2.0, *second.Severity)
	})

	t.Run("SkewShiftsTimestamps", func(t *testing.T) {
		path := writeFile(t, "api.jsonl", `{"ts": "2025-03-01T10:00:01Z", "msg": "x"}`)
		p, err := New(config.SourceConfig{
			Name:           "api",
			Path:           path,
			Kind:           "jsonl",
			TimestampField: "ts",
			SkewMS:         1000,
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		events := drain(t, p)
		require.Len(t, events, 1)
		assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), events[0].Time.UTC())
	})

	t.Run("InvalidJSONNamesSourceAndLine", func(t *testing.T) {
		path := writeFile(t, "api.jsonl", `
{"ts": "2025-03-01T10:00:00Z"}
{broken
`)
		p, err := New(config.SourceConfig{
			Name: "api", Path: path, Kind: "jsonl", TimestampField: "ts",
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		cursor, err := p.Events()
		require.NoError(t, err)
		defer cursor.Close()

		_, err = cursor.Next()
		require.NoError(t, err)
		_, err = cursor.Next()
		require.Error(t, err)
		// The leading blank line is skipped but still counted, so the
		// broken record sits on physical line 3.
		assert.Contains(t, err.Error(), "line 3")
		assert.Contains(t, err.Error(), "api")
	})

	t.Run("MissingTimestampField", func(t *testing.T) {
		path := writeFile(t, "api.jsonl", `{"msg": "no clock"}`)
		p, err := New(config.SourceConfig{
			Name: "api", Path: path, Kind: "jsonl", TimestampField: "ts",
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		cursor, err := p.Events()
		require.NoError(t, err)
		defer cursor.Close()

		_, err = cursor.Next()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing timestamp_field 'ts'")
	})

	t.Run("MissingFile", func(t *testing.T) {
		p, err := New(config.SourceConfig{
			Name: "api", Path: filepath.Join(t.TempDir(), "gone.jsonl"),
			Kind: "jsonl", TimestampField: "ts",
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		_, err = p.Events()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source file not found")
	})

	t.Run("DefaultsFillUnsetFields", func(t *testing.T) {
		path := writeFile(t, "api.jsonl", `{"ts": "2025-03-01T10:00:00Z", "level": "fatal", "msg": "boom"}`)
		defaults := config.Defaults{
			TimestampField: "ts",
			SeverityField:  "level",
			MessageField:   "msg",
			SeverityMap:    map[string]float64{"fatal": 5.0},
		}
		p, err := New(config.SourceConfig{Name: "api", Path: path, Kind: "jsonl"},
			defaults, nil, newTestLogger(t))
		require.NoError(t, err)

		events := drain(t, p)
		require.Len(t, events, 1)
		require.NotNil(t, events[0].Severity)
		assert.Equal(t, 5.0, *events[0].Severity)
		assert.Equal(t, "boom", events[0].Message)
	})

	t.Run("EnrichersApplyBeforeYield", func(t *testing.T) {
		path := writeFile(t, "api.jsonl", `{"ts": "2025-03-01T10:00:00Z", "msg": "mail amy@example.com"}`)
		p, err := New(config.SourceConfig{
			Name: "API", Path: path, Kind: "jsonl",
			TimestampField: "ts", MessageField: "msg",
		}, config.Defaults{}, []enrich.Func{enrich.RedactEmails, enrich.LowercaseSource}, newTestLogger(t))
		require.NoError(t, err)

		events := drain(t, p)
		require.Len(t, events, 1)
		assert.Equal(t, "api", events[0].Source)
		assert.Equal(t, "mail [redacted]", events[0].Message)
	})
}

func TestCSVSource(t *testing.T) {
	t.Run("HeaderedRows", func(t *testing.T) {
		path := writeFile(t, "edge.csv", "when,level,what\n2025-03-01T10:00:00Z,2,edge up\n2025-03-01T10:00:01Z,,edge steady\n")
		p, err := New(config.SourceConfig{
			Name:           "edge",
			Path:           path,
			Kind:           "csv",
			TimestampField: "when",
			SeverityField:  "level",
			MessageField:   "what",
			CSVHasHeader:   true,
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		events := drain(t, p)
		require.Len(t, events, 2)
		assert.Equal(t, "edge up", events[0].Message)
		require.NotNil(t, events[0].Severity)
		assert.Equal(t, 2.0, *events[0].Severity)
		assert.Nil(t, events[1].Severity, "empty cell means no severity")
		assert.Equal(t, "edge steady", events[1].Message)
	})

	t.Run("HeaderlessWithDelimiter", func(t *testing.T) {
		path := writeFile(t, "edge.csv", "2025-03-01T10:00:00Z;2\n")
		p, err := New(config.SourceConfig{
			Name:           "edge",
			Path:           path,
			Kind:           "csv",
			TimestampField: "when",
			SeverityField:  "level",
			CSVDelimiter:   ";",
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		events := drain(t, p)
		require.Len(t, events, 1)
		require.NotNil(t, events[0].Severity)
		assert.Equal(t, 2.0, *events[0].Severity)
		assert.Equal(t, "2025-03-01T10:00:00Z,2", events[0].Message, "fallback joins the row")
	})

	t.Run("MissingTimestampColumn", func(t *testing.T) {
		path := writeFile(t, "edge.csv", "other\nvalue\n")
		p, err := New(config.SourceConfig{
			Name: "edge", Path: path, Kind: "csv", TimestampField: "when",
			CSVHasHeader: true,
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		cursor, err := p.Events()
		require.NoError(t, err)
		defer cursor.Close()

		_, err = cursor.Next()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing timestamp column 'when'")
	})
}

func TestRegexSource(t *testing.T) {
	pattern := `^(?P<timestamp>\S+) (?P<severity>\w+) (?P<message>.+)$`

	t.Run("NamedGroups", func(t *testing.T) {
		path := writeFile(t, "app.log", "2025-03-01T10:00:00Z error request failed\nnoise\n2025-03-01T10:00:02Z info recovered\n")
		p, err := New(config.SourceConfig{
			Name:        "app",
			Path:        path,
			Kind:        "regex",
			Regex:       pattern,
			SeverityMap: map[string]float64{"error": 4.0, "info": 1.0},
		}, config.Defaults{}, nil, newTestLogger(t))
		require.NoError(t, err)

		events := drain(t, p)
		require.Len(t, events, 2, "non-matching lines skipped")
		assert.Equal(t, "request failed", events[0].Message)
		require.NotNil(t, events[0].Severity)
		assert.Equal(t, 4.0, *events[0].Severity)
		assert.Equal(t, "2025-03-01T10:00:00Z error request failed", events[0].Raw["line"])
	})

	t.Run("RequiresTimestampGroup", func(t *testing.T) {
		path := writeFile(t, "app.log", "whatever\n")
		_, err := New(config.SourceConfig{
			Name:  "app",
			Path:  path,
			Kind:  "regex",
			Regex: `^(?P<message>.+)$`,
		}, config.Defaults{}, nil, newTestLogger(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'timestamp' named capture group")
	})
}

func TestTimestampParsing(t *testing.T) {
	t.Run("ISOFallbacks", func(t *testing.T) {
		for _, value := range []string{
			"2025-03-01T10:00:00Z",
			"2025-03-01T10:00:00.25",
			"2025-03-01 10:00:00",
			"2025-03-01",
		} {
			_, err := parseTimestamp(value, "")
			assert.NoError(t, err, value)
		}
	})

	t.Run("ExplicitLayout", func(t *testing.T) {
		ts, err := parseTimestamp("01/Mar/2025 10:00:00", "02/Jan/2006 15:04:05")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), ts.UTC())
	})

	t.Run("Unparseable", func(t *testing.T) {
		_, err := parseTimestamp("not a clock", "")
		require.Error(t, err)
	})
}

func TestBuildProducers(t *testing.T) {
	t.Run("UnknownEnricher", func(t *testing.T) {
		cfg := &config.Config{
			Enrichers: []string{"does_not_exist"},
			Sources: []config.SourceConfig{
				{Name: "api", Path: "x.jsonl", Kind: "jsonl", TimestampField: "ts"},
			},
		}
		_, err := BuildProducers(cfg, newTestLogger(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown enricher")
	})

	t.Run("OneProducerPerSource", func(t *testing.T) {
		a := writeFile(t, "a.jsonl", `{"ts": "2025-03-01T10:00:00Z"}`)
		b := writeFile(t, "b.jsonl", `{"ts": "2025-03-01T10:00:01Z"}`)
		cfg := &config.Config{
			Sources: []config.SourceConfig{
				{Name: "a", Path: a, Kind: "jsonl", TimestampField: "ts"},
				{Name: "b", Path: b, Kind: "jsonl", TimestampField: "ts"},
			},
		}
		producers, err := BuildProducers(cfg, newTestLogger(t))
		require.NoError(t, err)
		require.Len(t, producers, 2)
		assert.Equal(t, "a", producers[0].Name())
		assert.Equal(t, "b", producers[1].Name())
	})
}

func TestCursorClose(t *testing.T) {
	path := writeFile(t, "api.jsonl", `{"ts": "2025-03-01T10:00:00Z"}`)
	p, err := New(config.SourceConfig{
		Name: "api", Path: path, Kind: "jsonl", TimestampField: "ts",
	}, config.Defaults{}, nil, newTestLogger(t))
	require.NoError(t, err)

	cursor, err := p.Events()
	require.NoError(t, err)

	require.NoError(t, cursor.Close())
	require.NoError(t, cursor.Close(), "close is idempotent")

	_, err = cursor.Next()
	assert.Equal(t, io.EOF, err)
}
