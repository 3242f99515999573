// FILE: eventweaver/src/internal/source/csv.go
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"eventweaver/src/internal/core"
	"eventweaver/src/internal/timeline"
)

// csvSource reads delimited rows, either keyed by a header row or
// by a synthesized column list when the file carries none.
type csvSource struct {
	loader *loader
}

func (s *csvSource) Name() string {
	return s.loader.name()
}

func (s *csvSource) Events() (timeline.Cursor, error) {
	file, err := openSourceFile(s.loader.cfg.Path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	if d := s.loader.cfg.CSVDelimiter; d != "" {
		reader.Comma = rune(d[0])
	}

	var headers []string
	if s.loader.cfg.CSVHasHeader {
		row, err := reader.Read()
		if err == io.EOF {
			headers = nil
		} else if err != nil {
			file.Close()
			return nil, fmt.Errorf("csv source %s: %w", s.loader.name(), err)
		} else {
			headers = row
		}
	} else {
		headers = append(headers, s.loader.tsField)
		if s.loader.sevField != "" {
			headers = append(headers, s.loader.sevField)
		}
		headers = append(headers, s.loader.metaFields...)
	}

	s.loader.logger.Debug("msg", "Source opened",
		"component", "source",
		"source", s.loader.name(),
		"kind", "csv",
		"path", s.loader.cfg.Path)

	return &csvCursor{l: s.loader, file: file, reader: reader, headers: headers}, nil
}

type csvCursor struct {
	l       *loader
	file    *os.File
	reader  *csv.Reader
	headers []string
	count   uint64
	closed  bool
}

func (c *csvCursor) Next() (core.Event, error) {
	if c.closed {
		return core.Event{}, io.EOF
	}

	fields, err := c.reader.Read()
	if err != nil {
		if err == io.EOF {
			return core.Event{}, io.EOF
		}
		return core.Event{}, err
	}

	row := make(map[string]any, len(c.headers))
	for i, header := range c.headers {
		if i >= len(fields) {
			break
		}
		row[header] = fields[i]
	}

	tsRaw, ok := row[c.l.tsField]
	if !ok {
		return core.Event{}, fmt.Errorf("csv source %s missing timestamp column '%s'", c.l.name(), c.l.tsField)
	}
	ts, err := c.l.timestamp(tsRaw)
	if err != nil {
		return core.Event{}, err
	}

	var severity *float64
	if c.l.sevField != "" {
		severity = c.l.severity(row[c.l.sevField])
	}

	event := core.Event{
		Time:     ts,
		Source:   c.l.name(),
		Severity: severity,
		Message:  c.l.message(row, strings.Join(fields, ",")),
		Metadata: c.l.metadata(row),
		Raw:      row,
	}
	c.count++
	return c.l.enrich(event), nil
}

func (c *csvCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.l.logger.Debug("msg", "Source closed",
		"component", "source",
		"source", c.l.name(),
		"entries", c.count)

	return c.file.Close()
}
