// FILE: eventweaver/src/internal/source/jsonl.go
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"eventweaver/src/internal/core"
	"eventweaver/src/internal/timeline"

	"github.com/valyala/fastjson"
)

// parserPool recycles fastjson parsers across cursors.
var parserPool fastjson.ParserPool

// jsonlSource reads one JSON object per line.
type jsonlSource struct {
	loader *loader
}

func (s *jsonlSource) Name() string {
	return s.loader.name()
}

func (s *jsonlSource) Events() (timeline.Cursor, error) {
	file, err := openSourceFile(s.loader.cfg.Path)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	s.loader.logger.Debug("msg", "Source opened",
		"component", "source",
		"source", s.loader.name(),
		"kind", "jsonl",
		"path", s.loader.cfg.Path)

	return &jsonlCursor{
		l:       s.loader,
		file:    file,
		scanner: scanner,
		parser:  parserPool.Get(),
	}, nil
}

type jsonlCursor struct {
	l       *loader
	file    *os.File
	scanner *bufio.Scanner
	parser  *fastjson.Parser
	line    int
	count   uint64
	closed  bool
}

func (c *jsonlCursor) Next() (core.Event, error) {
	if c.closed {
		return core.Event{}, io.EOF
	}

	for c.scanner.Scan() {
		c.line++
		text := strings.TrimSpace(c.scanner.Text())
		if text == "" {
			continue
		}

		parsed, err := c.parser.Parse(text)
		if err != nil {
			return core.Event{}, fmt.Errorf("invalid JSON on line %d in %s", c.line, c.l.name())
		}

		record, ok := valueToGo(parsed).(map[string]any)
		if !ok {
			return core.Event{}, fmt.Errorf("missing timestamp_field '%s' in %s line %d", c.l.tsField, c.l.name(), c.line)
		}
		tsRaw, ok := record[c.l.tsField]
		if !ok {
			return core.Event{}, fmt.Errorf("missing timestamp_field '%s' in %s line %d", c.l.tsField, c.l.name(), c.line)
		}

		ts, err := c.l.timestamp(tsRaw)
		if err != nil {
			return core.Event{}, fmt.Errorf("%s line %d: %w", c.l.name(), c.line, err)
		}

		var severity *float64
		if c.l.sevField != "" {
			severity = c.l.severity(record[c.l.sevField])
		}

		event := core.Event{
			Time:     ts,
			Source:   c.l.name(),
			Severity: severity,
			Message:  c.l.message(record, text),
			Metadata: c.l.metadata(record),
			Raw:      record,
		}
		c.count++
		return c.l.enrich(event), nil
	}

	if err := c.scanner.Err(); err != nil {
		return core.Event{}, err
	}
	return core.Event{}, io.EOF
}

func (c *jsonlCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	parserPool.Put(c.parser)
	c.parser = nil

	c.l.logger.Debug("msg", "Source closed",
		"component", "source",
		"source", c.l.name(),
		"entries", c.count)

	return c.file.Close()
}

// valueToGo converts a parsed fastjson value into plain Go types,
// widening all JSON numbers to float64.
func valueToGo(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject:
		obj, err := v.Object()
		if err != nil {
			return nil
		}
		m := make(map[string]any, obj.Len())
		obj.Visit(func(key []byte, item *fastjson.Value) {
			m[string(key)] = valueToGo(item)
		})
		return m
	case fastjson.TypeArray:
		items, err := v.Array()
		if err != nil {
			return nil
		}
		list := make([]any, 0, len(items))
		for _, item := range items {
			list = append(list, valueToGo(item))
		}
		return list
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil
		}
		return string(b)
	case fastjson.TypeNumber:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return f
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}
