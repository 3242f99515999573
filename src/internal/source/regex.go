// FILE: eventweaver/src/internal/source/regex.go
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"eventweaver/src/internal/core"
	"eventweaver/src/internal/timeline"
)

// regexSource extracts events from plain-text lines via named
// capture groups. Lines that do not match the pattern are skipped.
type regexSource struct {
	loader  *loader
	pattern *regexp.Regexp
	names   []string
}

func newRegexSource(l *loader) (timeline.Producer, error) {
	if l.cfg.Regex == "" {
		return nil, fmt.Errorf("regex source %s missing pattern", l.name())
	}
	pattern, err := regexp.Compile(l.cfg.Regex)
	if err != nil {
		return nil, fmt.Errorf("regex source %s has invalid pattern: %w", l.name(), err)
	}

	names := pattern.SubexpNames()
	hasTimestamp := false
	for _, name := range names {
		if name == "timestamp" {
			hasTimestamp = true
			break
		}
	}
	if !hasTimestamp {
		return nil, fmt.Errorf("regex source %s must define a 'timestamp' named capture group", l.name())
	}

	return &regexSource{loader: l, pattern: pattern, names: names}, nil
}

func (s *regexSource) Name() string {
	return s.loader.name()
}

func (s *regexSource) Events() (timeline.Cursor, error) {
	file, err := openSourceFile(s.loader.cfg.Path)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	s.loader.logger.Debug("msg", "Source opened",
		"component", "source",
		"source", s.loader.name(),
		"kind", "regex",
		"path", s.loader.cfg.Path)

	return &regexCursor{src: s, file: file, scanner: scanner}, nil
}

type regexCursor struct {
	src     *regexSource
	file    *os.File
	scanner *bufio.Scanner
	count   uint64
	closed  bool
}

func (c *regexCursor) Next() (core.Event, error) {
	if c.closed {
		return core.Event{}, io.EOF
	}
	l := c.src.loader

	for c.scanner.Scan() {
		line := c.scanner.Text()
		match := c.src.pattern.FindStringSubmatchIndex(line)
		if match == nil {
			continue
		}

		// Named groups that did not participate in the match carry
		// a nil value, so downstream field lookups treat them the
		// same as absent record fields.
		groups := map[string]any{}
		for i, name := range c.src.names {
			if i == 0 || name == "" {
				continue
			}
			if match[2*i] < 0 {
				groups[name] = nil
				continue
			}
			groups[name] = line[match[2*i]:match[2*i+1]]
		}

		token, _ := groups["timestamp"].(string)
		if token == "" {
			return core.Event{}, fmt.Errorf("regex source %s must define a 'timestamp' named capture group", l.name())
		}
		ts, err := l.timestamp(token)
		if err != nil {
			return core.Event{}, err
		}

		sevToken := groups["severity"]
		if sevToken == nil && l.sevField != "" {
			if v, ok := groups[l.sevField]; ok {
				sevToken = v
			}
		}

		fallback, _ := groups["message"].(string)
		if fallback == "" {
			fallback = strings.TrimSpace(line)
		}

		event := core.Event{
			Time:     ts,
			Source:   l.name(),
			Severity: l.severity(sevToken),
			Message:  l.message(groups, fallback),
			Metadata: l.metadata(groups),
			Raw:      map[string]any{"line": line, "groups": groups},
		}
		c.count++
		return l.enrich(event), nil
	}

	if err := c.scanner.Err(); err != nil {
		return core.Event{}, err
	}
	return core.Event{}, io.EOF
}

func (c *regexCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.src.loader.logger.Debug("msg", "Source closed",
		"component", "source",
		"source", c.src.loader.name(),
		"entries", c.count)

	return c.file.Close()
}
