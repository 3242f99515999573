// FILE: eventweaver/src/internal/timeline/cursor.go

// Package timeline implements the k-way fusion engine: it merges
// independently ordered event producers into one globally ordered,
// lazily evaluated stream with a deterministic tie-break.
package timeline

import (
	"io"

	"eventweaver/src/internal/core"
)

// Cursor yields events one at a time. Next returns io.EOF after the
// last event. Close releases the underlying resource and is safe to
// call more than once.
type Cursor interface {
	Next() (core.Event, error)
	Close() error
}

// Producer opens a fresh cursor over its events. Each call must
// return an independent cursor positioned at the start, so fusion
// runs are repeatable. Events must be non-decreasing in timestamp;
// this is a contract, not enforced.
type Producer interface {
	Name() string
	Events() (Cursor, error)
}

// Predicate filters fused events. An error aborts the whole fusion.
type Predicate func(core.Event) (bool, error)

// Collect drains a cursor into a slice, closing it on every path.
func Collect(c Cursor) ([]core.Event, error) {
	defer c.Close()

	var events []core.Event
	for {
		event, err := c.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
}

type sliceCursor struct {
	events []core.Event
	pos    int
}

func (c *sliceCursor) Next() (core.Event, error) {
	if c.pos >= len(c.events) {
		return core.Event{}, io.EOF
	}
	event := c.events[c.pos]
	c.pos++
	return event, nil
}

func (c *sliceCursor) Close() error {
	c.pos = len(c.events)
	return nil
}

// FromSlice returns a cursor over a fixed event slice.
func FromSlice(events []core.Event) Cursor {
	return &sliceCursor{events: events}
}

type sliceProducer struct {
	name   string
	events []core.Event
}

func (p *sliceProducer) Name() string {
	return p.name
}

func (p *sliceProducer) Events() (Cursor, error) {
	return FromSlice(p.events), nil
}

// NewSliceProducer returns a producer serving a fixed, pre-ordered
// slice. Every Events call yields a fresh cursor over the same data.
func NewSliceProducer(name string, events []core.Event) Producer {
	return &sliceProducer{name: name, events: events}
}
