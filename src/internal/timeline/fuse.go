// FILE: eventweaver/src/internal/timeline/fuse.go
package timeline

import (
	"container/heap"
	"fmt"
	"io"
	"time"

	"eventweaver/src/internal/core"
)

// fuseItem is one pending event in the priority structure, keyed by
// (timestamp, ticket). Tickets are unique per insertion, so the key
// is a total order and the source index never has to decide.
type fuseItem struct {
	ts     time.Time
	ticket uint64
	idx    int
	event  core.Event
}

type fuseHeap []fuseItem

func (h fuseHeap) Len() int { return len(h) }

func (h fuseHeap) Less(i, j int) bool {
	if !h[i].ts.Equal(h[j].ts) {
		return h[i].ts.Before(h[j].ts)
	}
	return h[i].ticket < h[j].ticket
}

func (h fuseHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *fuseHeap) Push(x any) { *h = append(*h, x.(fuseItem)) }

func (h *fuseHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// fusedCursor merges N source cursors. At most one event per
// still-active source is buffered, keeping memory O(N) regardless of
// stream length. Replacement pulls are deferred until the consumer
// demands the next event, so nothing runs ahead of the caller.
type fusedCursor struct {
	cursors []Cursor
	names   []string
	pred    Predicate
	heap    fuseHeap
	ticket  uint64
	refill  int
	err     error
	closed  bool
}

// Fuse merges the producers into one globally ordered cursor,
// dropping events that fail the predicate (nil means keep all).
// Ties in timestamp resolve in insertion order: declaration order for
// the initial fill, arrival order afterwards. The first event of
// every producer is pulled before Fuse returns; any ingestion error
// aborts the whole fusion with all opened cursors closed.
func Fuse(producers []Producer, pred Predicate) (Cursor, error) {
	fc := &fusedCursor{
		cursors: make([]Cursor, len(producers)),
		names:   make([]string, len(producers)),
		pred:    pred,
		refill:  -1,
	}
	for i, p := range producers {
		fc.names[i] = p.Name()
		cursor, err := p.Events()
		if err != nil {
			fc.closeAll()
			return nil, fmt.Errorf("opening source %q: %w", p.Name(), err)
		}
		fc.cursors[i] = cursor
	}
	for i := range fc.cursors {
		if err := fc.pull(i); err != nil {
			fc.closeAll()
			return nil, err
		}
	}
	return fc, nil
}

// pull fetches the next event from source idx and inserts it with a
// fresh ticket. Exhausted sources are closed immediately.
func (fc *fusedCursor) pull(idx int) error {
	cursor := fc.cursors[idx]
	if cursor == nil {
		return nil
	}
	event, err := cursor.Next()
	if err == io.EOF {
		fc.cursors[idx] = nil
		return cursor.Close()
	}
	if err != nil {
		return fmt.Errorf("reading source %q: %w", fc.names[idx], err)
	}
	heap.Push(&fc.heap, fuseItem{
		ts:     event.Time,
		ticket: fc.ticket,
		idx:    idx,
		event:  event,
	})
	fc.ticket++
	return nil
}

func (fc *fusedCursor) Next() (core.Event, error) {
	if fc.err != nil {
		return core.Event{}, fc.err
	}
	if fc.closed {
		return core.Event{}, io.EOF
	}
	for {
		if fc.refill >= 0 {
			idx := fc.refill
			fc.refill = -1
			if err := fc.pull(idx); err != nil {
				return core.Event{}, fc.abort(err)
			}
		}
		if fc.heap.Len() == 0 {
			return core.Event{}, io.EOF
		}
		item := heap.Pop(&fc.heap).(fuseItem)
		fc.refill = item.idx
		if fc.pred == nil {
			return item.event, nil
		}
		keep, err := fc.pred(item.event)
		if err != nil {
			return core.Event{}, fc.abort(err)
		}
		if keep {
			return item.event, nil
		}
	}
}

// abort makes the error sticky and releases every remaining cursor.
// A partially fused timeline is worse than a failed one; there is no
// skip or retry.
func (fc *fusedCursor) abort(err error) error {
	fc.err = err
	fc.closeAll()
	return err
}

func (fc *fusedCursor) closeAll() error {
	var firstErr error
	for i, cursor := range fc.cursors {
		if cursor == nil {
			continue
		}
		if err := cursor.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		fc.cursors[i] = nil
	}
	return firstErr
}

func (fc *fusedCursor) Close() error {
	if fc.closed {
		return nil
	}
	fc.closed = true
	return fc.closeAll()
}
