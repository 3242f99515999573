// FILE: eventweaver/src/internal/enrich/enrich.go
// Package enrich provides named event transforms that sources apply
// to every event they emit, in configuration order.
package enrich

import (
	"fmt"
	"sort"

	"eventweaver/src/internal/core"
)

// Func transforms one event into its enriched form. A Func must
// return a usable event; returning the input unchanged is valid.
type Func func(core.Event) core.Event

var registry = map[string]Func{}

// Register adds an enricher under the given name, replacing any
// previous registration.
func Register(name string, fn Func) {
	registry[name] = fn
}

// Get returns the enricher registered under the given name.
func Get(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown enricher '%s'", name)
	}
	return fn, nil
}

// Names returns all registered enricher names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps configured enricher names to their functions,
// preserving order. Empty entries are skipped.
func Resolve(names []string) ([]Func, error) {
	funcs := make([]Func, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		fn, err := Get(name)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	return funcs, nil
}
