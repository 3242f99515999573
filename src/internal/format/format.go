// FILE: eventweaver/src/internal/format/format.go

// Package format renders fused events and insights for human and
// machine consumption: aligned text tables for the terminal, JSON
// arrays for piping, and JSON file export with optional gzip.
package format

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// defaultMessageWidth bounds the message column when stdout is not a
// terminal or the probe fails.
const defaultMessageWidth = 80

// fixedColumnWidth is the room the non-message table columns take up
// on a typical row, used to derive the message budget.
const fixedColumnWidth = 44

// MessageBudget returns how many characters the message column may
// use, derived from the terminal width when stdout is one.
func MessageBudget() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return defaultMessageWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultMessageWidth
	}
	budget := width - fixedColumnWidth
	if budget < 20 {
		return 20
	}
	if budget > defaultMessageWidth {
		return defaultMessageWidth
	}
	return budget
}

// shorten collapses whitespace and truncates s to width runes,
// marking the cut with an ellipsis.
func shorten(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	cut := width - 1
	if idx := strings.LastIndex(string(runes[:cut]), " "); idx > 0 {
		cut = idx
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "…"
}
