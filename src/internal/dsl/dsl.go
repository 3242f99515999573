// FILE: eventweaver/src/internal/dsl/dsl.go

// Package dsl implements the sandboxed filter expression language.
// Expressions are compiled in two phases, a recursive descent parse
// followed by a whole-tree validation pass, and never touch anything
// outside the five event fields. There is no escape hatch into the
// host runtime: no calls, no attribute access, no foreign identifiers.
package dsl

import (
	"fmt"
	"strings"

	"eventweaver/src/internal/core"
)

// CompileError reports an expression rejected during parsing or
// validation. No predicate exists when one is returned.
type CompileError struct {
	Msg string
}

func (e *CompileError) Error() string {
	return "invalid expression: " + e.Msg
}

// EvalError reports a type mismatch or missing key hit while
// evaluating a compiled predicate against one event.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	return "expression evaluation failed: " + e.Msg
}

func compileErrf(format string, args ...any) error {
	return &CompileError{Msg: fmt.Sprintf(format, args...)}
}

func evalErrf(format string, args ...any) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// Program is a compiled filter predicate: pure, stateless and safe to
// reuse across fusion runs.
type Program struct {
	root Node
	src  string
}

// Compile parses and validates expr. Either a fully validated program
// is returned or an error; there is no partial success.
func Compile(expr string) (*Program, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, compileErrf("expression may not be empty")
	}
	root, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	if err := validate(root); err != nil {
		return nil, err
	}
	return &Program{root: root, src: expr}, nil
}

// Eval applies the predicate to one event. The result is the truth
// value of the expression; evaluation failures abort the event.
func (p *Program) Eval(e core.Event) (bool, error) {
	v, err := evalNode(p.root, e)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

// String returns the source text the program was compiled from.
func (p *Program) String() string {
	return p.src
}
