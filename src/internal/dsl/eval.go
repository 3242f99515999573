// FILE: eventweaver/src/internal/dsl/eval.go
package dsl

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"eventweaver/src/internal/core"
)

// evalNode walks a validated tree against one event. Values flowing
// through evaluation are nil, bool, float64, string, time.Time,
// map[string]any or []any; nothing else can be produced.
func evalNode(n Node, e core.Event) (any, error) {
	switch node := n.(type) {
	case Literal:
		return node.Value, nil
	case Ident:
		return resolveIdent(node.Name, e), nil
	case Unary:
		operand, err := evalNode(node.Operand, e)
		if err != nil {
			return nil, err
		}
		if node.Op == UnaryNot {
			return !truthy(operand), nil
		}
		f, ok := operand.(float64)
		if !ok {
			return nil, evalErrf("unary %s not supported on %s", node.Op, kindName(operand))
		}
		if node.Op == UnaryNeg {
			return -f, nil
		}
		return f, nil
	case Binary:
		left, err := evalNode(node.Left, e)
		if err != nil {
			return nil, err
		}
		right, err := evalNode(node.Right, e)
		if err != nil {
			return nil, err
		}
		return arith(node.Op, left, right)
	case BoolExpr:
		if node.Op == BoolAnd {
			for _, v := range node.Values {
				val, err := evalNode(v, e)
				if err != nil {
					return nil, err
				}
				if !truthy(val) {
					return false, nil
				}
			}
			return true, nil
		}
		for _, v := range node.Values {
			val, err := evalNode(v, e)
			if err != nil {
				return nil, err
			}
			if truthy(val) {
				return true, nil
			}
		}
		return false, nil
	case Compare:
		// Chains evaluate every link: operands and comparators alike.
		// A type mismatch after an already-failed link still surfaces.
		left, err := evalNode(node.Left, e)
		if err != nil {
			return nil, err
		}
		result := true
		for i, op := range node.Ops {
			right, err := evalNode(node.Rights[i], e)
			if err != nil {
				return nil, err
			}
			ok, err := compare(op, left, right)
			if err != nil {
				return nil, err
			}
			result = result && ok
			left = right
		}
		return result, nil
	case Subscript:
		base, err := evalNode(node.Value, e)
		if err != nil {
			return nil, err
		}
		key, err := evalNode(node.Key, e)
		if err != nil {
			return nil, err
		}
		m, ok := base.(map[string]any)
		if !ok {
			return nil, evalErrf("subscript not supported on %s", kindName(base))
		}
		ks, ok := key.(string)
		if !ok {
			return nil, evalErrf("metadata key %v not found", key)
		}
		v, present := m[ks]
		if !present {
			return nil, evalErrf("metadata key '%s' not found", ks)
		}
		return normalize(v), nil
	}
	return nil, evalErrf("unsupported syntax node")
}

func resolveIdent(name string, e core.Event) any {
	switch name {
	case "timestamp":
		return e.Time
	case "source":
		return e.Source
	case "severity":
		if e.Severity == nil {
			return nil
		}
		return *e.Severity
	case "message":
		return e.Message
	case "metadata":
		if e.Metadata == nil {
			return map[string]any{}
		}
		return e.Metadata
	}
	return nil
}

func arith(op BinOp, left, right any) (any, error) {
	if lf, ok := left.(float64); ok {
		if rf, ok := right.(float64); ok {
			if op == BinAdd {
				return lf + rf, nil
			}
			return lf - rf, nil
		}
	}
	if op == BinAdd {
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
	}
	return nil, evalErrf("operator %s not supported between %s and %s", op, kindName(left), kindName(right))
}

func compare(op CmpOp, left, right any) (bool, error) {
	switch op {
	case CmpEq:
		return equal(left, right), nil
	case CmpNeq:
		return !equal(left, right), nil
	case CmpIn:
		return member(left, right)
	case CmpNotIn:
		ok, err := member(left, right)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
	return order(op, left, right)
}

// equal never errors: mismatched kinds simply compare unequal.
func equal(left, right any) bool {
	switch l := left.(type) {
	case nil:
		return right == nil
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	case float64:
		r, ok := right.(float64)
		return ok && l == r
	case string:
		r, ok := right.(string)
		return ok && l == r
	case time.Time:
		r, ok := right.(time.Time)
		return ok && l.Equal(r)
	}
	return reflect.DeepEqual(left, right)
}

func order(op CmpOp, left, right any) (bool, error) {
	if lf, ok := left.(float64); ok {
		if rf, ok := right.(float64); ok {
			switch op {
			case CmpGt:
				return lf > rf, nil
			case CmpGte:
				return lf >= rf, nil
			case CmpLt:
				return lf < rf, nil
			case CmpLte:
				return lf <= rf, nil
			}
		}
	}
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			switch op {
			case CmpGt:
				return ls > rs, nil
			case CmpGte:
				return ls >= rs, nil
			case CmpLt:
				return ls < rs, nil
			case CmpLte:
				return ls <= rs, nil
			}
		}
	}
	if lt, ok := left.(time.Time); ok {
		if rt, ok := right.(time.Time); ok {
			switch op {
			case CmpGt:
				return lt.After(rt), nil
			case CmpGte:
				return !lt.Before(rt), nil
			case CmpLt:
				return lt.Before(rt), nil
			case CmpLte:
				return !lt.After(rt), nil
			}
		}
	}
	return false, evalErrf("comparison %s not supported between %s and %s", op, kindName(left), kindName(right))
}

func member(left, container any) (bool, error) {
	switch c := container.(type) {
	case string:
		ls, ok := left.(string)
		if !ok {
			return false, evalErrf("membership test on string requires a string operand, got %s", kindName(left))
		}
		return strings.Contains(c, ls), nil
	case map[string]any:
		ls, ok := left.(string)
		if !ok {
			return false, nil
		}
		_, present := c[ls]
		return present, nil
	case []any:
		for _, v := range c {
			if equal(left, normalize(v)) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, evalErrf("membership test not supported on %s", kindName(container))
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	}
	return true
}

// normalize widens numeric metadata values so comparisons and
// membership see a single numeric kind.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case time.Time:
		return "timestamp"
	case map[string]any:
		return "map"
	case []any:
		return "list"
	}
	return fmt.Sprintf("%T", v)
}
